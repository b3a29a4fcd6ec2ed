// File: cleanly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanly/config"
	"cleanly/cron"
	"cleanly/database"
	"cleanly/database/repository"
	"cleanly/handlers"
	"cleanly/middleware"
	"cleanly/routes"
	"cleanly/services/assignment"
	"cleanly/services/booking"
	"cleanly/services/notification"
	"cleanly/services/payment"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	stripe.Key = config.AppConfig.StripeSecretKey

	// Queue client for fire-and-forget notifications, reminders and the
	// periodic sweep trigger.
	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpt)
	defer queueClient.Close()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bookingRepo := repository.NewMongoBookingRepo()
	userRepo := repository.NewMongoUserRepo()
	rejectionRepo := repository.NewMongoRejectionRepo()

	// Services. Request paths enqueue notifications; only the background
	// worker talks to FCM directly.
	asyncNotifier, err := notification.NewAsyncNotificationService(queueClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	bookingService := &booking.DefaultBookingService{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		NotifySvc:   asyncNotifier,
		Reminders:   asyncNotifier,
	}

	distance := assignment.PostcodeDistance{}
	assignmentService := &assignment.DefaultAssignmentService{
		Bookings:   bookingRepo,
		Users:      userRepo,
		Rejections: rejectionRepo,
		Ranker:     assignment.NewDefaultCandidateRanker(rejectionRepo, distance),
		Checker:    assignment.NewDefaultAvailabilityChecker(bookingRepo),
		Distance:   distance,
		Cache:      utils.GetCacheClient(),
		NotifySvc:  asyncNotifier,
		Reminders:  asyncNotifier,
	}

	paymentService := &payment.DefaultPaymentService{
		Bookings:   bookingRepo,
		BookingSvc: bookingService,
	}

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService)
	jobsHandler := handlers.NewJobsHandler(assignmentService, bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Booking endpoints.
		CreateBookingHandler:     bookingHandler.CreateBooking,
		GetBookingHandler:        bookingHandler.GetBooking,
		ListBookingsHandler:      bookingHandler.ListBookings,
		CancelBookingHandler:     bookingHandler.CancelBooking,
		RescheduleBookingHandler: bookingHandler.RescheduleBooking,
		RateBookingHandler:       bookingHandler.RateBooking,

		// Cleaner job endpoints.
		ListOffersHandler:         jobsHandler.ListOffers,
		AcceptJobHandler:          jobsHandler.AcceptJob,
		RejectJobHandler:          jobsHandler.RejectJob,
		StartJobHandler:           jobsHandler.StartJob,
		CompleteJobHandler:        jobsHandler.CompleteJob,
		UpdateAvailabilityHandler: jobsHandler.UpdateAvailability,
		GetEarningsHandler:        jobsHandler.GetEarnings,

		// Device endpoints.
		RegisterDeviceTokenHandler: handlers.RegisterDeviceTokenHandler(userRepo),

		// Payment endpoints.
		CreateIntentHandler:  paymentHandler.CreateIntent,
		StripeWebhookHandler: paymentHandler.StripeWebhook,

		// Admin endpoints.
		TriggerSweepHandler: jobsHandler.TriggerSweep,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker: consumes queued notifications and reminders, and
	// runs the auto-assignment sweep on its schedule.
	directNotifier, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize FCM notifier: %v", err)
	}
	worker := cron.NewWorker(cron.WorkerDeps{
		RedisOpt:    queueOpt,
		Assignments: assignmentService,
		Bookings:    bookingRepo,
		Notifier:    directNotifier,
		Locker:      utils.GetCacheClient(),
	})
	worker.Start()

	sweepCtx, stopSweeps := context.WithCancel(context.Background())
	go cron.StartSweepScheduler(sweepCtx, queueClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopSweeps()
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	database.CloseDB(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
