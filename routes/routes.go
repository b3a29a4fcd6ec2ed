package routes

import (
	"net/http"
	"time"

	"cleanly/handlers"
	"cleanly/middleware"
	"cleanly/models"
	"cleanly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the client-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleClient), hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.PUT("/:id/schedule", middleware.RequireRole(models.RoleClient), hb.RescheduleBookingHandler)
		api.POST("/:id/rate", middleware.RequireRole(models.RoleClient), hb.RateBookingHandler)
	}
}

// RegisterJobRoutes sets up the cleaner-facing job endpoints.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRole(models.RoleCleaner))
		api.GET("", hb.ListOffersHandler)
		api.POST("/:id/accept", hb.AcceptJobHandler)
		api.POST("/:id/reject", hb.RejectJobHandler)
		api.POST("/:id/start", hb.StartJobHandler)
		api.POST("/:id/complete", hb.CompleteJobHandler)
		api.PUT("/availability", hb.UpdateAvailabilityHandler)
		api.GET("/earnings", hb.GetEarningsHandler)
	}
}

// RegisterPaymentRoutes sets up payment intent creation and the Stripe
// webhook. The webhook stays outside auth; Stripe signs its own requests.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.StripeWebhookHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("/intent", middleware.RequireRole(models.RoleClient), hb.CreateIntentHandler)
	}
}

// RegisterDeviceRoutes sets up push-token registration for any signed-in user.
func RegisterDeviceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.PUT("/device-token", hb.RegisterDeviceTokenHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
		adminGroup.POST("/assignments/sweep", hb.TriggerSweepHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status := http.StatusOK
		if !health.Mongo || !health.Redis {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": health})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDeviceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
