package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cleanly/config"
	"cleanly/models"
	"cleanly/services/notification"
	"cleanly/services/tasks"
	"cleanly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sweeper runs one auto-assignment pass over stale pending bookings.
type Sweeper interface {
	RunSweep() (models.SweepStats, error)
}

// BookingSource re-reads bookings when queued reminders fire.
type BookingSource interface {
	GetByID(id string) (*models.Booking, error)
}

// WorkerDeps wires the background worker to the queue and the services it
// drives.
type WorkerDeps struct {
	RedisOpt    asynq.RedisClientOpt
	Assignments Sweeper
	Bookings    BookingSource
	Notifier    notification.NotificationService
	Locker      *redis.Client
}

// Worker consumes queued tasks: push notifications, pre-visit reminders and
// the periodic auto-assignment sweep.
type Worker struct {
	deps WorkerDeps
	srv  *asynq.Server
}

func NewWorker(deps WorkerDeps) *Worker {
	concurrency := config.AppConfig.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(deps.RedisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})
	return &Worker{deps: deps, srv: srv}
}

// Start runs the task consumer in the background, retrying startup a few
// times before giving up.
func (w *Worker) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendNotification, w.handleNotification)
	mux.HandleFunc(tasks.TypeBookingReminder, w.handleReminder)
	mux.HandleFunc(tasks.TypeAssignmentSweep, w.handleSweep)

	go func() {
		logger := utils.GetLogger().Sugar()
		logger.Info("worker: starting task consumer")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := w.srv.Run(mux); err != nil {
				logger.Errorf("worker: attempt %d/%d failed to start: %v", attempt, maxAttempts, err)
				if attempt == maxAttempts {
					logger.Fatal("worker: max startup attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// Shutdown stops the consumer, waiting for in-flight tasks to finish.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleNotification(ctx context.Context, t *asynq.Task) error {
	var p models.NotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("worker: bad notification payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := w.deps.Notifier.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, p.Data); err != nil {
		utils.GetLogger().Warn("worker: push delivery failed",
			zap.String("userID", p.UserID), zap.Error(err))
		return err
	}
	return nil
}

// handleReminder re-reads the booking when the task fires, so a cancellation
// or reschedule between scheduling and delivery drops or corrects the nudge.
func (w *Worker) handleReminder(ctx context.Context, t *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("worker: bad reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	b, err := w.deps.Bookings.GetByID(p.BookingID)
	if err != nil || b == nil {
		utils.GetLogger().Info("worker: dropping reminder for missing booking",
			zap.String("bookingID", p.BookingID))
		return nil
	}
	if b.Status != models.BookingStatusConfirmed {
		return nil
	}

	body := fmt.Sprintf("Reminder: your %s clean is coming up on %s at %s.",
		b.Service.Type, b.Schedule.Date, b.Schedule.Time)
	data := map[string]string{"booking_id": b.ID, "event": "booking_reminder"}
	if err := w.deps.Notifier.SendUserPushNotification(ctx, b.ClientID, "Upcoming cleaning visit", body, data); err != nil {
		utils.GetLogger().Warn("worker: reminder delivery failed",
			zap.String("bookingID", b.ID), zap.Error(err))
		return err
	}
	return nil
}

// handleSweep runs one auto-assignment pass. A Redis lock collapses
// overlapping triggers (scheduler ticks, manual admin sweeps) into a
// single run.
func (w *Worker) handleSweep(ctx context.Context, _ *asynq.Task) error {
	logger := utils.GetLogger()

	acquired, err := w.deps.Locker.SetNX(ctx, utils.SweepLockKey,
		time.Now().UTC().Format(time.RFC3339), utils.SweepLockTTL).Result()
	if err != nil {
		return fmt.Errorf("worker: sweep lock: %w", err)
	}
	if !acquired {
		logger.Info("worker: sweep already running, skipping")
		return nil
	}
	defer w.deps.Locker.Del(context.Background(), utils.SweepLockKey)

	stats, err := w.deps.Assignments.RunSweep()
	if err != nil {
		return fmt.Errorf("worker: sweep failed: %w", err)
	}
	logger.Info("worker: sweep finished",
		zap.Int("processed", stats.Processed),
		zap.Int("assigned", stats.Assigned),
		zap.Int("failed", stats.Failed))
	return nil
}

// StartSweepScheduler enqueues an assignment sweep on a fixed interval until
// ctx is cancelled.
func StartSweepScheduler(ctx context.Context, client *asynq.Client) {
	interval := time.Duration(config.AppConfig.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	logger := utils.GetLogger().Sugar()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	enqueue := func() {
		task, opts, err := tasks.NewSweepTask()
		if err != nil {
			logger.Errorf("sweep scheduler: build task: %v", err)
			return
		}
		if _, err := client.EnqueueContext(ctx, task, opts...); err != nil {
			logger.Errorf("sweep scheduler: enqueue: %v", err)
		}
	}

	// Sweep once at startup, then on every tick.
	enqueue()

	for {
		select {
		case <-ctx.Done():
			logger.Info("sweep scheduler: stopped")
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
