package notification

import (
	"context"
	"fmt"
	"time"

	"cleanly/models"
	"cleanly/services/tasks"

	"github.com/hibiken/asynq"
)

// AsyncNotificationService queues pushes through asynq instead of calling
// FCM inline. Request paths use this so delivery latency and FCM outages
// never block or fail a booking operation.
type AsyncNotificationService struct {
	client *asynq.Client
}

func NewAsyncNotificationService(client *asynq.Client) (*AsyncNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	return &AsyncNotificationService{client: client}, nil
}

// SendUserPushNotification enqueues the push for the background worker.
func (s *AsyncNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	payload := models.NotificationPayload{
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   data,
	}

	task, opts, err := tasks.NewNotificationTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

// ScheduleBookingReminder queues a reminder push for the day before the
// booking's scheduled start. Bookings confirmed with less than a day to go
// get no reminder.
func (s *AsyncNotificationService) ScheduleBookingReminder(ctx context.Context, b *models.Booking) error {
	start, err := b.Schedule.StartTime()
	if err != nil {
		return fmt.Errorf("failed to resolve booking start: %w", err)
	}
	fireAt := start.Add(-24 * time.Hour)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{BookingID: b.ID, ClientID: b.ClientID}
	task, opts, err := tasks.NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
