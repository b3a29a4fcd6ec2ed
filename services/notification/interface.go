package notification

import (
	"context"
	"fmt"

	userRepo "cleanly/database/repository/user"
	"cleanly/models"
	"cleanly/utils"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
)

// NotificationService defines methods for sending FCM pushes. Callers
// treat delivery as fire-and-forget: a failed push must never fail the
// booking operation that triggered it.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// ReminderScheduler queues a client reminder ahead of a confirmed booking.
// Only the queue-backed implementation supports this; the worker delivers
// the reminder when it fires.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, b *models.Booking) error
}

// DefaultNotificationService sends pushes directly through FCM. It is
// used by the background worker; request paths go through the async
// queue-backed implementation instead.
type DefaultNotificationService struct {
	users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{users: users}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("SendUserPushNotification: FCM client not initialized")
	}

	u, err := s.users.GetByIDWithProjection(userID, bson.M{"fcm_token": 1, "user_id": 1})
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}
