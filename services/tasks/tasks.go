package tasks

import (
	"encoding/json"

	"cleanly/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeSendNotification delivers one queued push notification.
	TypeSendNotification = "notification:send"
	// TypeAssignmentSweep runs one auto-assignment pass over stale
	// pending bookings.
	TypeAssignmentSweep = "assignment:sweep"
)

// NewNotificationTask builds a notification:send task.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendNotification, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}

// NewSweepTask builds an assignment:sweep task. Sweeps are not retried on
// failure; the next scheduled run covers the same bookings anyway.
func NewSweepTask() (*asynq.Task, []asynq.Option, error) {
	task := asynq.NewTask(TypeAssignmentSweep, nil)
	opts := []asynq.Option{asynq.MaxRetry(0)}

	return task, opts, nil
}
