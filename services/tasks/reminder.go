package tasks

import (
	"encoding/json"
	"time"

	"cleanly/models"

	"github.com/hibiken/asynq"
)

// TypeBookingReminder nudges the client the day before a confirmed visit.
const TypeBookingReminder = "booking:reminder"

// NewBookingReminderTask builds a booking:reminder task that fires at the
// given time.
func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(2)}

	return task, opts, nil
}
