package models

// NotificationPayload is the wire shape of a queued push notification.
// Title and body are composed at the call site; the worker only delivers.
type NotificationPayload struct {
	UserID string            `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// ReminderPayload is the wire shape of a scheduled pre-visit reminder. The
// worker re-reads the booking when the task fires, so a cancellation between
// scheduling and delivery simply drops the reminder.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	ClientID  string `json:"client_id"`
}
