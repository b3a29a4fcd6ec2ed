package booking

import (
	"errors"
	"fmt"

	"cleanly/models"
)

// Typed conditions surfaced to handlers. Each maps to a specific HTTP
// status there; anything else is treated as an internal error.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrNotPending      = errors.New("booking is no longer pending")
	ErrNotCompleted    = errors.New("booking is not completed")
)

// InvalidTransitionError reports a status change the lifecycle forbids.
// From carries the booking's current status at the time of the attempt.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking transition from %q to %q", e.From, e.To)
}

// ValidationError reports malformed booking input that binding tags
// alone cannot catch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
