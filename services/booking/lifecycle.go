package booking

import (
	"fmt"
	"time"

	"cleanly/models"
	"cleanly/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// legalTransitions is the single source of truth for explicit status
// changes. Assignment (pending stays pending until payment lands) and the
// payment webhook path both funnel through the same table.
var legalTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed,
		models.BookingStatusInProgress,
		models.BookingStatusCancelled,
		models.BookingStatusCancelledByClient,
		models.BookingStatusCancelledByCleaner,
		models.BookingStatusCancelledAdmin,
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
		models.BookingStatusCancelledByClient,
		models.BookingStatusCancelledByCleaner,
		models.BookingStatusCancelledAdmin,
	},
	models.BookingStatusInProgress: {
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
		models.BookingStatusCancelledByClient,
		models.BookingStatusCancelledByCleaner,
		models.BookingStatusCancelledAdmin,
	},
}

// CanTransition reports whether moving between the two statuses is legal.
// Terminal states have no outgoing transitions.
func CanTransition(from, to models.BookingStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// CancellationStatus maps the cancelling party to the recorded variant.
// Refund-driven cancellation uses the plain cancelled status instead.
func CancellationStatus(by models.UserRole) models.BookingStatus {
	switch by {
	case models.RoleClient:
		return models.BookingStatusCancelledByClient
	case models.RoleCleaner:
		return models.BookingStatusCancelledByCleaner
	default:
		return models.BookingStatusCancelledAdmin
	}
}

// transition validates the move against the table and commits it with a
// guarded write. When a concurrent writer got there first, the booking is
// re-read so the error reports the real current status.
func (svc *DefaultBookingService) transition(b *models.Booking, to models.BookingStatus, extra bson.M) (*models.Booking, error) {
	if !CanTransition(b.Status, to) {
		return nil, &InvalidTransitionError{From: b.Status, To: to}
	}

	ok, err := svc.BookingRepo.UpdateStatusGuarded(b.ID, b.Status, to, extra)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, gerr := svc.BookingRepo.GetByID(b.ID)
		if gerr != nil || current == nil {
			return nil, &InvalidTransitionError{From: b.Status, To: to}
		}
		utils.GetLogger().Warn("booking transition lost race",
			zap.String("bookingID", b.ID),
			zap.String("from", string(b.Status)),
			zap.String("current", string(current.Status)),
			zap.String("to", string(to)))
		return nil, &InvalidTransitionError{From: current.Status, To: to}
	}

	b.Status = to
	return b, nil
}

// MarkPaymentSucceeded applies a successful payment to the booking: the
// payment sub-record is stamped, and if a cleaner is already assigned the
// booking flips pending → confirmed. With no cleaner yet it stays pending
// until assignment completes the second factor.
func (svc *DefaultBookingService) MarkPaymentSucceeded(bookingID string) (*models.Booking, error) {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := svc.BookingRepo.UpdateFields(b.ID, bson.M{
		"payment.status":  models.PaymentStatusSucceeded,
		"payment.paid_at": now,
	}); err != nil {
		return nil, err
	}
	b.Payment.Status = models.PaymentStatusSucceeded
	b.Payment.PaidAt = &now

	if b.Status == models.BookingStatusPending && b.Assigned() {
		confirmed, err := svc.transition(b, models.BookingStatusConfirmed, nil)
		if err != nil {
			// Payment was recorded; confirmation can be retried by the
			// next webhook delivery or resolved manually.
			utils.GetLogger().Warn("payment recorded but confirmation failed",
				zap.String("bookingID", b.ID), zap.Error(err))
			return b, nil
		}
		svc.notifyAsync(confirmed.ClientID, "Booking confirmed",
			fmt.Sprintf("Payment received. Your %s clean on %s at %s is confirmed.",
				confirmed.Service.Type, confirmed.Schedule.Date, confirmed.Schedule.Time),
			map[string]string{"booking_id": confirmed.ID, "event": "booking_confirmed"})
		svc.scheduleReminder(confirmed)
		return confirmed, nil
	}
	return b, nil
}

// MarkPaymentFailed records a failed payment attempt. The booking itself
// stays where it is; the client can retry payment.
func (svc *DefaultBookingService) MarkPaymentFailed(bookingID, reason string) error {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return err
	}
	return svc.BookingRepo.UpdateFields(b.ID, bson.M{
		"payment.status":     models.PaymentStatusFailed,
		"payment.last_error": reason,
	})
}

// MarkRefunded records a refund and cancels the booking.
func (svc *DefaultBookingService) MarkRefunded(bookingID string) (*models.Booking, error) {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := svc.BookingRepo.UpdateFields(b.ID, bson.M{
		"payment.status":      models.PaymentStatusRefunded,
		"payment.refunded_at": now,
	}); err != nil {
		return nil, err
	}
	b.Payment.Status = models.PaymentStatusRefunded
	b.Payment.RefundedAt = &now

	if b.Status.IsTerminal() {
		// Refund after completion or cancellation only touches the
		// payment sub-record.
		return b, nil
	}
	return svc.transition(b, models.BookingStatusCancelled, bson.M{"cancelled_at": now})
}
