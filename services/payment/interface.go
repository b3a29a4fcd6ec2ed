package payment

import (
	bookingRepo "cleanly/database/repository/booking"
	"cleanly/models"
	"cleanly/services/booking"
)

// PaymentService fronts Stripe for booking payments: creating payment
// intents and applying webhook events back onto bookings.
type PaymentService interface {
	CreateIntent(bookingID, clientID string) (*models.PaymentIntentDetails, error)
	HandleWebhook(payload []byte, signature string) (string, error)
}

// DefaultPaymentService implements PaymentService. Booking state changes go
// through the booking service so the webhook path obeys the same transition
// rules as everything else.
type DefaultPaymentService struct {
	Bookings   bookingRepo.BookingRepository
	BookingSvc booking.BookingService
}
