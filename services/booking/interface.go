package booking

import (
	bookingRepo "cleanly/database/repository/booking"
	userRepo "cleanly/database/repository/user"
	"cleanly/models"
	"cleanly/services/notification"
)

// BookingService owns booking CRUD and every status transition. It is the
// single writer of booking status; the assignment engine delegates its
// commit step here via the repository's conditional updates.
type BookingService interface {
	CreateBooking(clientID string, in models.CreateBookingInput) (*models.Booking, error)
	GetBooking(bookingID string) (*models.Booking, error)
	ListUserBookings(userID string, role models.UserRole, status models.BookingStatus, limit int64) ([]models.Booking, error)
	CancelBooking(bookingID string, cancelledBy models.UserRole) (*models.Booking, error)
	StartJob(bookingID string) (*models.Booking, error)
	CompleteJob(bookingID, cleanerID string) (*models.Booking, error)
	RateBooking(bookingID, clientID string, in models.RateBookingInput) error
	UpdateSchedule(bookingID string, in models.UpdateBookingInput) (*models.Booking, error)

	// Payment webhook application. The payment service verifies Stripe
	// events and delegates state changes here.
	MarkPaymentSucceeded(bookingID string) (*models.Booking, error)
	MarkPaymentFailed(bookingID, reason string) error
	MarkRefunded(bookingID string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	BookingRepo bookingRepo.BookingRepository
	UserRepo    userRepo.UserRepository
	NotifySvc   notification.NotificationService
	Reminders   notification.ReminderScheduler
}

// CanAccess reports whether a caller may read a booking: clients see their
// own, cleaners see jobs assigned to them, admins see everything.
func CanAccess(b *models.Booking, userID string, role models.UserRole) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleCleaner:
		return b.CleanerID == userID
	default:
		return b.ClientID == userID
	}
}
