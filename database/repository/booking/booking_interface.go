package bookingRepo

import (
	"time"

	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Booking, error)
	// GetByPaymentIntent retrieves the booking holding the given Stripe
	// payment intent reference. Returns (nil, nil) when absent.
	GetByPaymentIntent(intentID string) (*models.Booking, error)
	// UpdateFields applies a partial $set update to a booking.
	UpdateFields(id string, fields bson.M) error
	// UpdateStatusGuarded moves a booking to a new status only while the
	// stored status still matches expected. Returns false when the guard fails.
	UpdateStatusGuarded(id string, expected, to models.BookingStatus, extra bson.M) (bool, error)
	// AssignCleaner commits a cleaner to a booking only while it is still
	// pending and unassigned. Returns false when the booking was already
	// claimed or has moved on.
	AssignCleaner(id, cleanerID string, assignmentType models.AssignmentType, markConfirmed bool) (bool, error)
	// ListByClient retrieves a client's bookings, newest first.
	ListByClient(clientID string, limit int64) ([]models.Booking, error)
	// ListByCleaner retrieves a cleaner's bookings in the given statuses, newest first.
	ListByCleaner(cleanerID string, statuses []models.BookingStatus) ([]models.Booking, error)
	// ListUnassignedPending retrieves pending, unassigned bookings created
	// before the cutoff, oldest first.
	ListUnassignedPending(cutoff time.Time) ([]models.Booking, error)
	// ListOpenOffers retrieves pending, unassigned bookings for the offers feed.
	ListOpenOffers(limit int64) ([]models.Booking, error)
	// ListCleanerJobsOn retrieves a cleaner's bookings on a date, any status.
	ListCleanerJobsOn(cleanerID, date string) ([]models.Booking, error)
	// ListCompletedByCleaner retrieves all of a cleaner's completed bookings.
	ListCompletedByCleaner(cleanerID string) ([]models.Booking, error)
}
