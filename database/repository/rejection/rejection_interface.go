package rejectionRepo

import "cleanly/models"

// RejectionRepository defines methods for job rejection data access.
// Rejections are keyed by the (cleaner, booking) pair, so writes are
// naturally idempotent.
type RejectionRepository interface {
	// Upsert stores a rejection record, overwriting any existing record
	// for the same (cleaner, booking) pair.
	Upsert(rejection models.JobRejection) error
	// Exists reports whether the cleaner has declined the booking.
	Exists(cleanerID, bookingID string) (bool, error)
	// Delete removes the rejection record for the pair, if present.
	Delete(cleanerID, bookingID string) error
	// ListForBooking retrieves all rejection records against a booking.
	ListForBooking(bookingID string) ([]models.JobRejection, error)
}
