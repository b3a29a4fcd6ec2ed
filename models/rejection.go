package models

import (
	"fmt"
	"time"
)

// RejectionReason labels why a cleaner/booking pair is excluded from matching.
const (
	RejectionCleanerDeclined = "cleaner_declined"
)

// JobRejection records that a cleaner declined a specific booking. The
// auto-assignment sweep filters candidates against these records so a
// declined job is never re-offered to the same cleaner.
type JobRejection struct {
	ID         string    `bson:"rejection_id" json:"rejection_id"` // "<cleaner_id>_<booking_id>"
	CleanerID  string    `bson:"cleaner_id" json:"cleaner_id"`
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	Reason     string    `bson:"reason" json:"reason"`
	RejectedAt time.Time `bson:"rejected_at" json:"rejected_at"`
}

// RejectionID builds the deterministic identifier for a cleaner/booking pair.
// Writing with this id makes repeated rejections overwrite rather than pile up.
func RejectionID(cleanerID, bookingID string) string {
	return fmt.Sprintf("%s_%s", cleanerID, bookingID)
}

// NewJobRejection builds a rejection record for the given pair.
func NewJobRejection(cleanerID, bookingID string) JobRejection {
	return JobRejection{
		ID:         RejectionID(cleanerID, bookingID),
		CleanerID:  cleanerID,
		BookingID:  bookingID,
		Reason:     RejectionCleanerDeclined,
		RejectedAt: time.Now().UTC(),
	}
}
