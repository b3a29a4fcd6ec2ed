package assignment

import (
	"testing"
	"time"

	"cleanly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completedJob seeds a finished booking with a price, rating and completion
// time.
func completedJob(id string, price float64, rating int, completedAt time.Time) *models.Booking {
	return testBooking(id, func(b *models.Booking) {
		b.CleanerID = "cleaner-1"
		b.Status = models.BookingStatusCompleted
		b.Service.Price = price
		b.Rating = rating
		b.CompletedAt = &completedAt
	})
}

// TestGetEarnings totals completed work, buckets recent jobs into the
// current week and month, and sums confirmed jobs as pending payments.
func TestGetEarnings(t *testing.T) {
	now := time.Now().UTC()
	lastYear := now.AddDate(-1, 0, 0)

	upcoming := testBooking("bk-upcoming", func(b *models.Booking) {
		b.CleanerID = "cleaner-1"
		b.Status = models.BookingStatusConfirmed
		b.Service.Price = 75
	})
	bookings := newFakeBookingRepo(
		completedJob("bk-recent", 50, 5, now),
		completedJob("bk-old", 100, 4, lastYear),
		completedJob("bk-unrated", 30, 0, now),
		upcoming,
	)
	svc := newAssignmentService(bookings, newFakeUserRepo(testCleaner("cleaner-1")), newFakeRejectionRepo())

	got, err := svc.GetEarnings("cleaner-1")
	require.NoError(t, err)

	assert.Equal(t, 180.0, got.TotalEarnings)
	assert.Equal(t, 80.0, got.ThisMonth)
	assert.Equal(t, 80.0, got.ThisWeek)
	assert.Equal(t, 75.0, got.PendingPayments)
	assert.Equal(t, 3, got.CompletedJobs)
	assert.Equal(t, 4.5, got.AverageRating)
}

// TestGetEarningsNoHistory returns a zeroed summary for a cleaner with no
// completed work, leaving the average rating unset.
func TestGetEarningsNoHistory(t *testing.T) {
	svc := newAssignmentService(newFakeBookingRepo(), newFakeUserRepo(testCleaner("cleaner-1")), newFakeRejectionRepo())

	got, err := svc.GetEarnings("cleaner-1")
	require.NoError(t, err)
	assert.Equal(t, &models.EarningsSummary{}, got)
}

// TestGetEarningsUnknownCleaner refuses unknown callers.
func TestGetEarningsUnknownCleaner(t *testing.T) {
	svc := newAssignmentService(newFakeBookingRepo(), newFakeUserRepo(), newFakeRejectionRepo())

	_, err := svc.GetEarnings("ghost")
	assert.ErrorIs(t, err, ErrCleanerNotFound)
}
