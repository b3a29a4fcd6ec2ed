package assignment

import (
	"testing"

	"cleanly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestListOpenJobs builds the feed from pending unassigned bookings the
// cleaner can actually take, sorted by date then start time.
func TestListOpenJobs(t *testing.T) {
	later := testBooking("bk-later", func(b *models.Booking) {
		b.Schedule.Time = "14:00"
	})
	earlier := testBooking("bk-earlier")
	nextDay := testBooking("bk-next-day", func(b *models.Booking) {
		b.Schedule.Date = "2025-10-21"
		b.Schedule.Time = "08:00"
	})
	taken := testBooking("bk-taken", func(b *models.Booking) {
		b.CleanerID = "someone-else"
		b.Status = models.BookingStatusConfirmed
	})
	bookings := newFakeBookingRepo(later, earlier, nextDay, taken)

	users := newFakeUserRepo(testCleaner("cleaner-1"), testClient("client-1"))
	svc := newAssignmentService(bookings, users, newFakeRejectionRepo())

	offers, err := svc.ListOpenJobs("cleaner-1")
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, "bk-earlier", offers[0].BookingID)
	assert.Equal(t, "bk-later", offers[1].BookingID)
	assert.Equal(t, "bk-next-day", offers[2].BookingID)

	first := offers[0]
	assert.Equal(t, "Sarah M.", first.ClientName)
	assert.Equal(t, models.ServiceTypeRegular, first.ServiceType)
	assert.Equal(t, 2, first.Duration)
	assert.Equal(t, 50.0, first.Payment)
	assert.Equal(t, 4.0, first.Distance)
	assert.Equal(t, "SW4 7AB", first.Address.Postcode)
}

// TestListOpenJobsFilters hides declined, mismatched and out-of-range jobs,
// and drops slots the cleaner's calendar cannot take.
func TestListOpenJobsFilters(t *testing.T) {
	declined := testBooking("bk-declined")
	deepJob := testBooking("bk-deep", func(b *models.Booking) {
		b.Service.Type = models.ServiceTypeDeep
	})
	farAway := testBooking("bk-far", func(b *models.Booking) {
		b.Location.Address.Postcode = "SE5 8AA" // scores 8, beyond the radius below
	})
	conflicting := testBooking("bk-conflict", func(b *models.Booking) {
		b.Schedule.Time = "09:00"
	})
	held := testBooking("bk-held", func(b *models.Booking) {
		b.CleanerID = "cleaner-1"
		b.Status = models.BookingStatusConfirmed
		b.Schedule.Time = "08:00"
		b.Service.Duration = 2
	})
	keeper := testBooking("bk-keeper", func(b *models.Booking) {
		b.Schedule.Time = "13:00"
	})
	bookings := newFakeBookingRepo(declined, deepJob, farAway, conflicting, held, keeper)

	cleaner := testCleaner("cleaner-1", func(u *models.User) {
		u.Cleaner.ServiceTypes = []models.ServiceType{models.ServiceTypeRegular}
		u.Cleaner.Radius = 5
	})
	users := newFakeUserRepo(cleaner, testClient("client-1"))
	rejections := newFakeRejectionRepo()
	require.NoError(t, rejections.Upsert(models.NewJobRejection("cleaner-1", "bk-declined")))
	svc := newAssignmentService(bookings, users, rejections)

	offers, err := svc.ListOpenJobs("cleaner-1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "bk-keeper", offers[0].BookingID)
}

// TestListOpenJobsUnmeasurableDistance keeps jobs visible when either side
// has no postcode instead of hiding them behind an unknown distance.
func TestListOpenJobsUnmeasurableDistance(t *testing.T) {
	noPostcode := testBooking("bk-mystery", func(b *models.Booking) {
		b.Location.Address.Postcode = ""
	})
	bookings := newFakeBookingRepo(noPostcode)
	users := newFakeUserRepo(testCleaner("cleaner-1"), testClient("client-1"))
	svc := newAssignmentService(bookings, users, newFakeRejectionRepo())

	offers, err := svc.ListOpenJobs("cleaner-1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "bk-mystery", offers[0].BookingID)
	assert.Equal(t, 0.0, offers[0].Distance)
}

// TestListOpenJobsFallbackClientName masks the client entirely when their
// account cannot be resolved.
func TestListOpenJobsFallbackClientName(t *testing.T) {
	bookings := newFakeBookingRepo(testBooking("bk-1"))
	users := newFakeUserRepo(testCleaner("cleaner-1")) // no client record
	svc := newAssignmentService(bookings, users, newFakeRejectionRepo())

	offers, err := svc.ListOpenJobs("cleaner-1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Client", offers[0].ClientName)
}

// TestListOpenJobsUnknownCleaner refuses unknown callers.
func TestListOpenJobsUnknownCleaner(t *testing.T) {
	svc := newAssignmentService(newFakeBookingRepo(), newFakeUserRepo(), newFakeRejectionRepo())

	_, err := svc.ListOpenJobs("ghost")
	assert.ErrorIs(t, err, ErrCleanerNotFound)
}
