package assignment

import (
	"fmt"
	"strconv"
	"time"

	bookingRepo "cleanly/database/repository/booking"
	"cleanly/models"
	"cleanly/utils"

	"go.uber.org/zap"
)

// DefaultMaxBookingsPerDay caps a cleaner's daily jobs when their profile
// does not set a limit.
const DefaultMaxBookingsPerDay = 3

// AvailabilityResult carries the outcome of an availability check. Degraded
// marks results produced by the fail-open path, where the check itself
// errored and the cleaner is treated as available rather than silently
// dropped from offers.
type AvailabilityResult struct {
	Available bool
	Degraded  bool
	Reason    string
}

// AvailabilityChecker decides whether a cleaner can take a booking's slot.
type AvailabilityChecker interface {
	IsAvailable(cleaner *models.User, b *models.Booking) AvailabilityResult
}

// DefaultAvailabilityChecker checks same-day conflicts against stored
// bookings plus the cleaner's own calendar settings.
type DefaultAvailabilityChecker struct {
	Bookings bookingRepo.BookingRepository
}

func NewDefaultAvailabilityChecker(bookings bookingRepo.BookingRepository) *DefaultAvailabilityChecker {
	if bookings == nil {
		panic("availability checker: booking repository is required")
	}
	return &DefaultAvailabilityChecker{Bookings: bookings}
}

// IsAvailable runs the calendar checks. When a check itself errors the
// cleaner is reported available with Degraded set.
func (c *DefaultAvailabilityChecker) IsAvailable(cleaner *models.User, b *models.Booking) AvailabilityResult {
	res, err := c.check(cleaner, b)
	if err != nil {
		utils.GetLogger().Warn("availability check degraded, treating cleaner as available",
			zap.String("cleanerID", cleaner.ID),
			zap.String("bookingID", b.ID),
			zap.Error(err))
		return AvailabilityResult{Available: true, Degraded: true, Reason: err.Error()}
	}
	return res
}

func (c *DefaultAvailabilityChecker) check(cleaner *models.User, b *models.Booking) (AvailabilityResult, error) {
	start, err := minutesOfDay(b.Schedule.Time)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("bad candidate time %q: %w", b.Schedule.Time, err)
	}
	end := start + float64(b.Service.Duration)*60

	// Every booking on the date blocks its slot, whatever its status. An
	// unpaid pending job still holds the cleaner's time until it resolves.
	sameDay, err := c.Bookings.ListCleanerJobsOn(cleaner.ID, b.Schedule.Date)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("failed to list same-day bookings: %w", err)
	}
	existing := sameDay[:0]
	for _, other := range sameDay {
		if other.ID != b.ID {
			existing = append(existing, other)
		}
	}
	for _, other := range existing {
		os, err := minutesOfDay(other.Schedule.Time)
		if err != nil {
			return AvailabilityResult{}, fmt.Errorf("bad stored time on booking %s: %w", other.ID, err)
		}
		oe := os + float64(other.Service.Duration)*60
		if start < oe && os < end {
			return AvailabilityResult{
				Reason: fmt.Sprintf("conflicts with booking %s at %s", other.ID, other.Schedule.Time),
			}, nil
		}
	}

	// Missing profile fields fall back to open defaults.
	var profile models.CleanerProfile
	if cleaner.Cleaner != nil {
		profile = *cleaner.Cleaner
	}

	for _, blocked := range profile.BlockedDates {
		if blocked == b.Schedule.Date {
			return AvailabilityResult{Reason: "date is blocked"}, nil
		}
	}

	maxPerDay := profile.MaxBookingsPerDay
	if maxPerDay <= 0 {
		maxPerDay = DefaultMaxBookingsPerDay
	}
	if len(existing) >= maxPerDay {
		return AvailabilityResult{
			Reason: fmt.Sprintf("daily limit of %d bookings reached", maxPerDay),
		}, nil
	}

	// An empty weekly map means no working-hours restriction at all. A
	// configured map with no windows for this weekday means not working
	// that day.
	if len(profile.Availability) > 0 {
		day, err := time.Parse("2006-01-02", b.Schedule.Date)
		if err != nil {
			return AvailabilityResult{}, fmt.Errorf("bad candidate date %q: %w", b.Schedule.Date, err)
		}
		windows := profile.Availability[weekdayKey(day)]
		if len(windows) == 0 {
			return AvailabilityResult{Reason: "not working that day"}, nil
		}
		contained := false
		for _, w := range windows {
			ws, err := minutesOfDay(w.Start)
			if err != nil {
				return AvailabilityResult{}, fmt.Errorf("bad window start %q: %w", w.Start, err)
			}
			we, err := minutesOfDay(w.End)
			if err != nil {
				return AvailabilityResult{}, fmt.Errorf("bad window end %q: %w", w.End, err)
			}
			if start >= ws && end <= we {
				contained = true
				break
			}
		}
		if !contained {
			return AvailabilityResult{Reason: "outside working hours"}, nil
		}
	}

	return AvailabilityResult{Available: true}, nil
}

// weekdayKey maps a date to the weekly-availability map key, where Monday
// is "0" and Sunday is "6".
func weekdayKey(t time.Time) string {
	return strconv.Itoa((int(t.Weekday()) + 6) % 7)
}

func minutesOfDay(hhmm string) (float64, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return float64(t.Hour()*60 + t.Minute()), nil
}
