package assignment

import (
	"fmt"
	"strconv"

	"cleanly/models"
	"cleanly/services/booking"
	"cleanly/utils"

	"go.uber.org/zap"
)

// UpdateAvailability replaces a cleaner's weekly working windows, blocked
// dates and daily booking cap in one write, and returns the stored profile.
// A weekday absent from the map means not working that day; sending an empty
// map removes all working-hours restrictions.
func (svc *DefaultAssignmentService) UpdateAvailability(cleanerID string, in models.UpdateAvailabilityInput) (*models.CleanerProfile, error) {
	cleaner, err := svc.getCleaner(cleanerID)
	if err != nil {
		return nil, err
	}

	for day, windows := range in.Availability {
		d, err := strconv.Atoi(day)
		if err != nil || d < 0 || d > 6 {
			return nil, &booking.ValidationError{
				Field:   "availability",
				Message: fmt.Sprintf("weekday key %q must be 0 (Monday) through 6 (Sunday)", day),
			}
		}
		for _, w := range windows {
			start, err := minutesOfDay(w.Start)
			if err != nil {
				return nil, &booking.ValidationError{
					Field:   "availability",
					Message: fmt.Sprintf("window start %q must be HH:MM", w.Start),
				}
			}
			end, err := minutesOfDay(w.End)
			if err != nil {
				return nil, &booking.ValidationError{
					Field:   "availability",
					Message: fmt.Sprintf("window end %q must be HH:MM", w.End),
				}
			}
			if start >= end {
				return nil, &booking.ValidationError{
					Field:   "availability",
					Message: fmt.Sprintf("window %s-%s must start before it ends", w.Start, w.End),
				}
			}
		}
	}

	maxPerDay := in.MaxBookingsPerDay
	if maxPerDay <= 0 {
		maxPerDay = DefaultMaxBookingsPerDay
	}
	blocked := in.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}

	if err := svc.Users.UpdateCleanerAvailability(cleanerID, in.Availability, blocked, maxPerDay); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	utils.GetLogger().Info("cleaner availability updated",
		zap.String("cleanerID", cleanerID),
		zap.Int("days", len(in.Availability)),
		zap.Int("blockedDates", len(blocked)),
		zap.Int("maxPerDay", maxPerDay))

	var profile models.CleanerProfile
	if cleaner.Cleaner != nil {
		profile = *cleaner.Cleaner
	}
	profile.Availability = in.Availability
	profile.BlockedDates = blocked
	profile.MaxBookingsPerDay = maxPerDay
	return &profile, nil
}
