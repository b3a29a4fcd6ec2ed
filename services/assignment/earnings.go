package assignment

import (
	"fmt"
	"math"
	"time"

	"cleanly/models"
)

// GetEarnings totals a cleaner's completed work. Monthly and weekly buckets
// run from the 1st and from Monday respectively, keyed on when each job was
// completed. Pending payments are confirmed jobs not yet carried out.
func (svc *DefaultAssignmentService) GetEarnings(cleanerID string) (*models.EarningsSummary, error) {
	if _, err := svc.getCleaner(cleanerID); err != nil {
		return nil, err
	}

	completed, err := svc.Bookings.ListCompletedByCleaner(cleanerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed bookings: %w", err)
	}

	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfWeek := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -int((int(now.Weekday())+6)%7))

	summary := &models.EarningsSummary{}
	ratingSum := 0.0
	ratingCount := 0

	for _, b := range completed {
		price := b.Service.Price
		summary.TotalEarnings += price
		summary.CompletedJobs++

		if b.Rating > 0 {
			ratingSum += float64(b.Rating)
			ratingCount++
		}

		if b.CompletedAt == nil {
			continue
		}
		completedAt := b.CompletedAt.UTC()
		if !completedAt.Before(startOfMonth) {
			summary.ThisMonth += price
		}
		if !completedAt.Before(startOfWeek) {
			summary.ThisWeek += price
		}
	}

	confirmed, err := svc.Bookings.ListByCleaner(cleanerID, []models.BookingStatus{models.BookingStatusConfirmed})
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed bookings: %w", err)
	}
	for _, b := range confirmed {
		summary.PendingPayments += b.Service.Price
	}

	if ratingCount > 0 {
		summary.AverageRating = math.Round(ratingSum/float64(ratingCount)*100) / 100
	}
	return summary, nil
}
