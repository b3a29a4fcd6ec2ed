package assignment

import (
	"context"
	"fmt"
	"time"

	"cleanly/models"
	"cleanly/services/booking"
	"cleanly/utils"

	"go.uber.org/zap"
)

// AcceptJob lets a cleaner claim an open booking. The booking must still be
// pending and unassigned, and the cleaner's calendar is re-checked at commit
// time because offers go out to many cleaners at once.
func (svc *DefaultAssignmentService) AcceptJob(bookingID, cleanerID string) (*models.Booking, error) {
	cleaner, err := svc.getCleaner(cleanerID)
	if err != nil {
		return nil, err
	}

	b, err := svc.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if b == nil {
		return nil, booking.ErrBookingNotFound
	}
	if b.CleanerID == cleanerID {
		// Retried accept from the cleaner who already holds the job.
		return b, nil
	}
	if b.Status != models.BookingStatusPending || b.Assigned() {
		return nil, ErrAlreadyAssigned
	}

	if res := svc.Checker.IsAvailable(cleaner, b); !res.Available {
		utils.GetLogger().Info("accept blocked by availability recheck",
			zap.String("bookingID", b.ID),
			zap.String("cleanerID", cleanerID),
			zap.String("reason", res.Reason))
		return nil, ErrNoLongerAvailable
	}

	ok, err := svc.Bookings.AssignCleaner(b.ID, cleanerID, models.AssignmentManual, b.Paid())
	if err != nil {
		return nil, fmt.Errorf("failed to assign booking %s: %w", b.ID, err)
	}
	if !ok {
		// Lost the commit race. A concurrent duplicate of this same
		// request still counts as a win.
		cur, rerr := svc.Bookings.GetByID(b.ID)
		if rerr == nil && cur != nil && cur.CleanerID == cleanerID {
			return cur, nil
		}
		return nil, ErrAlreadyAssigned
	}

	if err := svc.Rejections.Delete(cleanerID, b.ID); err != nil {
		utils.GetLogger().Warn("failed to clear rejection record",
			zap.String("bookingID", b.ID),
			zap.String("cleanerID", cleanerID),
			zap.Error(err))
	}

	now := time.Now().UTC()
	b.CleanerID = cleanerID
	b.AssignmentType = models.AssignmentManual
	b.AcceptedAt = &now
	if b.Paid() {
		b.Status = models.BookingStatusConfirmed
		svc.scheduleReminder(b)
	}

	svc.invalidateOffers(cleanerID)
	svc.notifyAssignment(b, cleaner)

	utils.GetLogger().Info("job accepted",
		zap.String("bookingID", b.ID),
		zap.String("cleanerID", cleanerID),
		zap.String("status", string(b.Status)))
	return b, nil
}

// RejectJob records that the cleaner declined the booking so it never shows
// in their feed again. Rejecting twice is a no-op success; the booking
// itself is untouched and stays offered to everyone else.
func (svc *DefaultAssignmentService) RejectJob(bookingID, cleanerID string) error {
	if _, err := svc.getCleaner(cleanerID); err != nil {
		return err
	}

	b, err := svc.Bookings.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if b == nil || b.Status != models.BookingStatusPending || b.Assigned() {
		// Nothing left to decline once the booking is taken or settled.
		return booking.ErrBookingNotFound
	}

	if err := svc.Rejections.Upsert(models.NewJobRejection(cleanerID, bookingID)); err != nil {
		return fmt.Errorf("failed to record rejection: %w", err)
	}

	svc.invalidateOffers(cleanerID)

	utils.GetLogger().Info("job rejected",
		zap.String("bookingID", bookingID),
		zap.String("cleanerID", cleanerID))
	return nil
}

// RunSweep assigns every stale pending booking it can. A booking is stale
// once it has sat unassigned past the assignment timeout. Problems with one
// booking never stop the rest of the batch; a booking no candidate can take
// simply waits for the next sweep.
func (svc *DefaultAssignmentService) RunSweep() (models.SweepStats, error) {
	var stats models.SweepStats

	cutoff := time.Now().UTC().Add(-AssignmentTimeout)
	stale, err := svc.Bookings.ListUnassignedPending(cutoff)
	if err != nil {
		return stats, fmt.Errorf("failed to list stale pending bookings: %w", err)
	}
	if len(stale) == 0 {
		return stats, nil
	}

	pool, err := svc.Users.ListCleaners()
	if err != nil {
		return stats, fmt.Errorf("failed to list cleaners: %w", err)
	}

	logger := utils.GetLogger()
	for i := range stale {
		b := &stale[i]
		stats.Processed++

		assigned, err := svc.autoAssign(b, pool)
		if err != nil {
			logger.Error("auto-assignment errored",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
		if assigned {
			stats.Assigned++
		} else {
			stats.Failed++
		}
	}

	logger.Info("auto-assignment sweep complete",
		zap.Int("processed", stats.Processed),
		zap.Int("assigned", stats.Assigned),
		zap.Int("failed", stats.Failed))
	return stats, nil
}

// autoAssign walks the ranked candidates for one booking and commits the
// first cleaner who has not declined it and is free for the slot.
func (svc *DefaultAssignmentService) autoAssign(b *models.Booking, pool []models.User) (bool, error) {
	logger := utils.GetLogger()

	candidates, err := svc.Ranker.Rank(b, pool)
	if err != nil {
		return false, err
	}
	if len(candidates) == 0 {
		logger.Warn("no suitable cleaners for booking", zap.String("bookingID", b.ID))
		return false, nil
	}

	for _, candidate := range candidates {
		cleaner := candidate.Cleaner

		// Rejections can land between ranking and this point.
		rejected, err := svc.Rejections.Exists(cleaner.ID, b.ID)
		if err != nil {
			logger.Warn("rejection lookup failed, skipping candidate",
				zap.String("bookingID", b.ID),
				zap.String("cleanerID", cleaner.ID),
				zap.Error(err))
			continue
		}
		if rejected {
			continue
		}

		if res := svc.Checker.IsAvailable(&cleaner, b); !res.Available {
			continue
		}

		ok, err := svc.Bookings.AssignCleaner(b.ID, cleaner.ID, models.AssignmentAuto, b.Paid())
		if err != nil {
			return false, fmt.Errorf("failed to assign booking %s: %w", b.ID, err)
		}
		if !ok {
			// A manual accept claimed it mid-sweep. Done with this booking.
			logger.Info("booking claimed during sweep",
				zap.String("bookingID", b.ID))
			return false, nil
		}

		if err := svc.Rejections.Delete(cleaner.ID, b.ID); err != nil {
			logger.Warn("failed to clear rejection record",
				zap.String("bookingID", b.ID),
				zap.String("cleanerID", cleaner.ID),
				zap.Error(err))
		}

		now := time.Now().UTC()
		b.CleanerID = cleaner.ID
		b.AssignmentType = models.AssignmentAuto
		b.AcceptedAt = &now
		if b.Paid() {
			b.Status = models.BookingStatusConfirmed
			svc.scheduleReminder(b)
		}

		svc.notifyAssignment(b, &cleaner)
		svc.notifyAsync(cleaner.ID, "New job assigned",
			fmt.Sprintf("You've been assigned a %s clean on %s at %s.", b.Service.Type, b.Schedule.Date, b.Schedule.Time),
			map[string]string{"booking_id": b.ID, "event": "job_assigned"})

		logger.Info("booking auto-assigned",
			zap.String("bookingID", b.ID),
			zap.String("cleanerID", cleaner.ID),
			zap.Float64("distance", candidate.Distance))
		return true, nil
	}

	logger.Warn("all ranked cleaners unavailable or declined",
		zap.String("bookingID", b.ID))
	return false, nil
}

// notifyAssignment tells the client who is coming.
func (svc *DefaultAssignmentService) notifyAssignment(b *models.Booking, cleaner *models.User) {
	svc.notifyAsync(b.ClientID, "Cleaner assigned",
		fmt.Sprintf("%s will take care of your %s clean on %s at %s.", cleaner.ShortName(), b.Service.Type, b.Schedule.Date, b.Schedule.Time),
		map[string]string{"booking_id": b.ID, "event": "cleaner_assigned"})
}

// notifyAsync dispatches a push notification without blocking assignment.
// Delivery failures are logged and dropped.
func (svc *DefaultAssignmentService) notifyAsync(userID, title, body string, data map[string]string) {
	if svc.NotifySvc == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.NotifySvc.SendUserPushNotification(ctx, userID, title, body, data); err != nil {
			utils.GetLogger().Warn("push notification dispatch failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}()
}

// scheduleReminder queues the pre-visit reminder once assignment confirms
// the booking. Scheduling failures are logged and dropped.
func (svc *DefaultAssignmentService) scheduleReminder(b *models.Booking) {
	if svc.Reminders == nil {
		return
	}
	booking := *b
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.Reminders.ScheduleBookingReminder(ctx, &booking); err != nil {
			utils.GetLogger().Warn("reminder scheduling failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}()
}
