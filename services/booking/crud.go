package booking

import (
	"context"
	"fmt"
	"time"

	"cleanly/config"
	"cleanly/models"
	"cleanly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateBooking validates the request, prices the service and persists a new
// pending booking. Assignment happens later, either by a cleaner accepting
// the offer or by the background sweep.
func (svc *DefaultBookingService) CreateBooking(clientID string, in models.CreateBookingInput) (*models.Booking, error) {
	client, err := svc.UserRepo.GetByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil || client.Role != models.RoleClient || !client.Active {
		return nil, ErrClientNotFound
	}

	serviceType := in.ServiceType
	if !serviceType.Valid() {
		return nil, &ValidationError{Field: "service_type", Message: "unsupported service type"}
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, &ValidationError{Field: "time", Message: "must be HH:MM"}
	}

	price := CalculatePrice(serviceType, in.Duration)
	now := time.Now().UTC()

	b := &models.Booking{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Status:   models.BookingStatusPending,
		Service: models.ServiceDetails{
			Type:                serviceType,
			Duration:            in.Duration,
			Price:               price,
			SpecialRequirements: in.SpecialRequirements,
		},
		Schedule: models.Schedule{
			Date:     in.Date,
			Time:     in.Time,
			Timezone: config.AppConfig.PlatformTimezone,
		},
		Location: models.Location{
			Address:      in.Address,
			Instructions: in.Instructions,
		},
		Payment: models.Payment{
			Status: models.PaymentStatusPending,
			Amount: price,
		},
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.BookingRepo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	svc.notifyAsync(clientID, "Booking received",
		fmt.Sprintf("Your %s clean on %s at %s is booked. We're finding you a cleaner.", serviceType, b.Schedule.Date, b.Schedule.Time),
		map[string]string{"booking_id": b.ID, "event": "booking_created"})

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("clientID", clientID),
		zap.String("serviceType", string(serviceType)),
		zap.Float64("price", price))
	return b, nil
}

// GetBooking fetches a booking or reports ErrBookingNotFound.
func (svc *DefaultBookingService) GetBooking(bookingID string) (*models.Booking, error) {
	b, err := svc.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// ListUserBookings returns the caller's bookings: clients see bookings they
// placed, cleaners see jobs assigned to them. A non-empty status narrows the
// result.
func (svc *DefaultBookingService) ListUserBookings(userID string, role models.UserRole, status models.BookingStatus, limit int64) ([]models.Booking, error) {
	if role == models.RoleCleaner {
		var statuses []models.BookingStatus
		if status != "" {
			statuses = []models.BookingStatus{status}
		}
		return svc.BookingRepo.ListByCleaner(userID, statuses)
	}

	bookings, err := svc.BookingRepo.ListByClient(userID, limit)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return bookings, nil
	}
	filtered := bookings[:0]
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// CancelBooking cancels an active booking, recording who cancelled it.
func (svc *DefaultBookingService) CancelBooking(bookingID string, cancelledBy models.UserRole) (*models.Booking, error) {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cancelled, err := svc.transition(b, CancellationStatus(cancelledBy), bson.M{"cancelled_at": now})
	if err != nil {
		return nil, err
	}
	cancelled.CancelledAt = &now

	if cancelled.Assigned() && cancelledBy != models.RoleCleaner {
		svc.notifyAsync(cancelled.CleanerID, "Job cancelled",
			fmt.Sprintf("The %s clean on %s has been cancelled.", cancelled.Service.Type, cancelled.Schedule.Date),
			map[string]string{"booking_id": cancelled.ID, "event": "booking_cancelled"})
	}
	if cancelledBy != models.RoleClient {
		svc.notifyAsync(cancelled.ClientID, "Booking cancelled",
			fmt.Sprintf("Your %s clean on %s has been cancelled.", cancelled.Service.Type, cancelled.Schedule.Date),
			map[string]string{"booking_id": cancelled.ID, "event": "booking_cancelled"})
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingID", cancelled.ID),
		zap.String("cancelledBy", string(cancelledBy)))
	return cancelled, nil
}

// StartJob moves an assigned booking into in_progress when the cleaner
// arrives on site.
func (svc *DefaultBookingService) StartJob(bookingID string) (*models.Booking, error) {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Assigned() {
		return nil, &InvalidTransitionError{From: b.Status, To: models.BookingStatusInProgress}
	}
	return svc.transition(b, models.BookingStatusInProgress, nil)
}

// CompleteJob marks the booking completed. Only the assigned cleaner may
// complete it, and only from confirmed or in_progress.
func (svc *DefaultBookingService) CompleteJob(bookingID, cleanerID string) (*models.Booking, error) {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CleanerID != cleanerID {
		return nil, ErrBookingNotFound
	}

	now := time.Now().UTC()
	completed, err := svc.transition(b, models.BookingStatusCompleted, bson.M{"completed_at": now})
	if err != nil {
		return nil, err
	}
	completed.CompletedAt = &now

	if err := svc.UserRepo.IncrementCleanerJobs(cleanerID); err != nil {
		utils.GetLogger().Warn("failed to bump cleaner job count",
			zap.String("cleanerID", cleanerID), zap.Error(err))
	}

	svc.notifyAsync(completed.ClientID, "Cleaning complete",
		fmt.Sprintf("Your %s clean is done. Rate your cleaner to help others.", completed.Service.Type),
		map[string]string{"booking_id": completed.ID, "event": "booking_completed"})

	utils.GetLogger().Info("booking completed",
		zap.String("bookingID", completed.ID),
		zap.String("cleanerID", cleanerID))
	return completed, nil
}

// RateBooking records the client's rating and review on a completed booking.
func (svc *DefaultBookingService) RateBooking(bookingID, clientID string, in models.RateBookingInput) error {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return err
	}
	if b.ClientID != clientID {
		return ErrBookingNotFound
	}
	if b.Status != models.BookingStatusCompleted {
		return ErrNotCompleted
	}
	return svc.BookingRepo.UpdateFields(b.ID, bson.M{
		"rating": in.Rating,
		"review": in.Review,
	})
}

// UpdateSchedule reschedules a pending booking. Duration changes reprice the
// service; assigned or paid bookings cannot be rescheduled here.
func (svc *DefaultBookingService) UpdateSchedule(bookingID string, in models.UpdateBookingInput) (*models.Booking, error) {
	b, err := svc.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusPending || b.Assigned() || b.Paid() {
		return nil, ErrNotPending
	}

	update := bson.M{}
	if in.Date != "" {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
		}
		update["schedule.date"] = in.Date
		b.Schedule.Date = in.Date
	}
	if in.Time != "" {
		if _, err := time.Parse("15:04", in.Time); err != nil {
			return nil, &ValidationError{Field: "time", Message: "must be HH:MM"}
		}
		update["schedule.time"] = in.Time
		b.Schedule.Time = in.Time
	}
	if in.Duration > 0 {
		price := CalculatePrice(b.Service.Type, in.Duration)
		update["service.duration"] = in.Duration
		update["service.price"] = price
		update["payment.amount"] = price
		b.Service.Duration = in.Duration
		b.Service.Price = price
		b.Payment.Amount = price
	}
	if in.Notes != "" {
		update["notes"] = in.Notes
		b.Notes = in.Notes
	}
	if len(update) == 0 {
		return b, nil
	}

	if err := svc.BookingRepo.UpdateFields(b.ID, update); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}
	return b, nil
}

// notifyAsync dispatches a push notification without blocking the caller.
// Delivery failures are logged and dropped.
func (svc *DefaultBookingService) notifyAsync(userID, title, body string, data map[string]string) {
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

// scheduleReminder queues the pre-visit reminder for a freshly confirmed
// booking. Scheduling failures are logged and dropped.
func (svc *DefaultBookingService) scheduleReminder(b *models.Booking) {
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
