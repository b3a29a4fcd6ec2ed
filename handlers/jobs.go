package handlers

import (
	"net/http"

	"cleanly/middleware"
	"cleanly/models"
	"cleanly/services/assignment"
	"cleanly/services/booking"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
)

// JobsHandler serves the cleaner-facing job endpoints.
type JobsHandler struct {
	Svc        assignment.AssignmentService
	BookingSvc booking.BookingService
}

func NewJobsHandler(svc assignment.AssignmentService, bookingSvc booking.BookingService) *JobsHandler {
	return &JobsHandler{Svc: svc, BookingSvc: bookingSvc}
}

// ListOffers returns the open jobs the authenticated cleaner can take.
func (h *JobsHandler) ListOffers(c *gin.Context) {
	offers, err := h.Svc.ListOpenJobs(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if offers == nil {
		offers = []models.JobOffer{}
	}
	c.JSON(http.StatusOK, gin.H{"jobs": offers, "count": len(offers)})
}

// AcceptJob claims an open booking for the authenticated cleaner.
func (h *JobsHandler) AcceptJob(c *gin.Context) {
	b, err := h.Svc.AcceptJob(c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	note := "Booking will be confirmed once the client completes payment"
	if b.Status == models.BookingStatusConfirmed {
		note = "Booking is now confirmed - you're all set"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Job accepted",
		"booking_id": b.ID,
		"status":     b.Status,
		"note":       note,
	})
}

// RejectJob marks the booking as declined by this cleaner so it drops out
// of their feed for good.
func (h *JobsHandler) RejectJob(c *gin.Context) {
	if err := h.Svc.RejectJob(c.Param("id"), c.GetString(middleware.ContextUserID)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job rejected"})
}

// StartJob marks an assigned booking as underway.
func (h *JobsHandler) StartJob(c *gin.Context) {
	b, err := h.BookingSvc.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if b.CleanerID != c.GetString(middleware.ContextUserID) {
		utils.JSONError(c, http.StatusNotFound, "Job not found or not assigned to you", "")
		return
	}

	started, err := h.BookingSvc.StartJob(b.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": started.ID, "status": started.Status})
}

// CompleteJob marks the cleaner's assigned booking as done.
func (h *JobsHandler) CompleteJob(c *gin.Context) {
	b, err := h.BookingSvc.CompleteJob(c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Job completed",
		"booking_id":   b.ID,
		"status":       b.Status,
		"completed_at": b.CompletedAt,
	})
}

// UpdateAvailability replaces the cleaner's weekly windows, blocked dates
// and daily cap.
func (h *JobsHandler) UpdateAvailability(c *gin.Context) {
	var in models.UpdateAvailabilityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, err)
		return
	}

	profile, err := h.Svc.UpdateAvailability(c.GetString(middleware.ContextUserID), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":              "Availability updated",
		"availability":         profile.Availability,
		"blocked_dates":        profile.BlockedDates,
		"max_bookings_per_day": profile.MaxBookingsPerDay,
	})
}

// GetEarnings summarises the cleaner's completed and upcoming pay.
func (h *JobsHandler) GetEarnings(c *gin.Context) {
	summary, err := h.Svc.GetEarnings(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TriggerSweep runs the auto-assignment sweep on demand. Admin only; the
// same sweep also runs on a schedule in the background worker.
func (h *JobsHandler) TriggerSweep(c *gin.Context) {
	stats, err := h.Svc.RunSweep()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Auto-assignment sweep completed",
		"statistics": stats,
	})
}
