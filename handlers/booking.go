package handlers

import (
	"net/http"

	"cleanly/middleware"
	"cleanly/models"
	"cleanly/services/booking"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the client-facing booking endpoints.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// CreateBooking creates a pending booking for the authenticated client.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in models.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, err)
		return
	}

	b, err := h.Svc.CreateBooking(c.GetString(middleware.ContextUserID), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GetBooking fetches one booking the caller is allowed to see.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	role := models.UserRole(c.GetString(middleware.ContextRole))
	if !booking.CanAccess(b, userID, role) {
		utils.JSONError(c, http.StatusForbidden, "Not authorized for this booking", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookings returns the caller's bookings. Clients see bookings they
// placed; cleaners see jobs assigned to them. Optional ?status= filter.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	role := models.UserRole(c.GetString(middleware.ContextRole))
	status := models.BookingStatus(c.Query("status"))

	bookings, err := h.Svc.ListUserBookings(userID, role, status, 100)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// CancelBooking cancels a booking on behalf of whoever the caller is; the
// recorded status reflects which party did it.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	role := models.UserRole(c.GetString(middleware.ContextRole))
	if !booking.CanAccess(b, userID, role) {
		utils.JSONError(c, http.StatusForbidden, "Not authorized for this booking", "")
		return
	}

	cancelled, err := h.Svc.CancelBooking(b.ID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": cancelled})
}

// RescheduleBooking updates the date, time, duration or notes of the
// caller's own pending booking.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var in models.UpdateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, err)
		return
	}

	b, err := h.Svc.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if b.ClientID != c.GetString(middleware.ContextUserID) {
		utils.JSONError(c, http.StatusForbidden, "Not authorized for this booking", "")
		return
	}

	updated, err := h.Svc.UpdateSchedule(b.ID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

// RateBooking records the client's rating on their completed booking.
func (h *BookingHandler) RateBooking(c *gin.Context) {
	var in models.RateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, err)
		return
	}

	if err := h.Svc.RateBooking(c.Param("id"), c.GetString(middleware.ContextUserID), in); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thanks for your feedback"})
}
