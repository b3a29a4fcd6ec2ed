package handlers

import (
	"errors"
	"net/http"

	"cleanly/services/assignment"
	"cleanly/services/booking"
	"cleanly/services/payment"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError translates service-layer failures into HTTP responses.
// Anything unrecognised is treated as an internal error and logged with its
// cause; the client never sees raw storage errors.
func respondServiceError(c *gin.Context, err error) {
	var invalidTransition *booking.InvalidTransitionError
	var validation *booking.ValidationError

	switch {
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrClientNotFound),
		errors.Is(err, assignment.ErrCleanerNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validation.Error())
	case errors.As(err, &invalidTransition):
		utils.JSONError(c, http.StatusConflict, "Invalid booking transition", invalidTransition.Error())
	case errors.Is(err, assignment.ErrAlreadyAssigned),
		errors.Is(err, assignment.ErrNoLongerAvailable),
		errors.Is(err, booking.ErrNotPending),
		errors.Is(err, booking.ErrNotCompleted),
		errors.Is(err, payment.ErrNotPayable),
		errors.Is(err, payment.ErrAlreadyPaid):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, payment.ErrNotBookingOwner):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")
	default:
		utils.GetLogger().Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.", "")
	}
}
