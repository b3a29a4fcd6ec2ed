package handlers

import (
	"errors"
	"net/http"

	"cleanly/middleware"
	"cleanly/models"
	"cleanly/services/payment"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves payment intent creation and the Stripe webhook.
type PaymentHandler struct {
	Svc payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// CreateIntent creates a Stripe PaymentIntent for one of the caller's bookings.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var in models.CreatePaymentIntentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, err)
		return
	}

	details, err := h.Svc.CreateIntent(in.BookingID, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// StripeWebhook receives payment lifecycle events from Stripe. Signature
// failures get a 400 so Stripe retries with a correct secret; processing
// failures are acknowledged with 200 to stop redelivery of events we have
// already seen or cannot act on.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read request body", "")
		return
	}

	eventType, err := h.Svc.HandleWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid webhook signature", "")
			return
		}
		utils.GetLogger().Warn("stripe webhook processing failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "event": eventType})
}
