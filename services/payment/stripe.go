package payment

import (
	"encoding/json"
	"fmt"

	"cleanly/config"
	"cleanly/models"
	"cleanly/services/booking"
	"cleanly/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateIntent creates a Stripe payment intent for a booking and records the
// intent reference on it. Only the booking's owner may pay, and only while
// the booking is pending or confirmed and not yet paid.
func (svc *DefaultPaymentService) CreateIntent(bookingID, clientID string) (*models.PaymentIntentDetails, error) {
	b, err := svc.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if b == nil {
		return nil, booking.ErrBookingNotFound
	}
	if b.ClientID != clientID {
		return nil, ErrNotBookingOwner
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed {
		return nil, ErrNotPayable
	}
	if b.Paid() {
		return nil, ErrAlreadyPaid
	}

	amountPence := int64(b.Service.Price * 100)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountPence),
		Currency: stripe.String(string(stripe.CurrencyGBP)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("always"),
		},
		Description: stripe.String(fmt.Sprintf("Cleaning service - Booking %s", shortID(b.ID))),
	}
	params.AddMetadata("booking_id", b.ID)
	params.AddMetadata("client_id", clientID)
	params.AddMetadata("service_type", string(b.Service.Type))

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := svc.Bookings.UpdateFields(b.ID, bson.M{
		"payment.payment_intent_id": intent.ID,
		"payment.amount":            b.Service.Price,
	}); err != nil {
		// The intent already exists on Stripe's side and the webhook
		// resolves bookings by metadata; only the refund lookup reads this.
		utils.GetLogger().Error("failed to record payment intent on booking",
			zap.String("bookingID", b.ID),
			zap.String("paymentIntentID", intent.ID),
			zap.Error(err))
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("bookingID", b.ID),
		zap.String("paymentIntentID", intent.ID),
		zap.Int64("amountPence", amountPence))

	return &models.PaymentIntentDetails{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          b.Service.Price,
		Currency:        "GBP",
		BookingID:       b.ID,
		Status:          string(intent.Status),
	}, nil
}

// HandleWebhook verifies and applies one Stripe event. It returns the event
// type it saw; processing errors come back alongside it so the transport
// layer can acknowledge receipt while logging the failure, which stops
// Stripe from retrying events we cannot use.
func (svc *DefaultPaymentService) HandleWebhook(payload []byte, signature string) (string, error) {
	event, err := svc.parseEvent(payload, signature)
	if err != nil {
		return "", err
	}

	logger := utils.GetLogger()
	eventType := string(event.Type)
	logger.Info("stripe webhook received", zap.String("event", eventType))

	switch eventType {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return eventType, fmt.Errorf("failed to decode payment intent: %w", err)
		}
		bookingID := intent.Metadata["booking_id"]
		if bookingID == "" {
			logger.Warn("payment succeeded without booking metadata",
				zap.String("paymentIntentID", intent.ID))
			return eventType, nil
		}
		if _, err := svc.BookingSvc.MarkPaymentSucceeded(bookingID); err != nil {
			return eventType, fmt.Errorf("failed to apply successful payment to booking %s: %w", bookingID, err)
		}
		logger.Info("booking payment succeeded", zap.String("bookingID", bookingID))

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return eventType, fmt.Errorf("failed to decode payment intent: %w", err)
		}
		bookingID := intent.Metadata["booking_id"]
		if bookingID == "" {
			return eventType, nil
		}
		reason := "payment failed"
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			reason = intent.LastPaymentError.Msg
		}
		if err := svc.BookingSvc.MarkPaymentFailed(bookingID, reason); err != nil {
			return eventType, fmt.Errorf("failed to record failed payment on booking %s: %w", bookingID, err)
		}
		logger.Info("booking payment failed",
			zap.String("bookingID", bookingID), zap.String("reason", reason))

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return eventType, fmt.Errorf("failed to decode charge: %w", err)
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
			return eventType, nil
		}
		b, err := svc.Bookings.GetByPaymentIntent(charge.PaymentIntent.ID)
		if err != nil {
			return eventType, fmt.Errorf("failed to look up booking for intent %s: %w", charge.PaymentIntent.ID, err)
		}
		if b == nil {
			logger.Warn("refund for unknown payment intent",
				zap.String("paymentIntentID", charge.PaymentIntent.ID))
			return eventType, nil
		}
		if _, err := svc.BookingSvc.MarkRefunded(b.ID); err != nil {
			return eventType, fmt.Errorf("failed to apply refund to booking %s: %w", b.ID, err)
		}
		logger.Info("booking refunded", zap.String("bookingID", b.ID))

	default:
		logger.Info("ignoring unhandled stripe event", zap.String("event", eventType))
	}

	return eventType, nil
}

// parseEvent verifies the payload against the configured webhook secret.
// Without a secret (local development) the payload is trusted as-is.
func (svc *DefaultPaymentService) parseEvent(payload []byte, signature string) (stripe.Event, error) {
	secret := config.AppConfig.StripeWebhookSecret
	if secret == "" {
		utils.GetLogger().Warn("stripe webhook secret not configured, skipping signature verification")
		var event stripe.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return stripe.Event{}, fmt.Errorf("failed to parse webhook payload: %w", err)
		}
		return event, nil
	}

	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
