package handlers

import (
	userRepoPkg "cleanly/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Booking endpoints
	CreateBookingHandler     gin.HandlerFunc
	GetBookingHandler        gin.HandlerFunc
	ListBookingsHandler      gin.HandlerFunc
	CancelBookingHandler     gin.HandlerFunc
	RescheduleBookingHandler gin.HandlerFunc
	RateBookingHandler       gin.HandlerFunc

	// Cleaner job endpoints
	ListOffersHandler         gin.HandlerFunc
	AcceptJobHandler          gin.HandlerFunc
	RejectJobHandler          gin.HandlerFunc
	StartJobHandler           gin.HandlerFunc
	CompleteJobHandler        gin.HandlerFunc
	UpdateAvailabilityHandler gin.HandlerFunc
	GetEarningsHandler        gin.HandlerFunc

	// Payment endpoints
	CreateIntentHandler  gin.HandlerFunc
	StripeWebhookHandler gin.HandlerFunc

	// Device endpoints
	RegisterDeviceTokenHandler gin.HandlerFunc

	// Admin endpoints
	TriggerSweepHandler gin.HandlerFunc
}
