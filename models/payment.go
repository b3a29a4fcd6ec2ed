package models

// CreatePaymentIntentInput selects the booking to pay for.
type CreatePaymentIntentInput struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// PaymentIntentDetails is returned to the client app so it can drive the
// card-collection flow. ClientSecret is sensitive; it must only ever go to
// the booking's owner.
type PaymentIntentDetails struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	BookingID       string  `json:"booking_id"`
	Status          string  `json:"status"`
}
