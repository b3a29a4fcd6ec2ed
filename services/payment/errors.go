package payment

import "errors"

var (
	// ErrNotBookingOwner reports a payment attempt on someone else's booking.
	ErrNotBookingOwner = errors.New("booking does not belong to this client")

	// ErrNotPayable reports that the booking's status does not admit payment.
	ErrNotPayable = errors.New("booking cannot be paid in its current status")

	// ErrAlreadyPaid reports that payment has already succeeded.
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrInvalidSignature reports a webhook payload that failed
	// signature verification.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)
