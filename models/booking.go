package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingStatusPending            BookingStatus = "pending"
	BookingStatusConfirmed          BookingStatus = "confirmed"
	BookingStatusInProgress         BookingStatus = "in_progress"
	BookingStatusCompleted          BookingStatus = "completed"
	BookingStatusCancelled          BookingStatus = "cancelled"
	BookingStatusCancelledByClient  BookingStatus = "cancelled_by_client"
	BookingStatusCancelledByCleaner BookingStatus = "cancelled_by_cleaner"
	BookingStatusCancelledAdmin     BookingStatus = "cancelled_admin"
)

// IsTerminal reports whether no further transitions are permitted from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s.IsCancelled()
}

// IsCancelled reports whether s is any of the cancelled variants.
func (s BookingStatus) IsCancelled() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusCancelledByClient,
		BookingStatusCancelledByCleaner, BookingStatusCancelledAdmin:
		return true
	}
	return false
}

// ServiceType enumerates the cleaning services offered on the platform.
type ServiceType string

const (
	ServiceTypeRegular ServiceType = "regular"
	ServiceTypeDeep    ServiceType = "deep"
	ServiceTypeMoveIn  ServiceType = "move_in"
	ServiceTypeMoveOut ServiceType = "move_out"
	ServiceTypeOneTime ServiceType = "one_time"
)

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeRegular, ServiceTypeDeep, ServiceTypeMoveIn, ServiceTypeMoveOut, ServiceTypeOneTime:
		return true
	}
	return false
}

// PaymentStatus enumerates the states of a booking's payment sub-record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// AssignmentType records which path set the cleaner on a booking.
type AssignmentType string

const (
	AssignmentManual AssignmentType = "manual"
	AssignmentAuto   AssignmentType = "auto"
)

// Address is a structured UK service address.
type Address struct {
	Line1    string `bson:"line1" json:"line1"`
	Line2    string `bson:"line2,omitempty" json:"line2,omitempty"`
	City     string `bson:"city" json:"city"`
	Postcode string `bson:"postcode" json:"postcode"`
	Country  string `bson:"country" json:"country"`
}

// ServiceDetails describes what was booked and at what price.
type ServiceDetails struct {
	Type                ServiceType `bson:"type" json:"type"`
	Duration            int         `bson:"duration" json:"duration"` // whole hours, 1-12
	Price               float64     `bson:"price" json:"price"`       // server-computed, never client-supplied
	SpecialRequirements []string    `bson:"special_requirements,omitempty" json:"special_requirements,omitempty"`
}

// Schedule is the calendar slot a booking occupies.
type Schedule struct {
	Date     string `bson:"date" json:"date"`         // "2006-01-02"
	Time     string `bson:"time" json:"time"`         // "15:04", start of service
	Timezone string `bson:"timezone" json:"timezone"` // fixed regional zone, e.g. "Europe/London"
}

// StartTime resolves the schedule to an absolute instant in its timezone.
// An unknown timezone name falls back to UTC.
func (s Schedule) StartTime() (time.Time, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.Time, loc)
}

// Location is the service address plus free-text access instructions.
type Location struct {
	Address      Address `bson:"address" json:"address"`
	Instructions string  `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Payment is the booking's payment sub-record, updated from Stripe events.
type Payment struct {
	Status          PaymentStatus `bson:"status" json:"status"`
	Amount          float64       `bson:"amount" json:"amount"`
	PaymentIntentID string        `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	LastError       string        `bson:"last_error,omitempty" json:"last_error,omitempty"`
	PaidAt          *time.Time    `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	RefundedAt      *time.Time    `bson:"refunded_at,omitempty" json:"refunded_at,omitempty"`
}

// Booking is a single cleaning job requested by a client. The cleaner_id
// field stays empty until a cleaner accepts the job or the auto-assignment
// sweep commits one.
type Booking struct {
	ID             string         `bson:"booking_id" json:"booking_id"`
	ClientID       string         `bson:"client_id" json:"client_id"`
	CleanerID      string         `bson:"cleaner_id" json:"cleaner_id,omitempty"`
	Status         BookingStatus  `bson:"status" json:"status"`
	Service        ServiceDetails `bson:"service" json:"service"`
	Schedule       Schedule       `bson:"schedule" json:"schedule"`
	Location       Location       `bson:"location" json:"location"`
	Payment        Payment        `bson:"payment" json:"payment"`
	Notes          string         `bson:"notes,omitempty" json:"notes,omitempty"`
	Rating         int            `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, set by the client after completion
	Review         string         `bson:"review,omitempty" json:"review,omitempty"`
	AssignmentType AssignmentType `bson:"assignment_type,omitempty" json:"assignment_type,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
	AcceptedAt     *time.Time     `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
	CompletedAt    *time.Time     `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CancelledAt    *time.Time     `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// Assigned reports whether a cleaner has been committed to the booking.
func (b *Booking) Assigned() bool {
	return b.CleanerID != ""
}

// Paid reports whether the booking's payment has succeeded.
func (b *Booking) Paid() bool {
	return b.Payment.Status == PaymentStatusSucceeded
}
