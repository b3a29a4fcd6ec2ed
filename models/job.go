package models

import "time"

// JobOffer is the cleaner-facing projection of an unassigned booking.
// Client identity is reduced to a short display name for privacy.
type JobOffer struct {
	BookingID    string      `json:"booking_id"`
	ClientName   string      `json:"client_name"` // shortened, e.g. "Sarah M."
	ServiceType  ServiceType `json:"service_type"`
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	Duration     int         `json:"duration"`
	Address      Address     `json:"address"`
	Payment      float64     `json:"payment"` // what the job pays
	Instructions string      `json:"instructions,omitempty"`
	Distance     float64     `json:"distance"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SweepStats summarises one run of the auto-assignment sweep.
type SweepStats struct {
	Processed int `json:"processed"`
	Assigned  int `json:"assigned"`
	Failed    int `json:"failed"`
}

// EarningsSummary aggregates a cleaner's completed and upcoming work.
type EarningsSummary struct {
	TotalEarnings   float64 `json:"total_earnings"`
	ThisMonth       float64 `json:"this_month"`
	ThisWeek        float64 `json:"this_week"`
	PendingPayments float64 `json:"pending_payments"` // confirmed but not yet completed
	CompletedJobs   int     `json:"completed_jobs"`
	AverageRating   float64 `json:"average_rating"`
}
