package models

// CreateBookingInput is the client payload for booking a cleaning job.
// Price is never taken from the client; the booking service computes it.
type CreateBookingInput struct {
	ServiceType         ServiceType `json:"service_type" binding:"required"`
	Duration            int         `json:"duration" binding:"required,min=1,max=12"`
	Date                string      `json:"date" binding:"required,datetime=2006-01-02"`
	Time                string      `json:"time" binding:"required,datetime=15:04"`
	Address             Address     `json:"address" binding:"required"`
	Instructions        string      `json:"instructions" binding:"max=500"`
	Notes               string      `json:"notes" binding:"max=1000"`
	SpecialRequirements []string    `json:"special_requirements" binding:"max=10,dive,max=200"`
}

// UpdateAvailabilityInput replaces a cleaner's weekly working windows and
// blocked dates. Weekday keys run "0".."6" starting Monday.
type UpdateAvailabilityInput struct {
	Availability      map[string][]AvailabilityWindow `json:"availability" binding:"required"`
	BlockedDates      []string                        `json:"blocked_dates" binding:"dive,datetime=2006-01-02"`
	MaxBookingsPerDay int                             `json:"max_bookings_per_day" binding:"min=0,max=10"`
}

// UpdateBookingInput reschedules a pending booking. A duration change
// recomputes the price.
type UpdateBookingInput struct {
	Date     string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time     string `json:"time" binding:"omitempty,datetime=15:04"`
	Duration int    `json:"duration" binding:"omitempty,min=1,max=12"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// RateBookingInput carries the client's post-completion rating.
type RateBookingInput struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"max=2000"`
}
