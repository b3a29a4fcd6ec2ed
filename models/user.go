package models

import (
	"strings"
	"time"
)

// UserRole enumerates the account roles on the platform.
type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleCleaner UserRole = "cleaner"
	RoleAdmin   UserRole = "admin"
)

// AvailabilityWindow is a working window within a single weekday,
// expressed as "HH:MM" wall-clock times in the platform timezone.
type AvailabilityWindow struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// CleanerProfile carries the cleaner-specific state used by matching,
// availability checks and earnings reporting. Weekly availability is keyed
// by weekday index "0".."6" with Monday as "0".
type CleanerProfile struct {
	Postcode          string                          `bson:"postcode,omitempty" json:"postcode,omitempty"`
	ServiceTypes      []ServiceType                   `bson:"service_types,omitempty" json:"service_types,omitempty"`
	Rating            float64                         `bson:"rating" json:"rating"`
	TotalJobs         int                             `bson:"total_jobs" json:"total_jobs"`
	Availability      map[string][]AvailabilityWindow `bson:"availability,omitempty" json:"availability,omitempty"`
	BlockedDates      []string                        `bson:"blocked_dates,omitempty" json:"blocked_dates,omitempty"` // "2006-01-02"
	MaxBookingsPerDay int                             `bson:"max_bookings_per_day,omitempty" json:"max_bookings_per_day,omitempty"`
	Radius            float64                         `bson:"radius,omitempty" json:"radius,omitempty"` // service radius in platform distance units
	HourlyRate        float64                         `bson:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
	Verified          bool                            `bson:"verified" json:"verified"`
}

// User is a platform account. Cleaner accounts carry a CleanerProfile;
// client and admin accounts leave it nil.
type User struct {
	ID        string          `bson:"user_id" json:"user_id"`
	Name      string          `bson:"name" json:"name"`
	Email     string          `bson:"email" json:"email"`
	Phone     string          `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      UserRole        `bson:"role" json:"role"`
	Active    bool            `bson:"active" json:"active"`
	Cleaner   *CleanerProfile `bson:"cleaner,omitempty" json:"cleaner,omitempty"`
	FCMToken  string          `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

// IsCleaner reports whether the account is an active cleaner with a profile.
func (u *User) IsCleaner() bool {
	return u.Role == RoleCleaner && u.Cleaner != nil
}

// ShortName returns the user's first name plus the initial of the last,
// e.g. "Sarah M.". Used when exposing client identity to cleaners.
func (u *User) ShortName() string {
	parts := strings.Fields(u.Name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return parts[0] + " " + parts[len(parts)-1][:1] + "."
}
