package userRepo

import (
	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access. The assignment
// engine treats this as a read-only directory apart from the cleaner's
// own availability updates and job counters.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// ListCleaners retrieves all active cleaner accounts.
	ListCleaners() ([]models.User, error)
	// UpdateCleanerAvailability replaces a cleaner's weekly windows,
	// blocked dates and daily booking cap.
	UpdateCleanerAvailability(id string, availability map[string][]models.AvailabilityWindow, blockedDates []string, maxPerDay int) error
	// IncrementCleanerJobs bumps a cleaner's completed-jobs counter.
	IncrementCleanerJobs(id string) error
	// UpdateFCMToken stores the push notification token for a user.
	UpdateFCMToken(id, token string) error
}
