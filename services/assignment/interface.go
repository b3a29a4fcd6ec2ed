package assignment

import (
	bookingRepo "cleanly/database/repository/booking"
	rejectionRepo "cleanly/database/repository/rejection"
	userRepo "cleanly/database/repository/user"
	"cleanly/models"
	"cleanly/services/notification"

	"github.com/go-redis/redis/v8"
)

// AssignmentService owns the cleaner-facing side of the marketplace: the
// open-job feed, manual accept and reject, the periodic auto-assignment
// sweep, calendar settings and earnings.
type AssignmentService interface {
	ListOpenJobs(cleanerID string) ([]models.JobOffer, error)
	AcceptJob(bookingID, cleanerID string) (*models.Booking, error)
	RejectJob(bookingID, cleanerID string) error
	RunSweep() (models.SweepStats, error)
	UpdateAvailability(cleanerID string, in models.UpdateAvailabilityInput) (*models.CleanerProfile, error)
	GetEarnings(cleanerID string) (*models.EarningsSummary, error)
}

// DefaultAssignmentService implements AssignmentService on top of the
// booking, user and rejection repositories.
type DefaultAssignmentService struct {
	Bookings   bookingRepo.BookingRepository
	Users      userRepo.UserRepository
	Rejections rejectionRepo.RejectionRepository
	Ranker     CandidateRanker
	Checker    AvailabilityChecker
	Distance   DistanceEstimator
	Cache      *redis.Client
	NotifySvc  notification.NotificationService
	Reminders  notification.ReminderScheduler
}

// estimateDistance applies the configured estimator, defaulting to the
// postcode heuristic.
func (svc *DefaultAssignmentService) estimateDistance(from, to string) float64 {
	if svc.Distance == nil {
		return PostcodeDistance{}.EstimateDistance(from, to)
	}
	return svc.Distance.EstimateDistance(from, to)
}

// getCleaner resolves an id to an active cleaner account.
func (svc *DefaultAssignmentService) getCleaner(cleanerID string) (*models.User, error) {
	cleaner, err := svc.Users.GetByID(cleanerID)
	if err != nil {
		return nil, err
	}
	if cleaner == nil || !cleaner.IsCleaner() || !cleaner.Active {
		return nil, ErrCleanerNotFound
	}
	return cleaner, nil
}
