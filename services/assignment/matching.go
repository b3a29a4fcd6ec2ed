package assignment

import (
	"fmt"
	"sort"
	"time"

	rejectionRepo "cleanly/database/repository/rejection"
	"cleanly/models"
)

const (
	// AssignmentTimeout is how long a booking may sit pending and
	// unassigned before the sweep starts trying to place it.
	AssignmentTimeout = 2 * time.Hour

	// MaxAssignmentRadius caps travel distance for every candidate, no
	// matter how wide their personal radius is set.
	MaxAssignmentRadius = 15.0

	// DefaultServiceRadius applies when a cleaner's profile has no radius.
	DefaultServiceRadius = 10.0

	// MaxCleanersToTry bounds how many ranked candidates get the more
	// expensive availability check downstream.
	MaxCleanersToTry = 5
)

// RankedCleaner is a candidate that survived filtering, carrying the fields
// the ordering was computed from.
type RankedCleaner struct {
	Cleaner   models.User
	Distance  float64
	Rating    float64
	TotalJobs int
}

// CandidateRanker filters the cleaner pool down to the few worth trying for
// a booking, best first.
type CandidateRanker interface {
	Rank(b *models.Booking, pool []models.User) ([]RankedCleaner, error)
}

// DefaultCandidateRanker ranks on rating, then experience, then distance.
type DefaultCandidateRanker struct {
	Rejections rejectionRepo.RejectionRepository
	Distance   DistanceEstimator
}

func NewDefaultCandidateRanker(rejections rejectionRepo.RejectionRepository, distance DistanceEstimator) *DefaultCandidateRanker {
	if rejections == nil {
		panic("candidate ranker: rejection repository is required")
	}
	if distance == nil {
		distance = PostcodeDistance{}
	}
	return &DefaultCandidateRanker{Rejections: rejections, Distance: distance}
}

// Rank drops cleaners who already declined the booking, who do not offer its
// service type, or who are too far away, then sorts the rest by rating
// descending, total jobs descending and distance ascending. Only the top few
// are returned.
func (r *DefaultCandidateRanker) Rank(b *models.Booking, pool []models.User) ([]RankedCleaner, error) {
	rejections, err := r.Rejections.ListForBooking(b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rejections for booking %s: %w", b.ID, err)
	}
	declined := make(map[string]bool, len(rejections))
	for _, rej := range rejections {
		declined[rej.CleanerID] = true
	}

	jobPostcode := b.Location.Address.Postcode
	candidates := make([]RankedCleaner, 0, len(pool))
	for _, cleaner := range pool {
		if !cleaner.IsCleaner() || declined[cleaner.ID] {
			continue
		}
		profile := cleaner.Cleaner
		if profile == nil {
			continue
		}
		if !offersService(profile.ServiceTypes, b.Service.Type) {
			continue
		}

		distance := r.Distance.EstimateDistance(profile.Postcode, jobPostcode)
		radius := profile.Radius
		if radius <= 0 {
			radius = DefaultServiceRadius
		}
		if distance > radius || distance > MaxAssignmentRadius {
			continue
		}

		candidates = append(candidates, RankedCleaner{
			Cleaner:   cleaner,
			Distance:  distance,
			Rating:    profile.Rating,
			TotalJobs: profile.TotalJobs,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.TotalJobs != b.TotalJobs {
			return a.TotalJobs > b.TotalJobs
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Cleaner.ID < b.Cleaner.ID
	})

	if len(candidates) > MaxCleanersToTry {
		candidates = candidates[:MaxCleanersToTry]
	}
	return candidates, nil
}

// offersService reports whether the allow-list admits the service type. An
// empty list means the cleaner takes any job.
func offersService(offered []models.ServiceType, want models.ServiceType) bool {
	if len(offered) == 0 {
		return true
	}
	for _, st := range offered {
		if st == want {
			return true
		}
	}
	return false
}
