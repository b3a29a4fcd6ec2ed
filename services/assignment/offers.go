package assignment

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"cleanly/models"
	"cleanly/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ListOpenJobs builds the offer feed for a cleaner: every pending unassigned
// booking they have not declined, within radius, matching their services and
// calendar. Results are cached briefly since cleaners poll this while
// browsing for work.
func (svc *DefaultAssignmentService) ListOpenJobs(cleanerID string) ([]models.JobOffer, error) {
	if cached, ok := svc.cachedOffers(cleanerID); ok {
		return cached, nil
	}

	cleaner, err := svc.getCleaner(cleanerID)
	if err != nil {
		return nil, err
	}

	var profile models.CleanerProfile
	if cleaner.Cleaner != nil {
		profile = *cleaner.Cleaner
	}
	radius := profile.Radius
	if radius <= 0 {
		radius = DefaultServiceRadius
	}

	open, err := svc.Bookings.ListOpenOffers(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bookings: %w", err)
	}

	offers := make([]models.JobOffer, 0, len(open))
	for i := range open {
		b := &open[i]

		rejected, err := svc.Rejections.Exists(cleanerID, b.ID)
		if err != nil {
			utils.GetLogger().Warn("rejection lookup failed, leaving job in feed",
				zap.String("bookingID", b.ID), zap.Error(err))
		} else if rejected {
			continue
		}

		if !offersService(profile.ServiceTypes, b.Service.Type) {
			continue
		}

		// A missing postcode on either side keeps the job visible rather
		// than hiding it behind an unmeasurable distance.
		distance := 0.0
		if profile.Postcode != "" && b.Location.Address.Postcode != "" {
			distance = svc.estimateDistance(profile.Postcode, b.Location.Address.Postcode)
		}
		if distance > radius {
			continue
		}

		if res := svc.Checker.IsAvailable(cleaner, b); !res.Available {
			continue
		}

		offers = append(offers, models.JobOffer{
			BookingID:    b.ID,
			ClientName:   svc.clientDisplayName(b.ClientID),
			ServiceType:  b.Service.Type,
			Date:         b.Schedule.Date,
			Time:         b.Schedule.Time,
			Duration:     b.Service.Duration,
			Address:      b.Location.Address,
			Payment:      b.Service.Price,
			Instructions: b.Location.Instructions,
			Distance:     distance,
			CreatedAt:    b.CreatedAt,
		})
	}

	sort.Slice(offers, func(i, j int) bool {
		if offers[i].Date != offers[j].Date {
			return offers[i].Date < offers[j].Date
		}
		return offers[i].Time < offers[j].Time
	})

	svc.storeOffers(cleanerID, offers)
	return offers, nil
}

// clientDisplayName resolves a client id to a privacy-shortened name.
func (svc *DefaultAssignmentService) clientDisplayName(clientID string) string {
	client, err := svc.Users.GetByIDWithProjection(clientID, bson.M{"user_id": 1, "name": 1})
	if err != nil || client == nil {
		return "Client"
	}
	if name := client.ShortName(); name != "" {
		return name
	}
	return "Client"
}

func (svc *DefaultAssignmentService) cachedOffers(cleanerID string) ([]models.JobOffer, bool) {
	if svc.Cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := svc.Cache.Get(ctx, utils.OffersCachePrefix+cleanerID).Result()
	if err != nil {
		return nil, false
	}
	var offers []models.JobOffer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (svc *DefaultAssignmentService) storeOffers(cleanerID string, offers []models.JobOffer) {
	if svc.Cache == nil {
		return
	}
	data, err := json.Marshal(offers)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := svc.Cache.Set(ctx, utils.OffersCachePrefix+cleanerID, data, utils.OffersCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache offer feed",
			zap.String("cleanerID", cleanerID), zap.Error(err))
	}
}

// invalidateOffers drops the cleaner's cached feed after an accept or
// reject so the next poll reflects the action immediately. Other cleaners'
// feeds age out on their own within the cache TTL.
func (svc *DefaultAssignmentService) invalidateOffers(cleanerID string) {
	if svc.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := svc.Cache.Del(ctx, utils.OffersCachePrefix+cleanerID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate offer cache",
			zap.String("cleanerID", cleanerID), zap.Error(err))
	}
}
