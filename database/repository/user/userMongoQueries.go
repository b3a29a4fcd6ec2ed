// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"fmt"
	"time"

	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListCleaners retrieves all active cleaner accounts. The ranking pass
// works over the full pool; rejection and radius filters narrow it down.
func (r *MongoUserRepo) ListCleaners() ([]models.User, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleCleaner, "active": true}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cleaners: %w", err)
	}
	defer cursor.Close(ctx)

	var cleaners []models.User
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode cleaner: %w", err)
		}
		cleaners = append(cleaners, u)
	}
	return cleaners, nil
}

// UpdateCleanerAvailability replaces a cleaner's weekly windows, blocked
// dates and daily cap in one write.
func (r *MongoUserRepo) UpdateCleanerAvailability(id string, availability map[string][]models.AvailabilityWindow, blockedDates []string, maxPerDay int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": id, "role": models.RoleCleaner}
	update := bson.M{"$set": bson.M{
		"cleaner.availability":         availability,
		"cleaner.blocked_dates":        blockedDates,
		"cleaner.max_bookings_per_day": maxPerDay,
		"updated_at":                   time.Now().UTC(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update availability for cleaner %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("cleaner with id %s not found", id)
	}
	return nil
}

// IncrementCleanerJobs bumps the completed-jobs counter used by ranking.
func (r *MongoUserRepo) IncrementCleanerJobs(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": id, "role": models.RoleCleaner}
	update := bson.M{
		"$inc": bson.M{"cleaner.total_jobs": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment jobs for cleaner %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("cleaner with id %s not found", id)
	}
	return nil
}

// UpdateFCMToken stores the push notification token for a user.
func (r *MongoUserRepo) UpdateFCMToken(id, token string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": id},
		bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update fcm token for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}
