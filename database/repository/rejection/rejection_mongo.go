package rejectionRepo

import (
	"context"
	"fmt"
	"time"

	"cleanly/database"
	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRejectionRepo implements RejectionRepository using MongoDB.
type MongoRejectionRepo struct {
	coll *mongo.Collection
}

// NewMongoRejectionRepo creates a new instance of RejectionRepository using MongoDB.
func NewMongoRejectionRepo() RejectionRepository {
	coll := database.Collection("job_rejections")
	repo := &MongoRejectionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRejectionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "rejection_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert stores a rejection record keyed by the pair id. Repeating a
// rejection replaces the previous record rather than adding a duplicate.
func (r *MongoRejectionRepo) Upsert(rejection models.JobRejection) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"rejection_id": rejection.ID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.coll.ReplaceOne(ctx, filter, rejection, opts); err != nil {
		return fmt.Errorf("failed to upsert rejection %s: %w", rejection.ID, err)
	}
	return nil
}

// Exists reports whether the cleaner has declined the booking.
func (r *MongoRejectionRepo) Exists(cleanerID, bookingID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"rejection_id": models.RejectionID(cleanerID, bookingID)}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check rejection for %s/%s: %w", cleanerID, bookingID, err)
	}
	return count > 0, nil
}

// Delete removes the rejection record for the pair, if present. Deleting
// a missing record is not an error.
func (r *MongoRejectionRepo) Delete(cleanerID, bookingID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"rejection_id": models.RejectionID(cleanerID, bookingID)}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete rejection for %s/%s: %w", cleanerID, bookingID, err)
	}
	return nil
}

// ListForBooking retrieves all rejection records against a booking.
func (r *MongoRejectionRepo) ListForBooking(bookingID string) ([]models.JobRejection, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rejections for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var rejections []models.JobRejection
	for cursor.Next(ctx) {
		var rej models.JobRejection
		if err := cursor.Decode(&rej); err != nil {
			return nil, fmt.Errorf("failed to decode rejection: %w", err)
		}
		rejections = append(rejections, rej)
	}
	return rejections, nil
}
