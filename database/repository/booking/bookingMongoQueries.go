// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"fmt"
	"time"

	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ListByClient retrieves a client's bookings, newest first.
func (r *MongoBookingRepo) ListByClient(clientID string, limit int64) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(bson.M{"client_id": clientID}, opts)
}

// ListByCleaner retrieves a cleaner's bookings in the given statuses, newest first.
func (r *MongoBookingRepo) ListByCleaner(cleanerID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"cleaner_id": cleanerID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(filter, opts)
}

// ListUnassignedPending retrieves pending, unassigned bookings created
// before the cutoff. Oldest first so the longest-waiting clients are
// served ahead of newer ones.
func (r *MongoBookingRepo) ListUnassignedPending(cutoff time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":     models.BookingStatusPending,
		"cleaner_id": bson.M{"$in": bson.A{"", nil}},
		"created_at": bson.M{"$lt": cutoff},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(filter, opts)
}

// ListOpenOffers retrieves pending, unassigned bookings for the offers
// feed, newest first.
func (r *MongoBookingRepo) ListOpenOffers(limit int64) ([]models.Booking, error) {
	filter := bson.M{
		"status":     models.BookingStatusPending,
		"cleaner_id": bson.M{"$in": bson.A{"", nil}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(filter, opts)
}

// ListCleanerJobsOn retrieves a cleaner's bookings on a date regardless of
// status. Pending jobs hold their slot too, so a cleaner cannot be
// double-booked while a client's payment is still clearing.
func (r *MongoBookingRepo) ListCleanerJobsOn(cleanerID, date string) ([]models.Booking, error) {
	filter := bson.M{"cleaner_id": cleanerID, "schedule.date": date}
	return r.find(filter, nil)
}

// ListCompletedByCleaner retrieves all of a cleaner's completed bookings,
// most recently finished first.
func (r *MongoBookingRepo) ListCompletedByCleaner(cleanerID string) ([]models.Booking, error) {
	filter := bson.M{
		"cleaner_id": cleanerID,
		"status":     models.BookingStatusCompleted,
	}
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	return r.find(filter, opts)
}
