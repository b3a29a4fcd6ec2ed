package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "cleaner_id", Value: 1}, {Key: "schedule.date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "cleaner_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "payment.payment_intent_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByPaymentIntent retrieves the booking carrying the given payment intent.
func (r *MongoBookingRepo) GetByPaymentIntent(intentID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"payment.payment_intent_id": intentID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking for payment intent %s: %w", intentID, err)
	}
	return &booking, nil
}

// UpdateFields applies a partial update to a booking document.
func (r *MongoBookingRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"booking_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// UpdateStatusGuarded moves a booking from expected to the target status.
// The guard lives in the update filter, so two concurrent transitions on
// the same booking cannot both win.
func (r *MongoBookingRepo) UpdateStatusGuarded(id string, expected, to models.BookingStatus, extra bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for k, v := range extra {
		set[k] = v
	}

	filter := bson.M{"booking_id": id, "status": expected}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update status for booking %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}

// AssignCleaner commits a cleaner to a booking. The filter requires the
// booking to still be pending with no cleaner set; when two assignment
// paths race, exactly one update matches and the loser sees false.
func (r *MongoBookingRepo) AssignCleaner(id, cleanerID string, assignmentType models.AssignmentType, markConfirmed bool) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"cleaner_id":      cleanerID,
		"assignment_type": assignmentType,
		"accepted_at":     now,
		"updated_at":      now,
	}
	if markConfirmed {
		set["status"] = models.BookingStatusConfirmed
	}

	filter := bson.M{
		"booking_id": id,
		"status":     models.BookingStatusPending,
		"cleaner_id": bson.M{"$in": bson.A{"", nil}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to assign cleaner to booking %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}
