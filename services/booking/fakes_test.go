package booking

import (
	"errors"
	"sync"
	"time"

	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository that keeps the Mongo
// implementation's guarded-update semantics, so race-sensitive paths behave
// the same under test.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	updates  []bson.M
}

func newFakeBookingRepo(seed ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range seed {
		cp := *b
		r.bookings[b.ID] = &cp
	}
	return r
}

// setStatus mutates the stored record directly, simulating a concurrent
// writer getting in between a read and a guarded update.
func (r *fakeBookingRepo) setStatus(id string, s models.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].Status = s
}

// lastUpdate returns the most recent UpdateFields payload.
func (r *fakeBookingRepo) lastUpdate() bson.M {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.updates) == 0 {
		return nil
	}
	return r.updates[len(r.updates)-1]
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByPaymentIntent(intentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Payment.PaymentIntentID == intentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) UpdateFields(id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return errors.New("booking not found")
	}
	r.updates = append(r.updates, fields)
	return nil
}

func (r *fakeBookingRepo) UpdateStatusGuarded(id string, expected, to models.BookingStatus, extra bson.M) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != expected {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeBookingRepo) AssignCleaner(id, cleanerID string, assignmentType models.AssignmentType, markConfirmed bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingStatusPending || b.CleanerID != "" {
		return false, nil
	}
	now := time.Now().UTC()
	b.CleanerID = cleanerID
	b.AssignmentType = assignmentType
	b.AcceptedAt = &now
	if markConfirmed {
		b.Status = models.BookingStatusConfirmed
	}
	return true, nil
}

func (r *fakeBookingRepo) ListByClient(clientID string, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByCleaner(cleanerID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	allowed := make(map[models.BookingStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CleanerID != cleanerID {
			continue
		}
		if len(statuses) > 0 && !allowed[b.Status] {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListUnassignedPending(cutoff time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusPending && b.CleanerID == "" && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListOpenOffers(limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusPending && b.CleanerID == "" {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListCleanerJobsOn(cleanerID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CleanerID == cleanerID && b.Schedule.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListCompletedByCleaner(cleanerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CleanerID == cleanerID && b.Status == models.BookingStatusCompleted {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*models.User
	jobsBumped []string
}

func newFakeUserRepo(seed ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range seed {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	return r.Create(u)
}

func (r *fakeUserRepo) ListCleaners() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == models.RoleCleaner && u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateCleanerAvailability(id string, availability map[string][]models.AvailabilityWindow, blockedDates []string, maxPerDay int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Cleaner == nil {
		return errors.New("cleaner not found")
	}
	u.Cleaner.Availability = availability
	u.Cleaner.BlockedDates = blockedDates
	u.Cleaner.MaxBookingsPerDay = maxPerDay
	return nil
}

func (r *fakeUserRepo) IncrementCleanerJobs(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobsBumped = append(r.jobsBumped, id)
	if u, ok := r.users[id]; ok && u.Cleaner != nil {
		u.Cleaner.TotalJobs++
	}
	return nil
}

func (r *fakeUserRepo) UpdateFCMToken(id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.FCMToken = token
	return nil
}

// testClient builds an active client account.
func testClient(id string) *models.User {
	return &models.User{
		ID:     id,
		Name:   "Sarah Mitchell",
		Email:  id + "@example.com",
		Role:   models.RoleClient,
		Active: true,
	}
}

// testBooking builds a pending, unassigned two-hour regular clean; mutators
// adjust it per test.
func testBooking(id string, mutate ...func(*models.Booking)) *models.Booking {
	b := &models.Booking{
		ID:       id,
		ClientID: "client-1",
		Status:   models.BookingStatusPending,
		Service: models.ServiceDetails{
			Type:     models.ServiceTypeRegular,
			Duration: 2,
			Price:    50,
		},
		Schedule: models.Schedule{Date: "2025-10-20", Time: "10:00", Timezone: "Europe/London"},
		Location: models.Location{
			Address: models.Address{Line1: "12 Larch Road", City: "London", Postcode: "SW4 7AB", Country: "GB"},
		},
		Payment:   models.Payment{Status: models.PaymentStatusPending, Amount: 50},
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		UpdatedAt: time.Now().UTC(),
	}
	for _, m := range mutate {
		m(b)
	}
	return b
}
