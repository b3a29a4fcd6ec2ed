package assignment

import (
	"errors"
	"sync"
	"time"

	"cleanly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository mirroring the Mongo
// implementation's conditional-write semantics. raceWinner simulates a
// concurrent accept getting the commit in first; jobsErr injects a read
// failure into the same-day listing.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]*models.Booking
	raceWinner string
	jobsErr    error
}

func newFakeBookingRepo(seed ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range seed {
		cp := *b
		r.bookings[b.ID] = &cp
	}
	return r
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
	if r.raceWinner != "" {
		// Someone else's write landed between the read and this commit.
		now := time.Now().UTC()
		b.CleanerID = r.raceWinner
		b.AcceptedAt = &now
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
	if r.jobsErr != nil {
		return nil, r.jobsErr
	}
	// No status filter: every booking on the date holds its slot.
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
	mu    sync.Mutex
	users map[string]*models.User
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

// fakeRejectionRepo is an in-memory RejectionRepository keyed on the
// (cleaner, booking) pair. existsErr injects lookup failures.
type fakeRejectionRepo struct {
	mu        sync.Mutex
	records   map[string]models.JobRejection
	existsErr error
}

func newFakeRejectionRepo() *fakeRejectionRepo {
	return &fakeRejectionRepo{records: make(map[string]models.JobRejection)}
}

func (r *fakeRejectionRepo) Upsert(rejection models.JobRejection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rejection.ID] = rejection
	return nil
}

func (r *fakeRejectionRepo) Exists(cleanerID, bookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.records[models.RejectionID(cleanerID, bookingID)]
	return ok, nil
}

func (r *fakeRejectionRepo) Delete(cleanerID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, models.RejectionID(cleanerID, bookingID))
	return nil
}

func (r *fakeRejectionRepo) ListForBooking(bookingID string) ([]models.JobRejection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobRejection
	for _, rej := range r.records {
		if rej.BookingID == bookingID {
			out = append(out, rej)
		}
	}
	return out, nil
}

// stubChecker marks listed cleaners unavailable and passes everyone else.
type stubChecker struct {
	unavailable map[string]string // cleaner id -> reason
}

func (c stubChecker) IsAvailable(cleaner *models.User, b *models.Booking) AvailabilityResult {
	if reason, ok := c.unavailable[cleaner.ID]; ok {
		return AvailabilityResult{Reason: reason}
	}
	return AvailabilityResult{Available: true}
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

// testCleaner builds an active cleaner in Stockwell taking any service type.
func testCleaner(id string, mutate ...func(*models.User)) *models.User {
	u := &models.User{
		ID:     id,
		Name:   "Ana Kovač",
		Email:  id + "@example.com",
		Role:   models.RoleCleaner,
		Active: true,
		Cleaner: &models.CleanerProfile{
			Postcode:  "SW2 1AB",
			Rating:    4.5,
			TotalJobs: 10,
			Verified:  true,
		},
	}
	for _, m := range mutate {
		m(u)
	}
	return u
}

// testBooking builds a pending, unassigned two-hour regular clean in Clapham.
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
		CreatedAt: time.Now().UTC().Add(-3 * time.Hour),
		UpdatedAt: time.Now().UTC(),
	}
	for _, m := range mutate {
		m(b)
	}
	return b
}

// newAssignmentService wires a service over the fakes with the real ranker,
// checker and postcode heuristic.
func newAssignmentService(bookings *fakeBookingRepo, users *fakeUserRepo, rejections *fakeRejectionRepo) *DefaultAssignmentService {
	return &DefaultAssignmentService{
		Bookings:   bookings,
		Users:      users,
		Rejections: rejections,
		Ranker:     NewDefaultCandidateRanker(rejections, PostcodeDistance{}),
		Checker:    NewDefaultAvailabilityChecker(bookings),
	}
}
