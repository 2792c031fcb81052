// Package testutil provides in-memory implementations of the db repository
// interfaces for tests. The booking transition mirrors the Firestore
// transaction semantics under a single mutex: the availability check, the
// booking write and the car status flip happen as one step.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rentwheels-backend-go/internal/db"
	"rentwheels-backend-go/internal/models"
)

// MemoryStore holds all three collections plus the audit trail.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[string]*models.User // keyed by UID
	cars      map[string]*models.Car
	bookings  map[string]*models.Booking
	auditLogs []models.AuditLog
	seq       int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		cars:     make(map[string]*models.Car),
		bookings: make(map[string]*models.Booking),
	}
}

// Users returns a db.UserRepository view of the store.
func (s *MemoryStore) Users() db.UserRepository { return &memoryUserRepo{s} }

// Cars returns a db.CarRepository view of the store.
func (s *MemoryStore) Cars() db.CarRepository { return &memoryCarRepo{s} }

// Bookings returns a db.BookingRepository view of the store.
func (s *MemoryStore) Bookings() db.BookingRepository { return &memoryBookingRepo{s} }

// Audit returns a db.AuditRepository view of the store.
func (s *MemoryStore) Audit() db.AuditRepository { return &memoryAuditRepo{s} }

// AuditEntries returns a snapshot of the recorded audit trail.
func (s *MemoryStore) AuditEntries() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLog, len(s.auditLogs))
	copy(out, s.auditLogs)
	return out
}

// SeedCar inserts a car directly, assigning an ID when none is set.
func (s *MemoryStore) SeedCar(car *models.Car) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if car.ID == "" {
		car.ID = s.nextID("car")
	}
	s.cars[car.ID] = cloneCar(car)
	return car.ID
}

// SeedUser inserts a user directly.
func (s *MemoryStore) SeedUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UID] = cloneUser(user)
}

// SeedBooking inserts a booking directly, assigning an ID when none is set.
// The referenced car's status is not touched; use Bookings().Book for the
// full transition.
func (s *MemoryStore) SeedBooking(booking *models.Booking) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID == "" {
		booking.ID = s.nextID("booking")
	}
	s.bookings[booking.ID] = cloneBooking(booking)
	return booking.ID
}

// nextID generates a deterministic document ID. Callers must hold s.mu.
func (s *MemoryStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func cloneCar(car *models.Car) *models.Car {
	c := *car
	return &c
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	return &c
}

// --- UserRepository ---

type memoryUserRepo struct{ s *MemoryStore }

func (r *memoryUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[uid]
	if !ok {
		return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, db.ErrNotFound)
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, fmt.Errorf("user with email '%s' not found: %w", email, db.ErrNotFound)
}

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[user.UID]; exists {
		return fmt.Errorf("user with UID '%s' already exists", user.UID)
	}
	r.s.users[user.UID] = cloneUser(user)
	return nil
}

func (r *memoryUserRepo) UpsertByEmail(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for uid, existing := range r.s.users {
		if existing.Email == user.Email {
			updated := cloneUser(user)
			updated.UID = uid
			r.s.users[uid] = updated
			return nil
		}
	}
	r.s.users[user.UID] = cloneUser(user)
	return nil
}

func (r *memoryUserRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

// --- CarRepository ---

type memoryCarRepo struct{ s *MemoryStore }

func (r *memoryCarRepo) Create(ctx context.Context, car *models.Car) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	car.ID = r.s.nextID("car")
	r.s.cars[car.ID] = cloneCar(car)
	return car.ID, nil
}

func (r *memoryCarRepo) GetByID(ctx context.Context, carID string) (*models.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	car, ok := r.s.cars[carID]
	if !ok {
		return nil, fmt.Errorf("car with ID '%s' not found: %w", carID, db.ErrNotFound)
	}
	return cloneCar(car), nil
}

func (r *memoryCarRepo) List(ctx context.Context) ([]*models.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cars := make([]*models.Car, 0, len(r.s.cars))
	for _, car := range r.s.cars {
		cars = append(cars, cloneCar(car))
	}
	sort.Slice(cars, func(i, j int) bool {
		if !cars[i].CreatedAt.Equal(cars[j].CreatedAt) {
			return cars[i].CreatedAt.After(cars[j].CreatedAt)
		}
		return cars[i].ID > cars[j].ID
	})
	return cars, nil
}

func (r *memoryCarRepo) Update(ctx context.Context, car *models.Car) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cars[car.ID] = cloneCar(car)
	return nil
}

func (r *memoryCarRepo) Delete(ctx context.Context, carID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cars[carID]; !ok {
		return fmt.Errorf("car with ID '%s' not found: %w", carID, db.ErrNotFound)
	}
	delete(r.s.cars, carID)
	return nil
}

func (r *memoryCarRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.cars), nil
}

func (r *memoryCarRepo) CountByStatus(ctx context.Context, carStatus string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, car := range r.s.cars {
		if car.Status == carStatus {
			count++
		}
	}
	return count, nil
}

// --- BookingRepository ---

type memoryBookingRepo struct{ s *MemoryStore }

func (r *memoryBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking with ID '%s' not found: %w", bookingID, db.ErrNotFound)
	}
	return cloneBooking(booking), nil
}

func (r *memoryBookingRepo) ListByUserEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var bookings []*models.Booking
	for _, booking := range r.s.bookings {
		if booking.UserEmail == email {
			bookings = append(bookings, cloneBooking(booking))
		}
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func (r *memoryBookingRepo) ListAll(ctx context.Context) ([]*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bookings := make([]*models.Booking, 0, len(r.s.bookings))
	for _, booking := range r.s.bookings {
		bookings = append(bookings, cloneBooking(booking))
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func (r *memoryBookingRepo) ListRecent(ctx context.Context, limit int) ([]*models.Booking, error) {
	bookings, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(bookings) > limit {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (r *memoryBookingRepo) Book(ctx context.Context, booking *models.Booking) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	car, ok := r.s.cars[booking.CarID]
	if !ok {
		return "", fmt.Errorf("car with ID '%s' not found: %w", booking.CarID, db.ErrNotFound)
	}
	if car.Status == models.CarStatusBooked {
		return "", fmt.Errorf("car with ID '%s': %w", booking.CarID, db.ErrCarUnavailable)
	}
	id := r.s.nextID("booking")
	stored := cloneBooking(booking)
	stored.ID = id
	r.s.bookings[id] = stored
	car.Status = models.CarStatusBooked
	return id, nil
}

func (r *memoryBookingRepo) Cancel(ctx context.Context, bookingID, carID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[bookingID]; !ok {
		return fmt.Errorf("booking with ID '%s' not found: %w", bookingID, db.ErrNotFound)
	}
	delete(r.s.bookings, bookingID)
	if car, ok := r.s.cars[carID]; ok {
		car.Status = models.CarStatusAvailable
	}
	return nil
}

func (r *memoryBookingRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.bookings), nil
}

func sortBookingsNewestFirst(bookings []*models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

// --- AuditRepository ---

type memoryAuditRepo struct{ s *MemoryStore }

func (r *memoryAuditRepo) Create(ctx context.Context, logEntry models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	logEntry.ID = r.s.nextID("audit")
	r.s.auditLogs = append(r.s.auditLogs, logEntry)
	return nil
}
