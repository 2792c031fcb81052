package db

import (
	"context"

	"rentwheels-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpsertByEmail writes the user record matched by user.Email, creating
	// it when absent.
	UpsertByEmail(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
}

// CarRepository defines the interface for car data storage operations.
type CarRepository interface {
	Create(ctx context.Context, car *models.Car) (string, error) // Returns new car ID
	GetByID(ctx context.Context, carID string) (*models.Car, error)
	// List returns all cars, newest first by createdAt.
	List(ctx context.Context) ([]*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, carID string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// BookingRepository defines the interface for booking data storage
// operations, including the two-collection booking transition.
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListByUserEmail returns the user's bookings, newest first by createdAt.
	ListByUserEmail(ctx context.Context, email string) ([]*models.Booking, error)
	ListAll(ctx context.Context) ([]*models.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Booking, error)
	// Book atomically creates the booking and flips the referenced car to
	// "Booked". Returns ErrNotFound when the car is absent and
	// ErrCarUnavailable when it is already booked.
	Book(ctx context.Context, booking *models.Booking) (string, error)
	// Cancel atomically deletes the booking and, if the referenced car
	// still exists, flips it back to "Available".
	Cancel(ctx context.Context, bookingID, carID string) error
	Count(ctx context.Context) (int, error)
}

// AuditRepository defines the interface for audit log storage operations.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}
