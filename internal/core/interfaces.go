package core

import (
	"context"

	"rentwheels-backend-go/internal/models"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// EnsureUser retrieves the caller's user record, creating it with the
	// default role when absent. The boolean reports whether a record was
	// created; calling it again for the same identity is a no-op.
	EnsureUser(ctx context.Context, caller models.Caller) (*models.User, bool, error)
	// GetRole returns the stored role for the given email, or the default
	// role when no record exists. Callers may only ask about themselves.
	GetRole(ctx context.Context, caller models.Caller, email string) (string, error)
	// UpsertProfile updates (or inserts) the user record matched by the
	// caller's email with the supplied profile fields.
	UpsertProfile(ctx context.Context, caller models.Caller, req models.UpdateProfileRequest) (*models.User, error)
}

// CarService defines the interface for car listing operations.
type CarService interface {
	CreateCar(ctx context.Context, caller models.Caller, req models.CreateCarRequest) (*models.Car, error)
	GetCar(ctx context.Context, carID string) (*models.Car, error)
	// ListCars returns all cars newest first; a non-empty filter keeps only
	// cars whose name contains it, case-insensitively.
	ListCars(ctx context.Context, filter string) ([]*models.Car, error)
	UpdateCar(ctx context.Context, caller models.Caller, carID string, req models.UpdateCarRequest) (*models.Car, error)
	DeleteCar(ctx context.Context, caller models.Caller, carID string) error
}

// BookingService defines the interface for booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, caller models.Caller, req models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListMyBookings(ctx context.Context, caller models.Caller) ([]*models.Booking, error)
	CancelBooking(ctx context.Context, caller models.Caller, bookingID string) error
}

// DashboardService defines the interface for read-only dashboard aggregations.
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	CarAvailability(ctx context.Context) (*models.CarAvailability, error)
	// BookingsOverTime groups bookings by calendar day of creation, ascending.
	BookingsOverTime(ctx context.Context) ([]models.BookingsByDay, error)
	RecentBookings(ctx context.Context) ([]*models.Booking, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}
