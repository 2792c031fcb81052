package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentwheels-backend-go/internal/db"
	"rentwheels-backend-go/internal/models"
)

// bookingService implements the BookingService interface.
type bookingService struct {
	bookingRepo  db.BookingRepository
	carRepo      db.CarRepository
	auditService AuditService
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(bookingRepo db.BookingRepository, carRepo db.CarRepository, auditService AuditService) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		auditService: auditService,
	}
}

// CreateBooking books an Available car for the caller. Any authenticated
// user may book any Available car; no prior relationship with the owner is
// required. The booking snapshots the car's name and owner email at booking
// time. The repository's Book runs the two-collection write transactionally
// and re-checks availability, so the pre-check here only short-circuits the
// common sequential case.
func (s *bookingService) CreateBooking(ctx context.Context, caller models.Caller, req models.CreateBookingRequest) (*models.Booking, error) {
	if s.bookingRepo == nil || s.carRepo == nil {
		return nil, errors.New("bookingService: component not initialized")
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: car with ID '%s'", ErrCarNotFound, req.CarID)
		}
		return nil, fmt.Errorf("failed to get car '%s' for booking: %w", req.CarID, err)
	}
	if car.Status == models.CarStatusBooked {
		return nil, fmt.Errorf("%w: car with ID '%s'", ErrCarAlreadyBooked, req.CarID)
	}

	booking := &models.Booking{
		CarID:         car.ID,
		CarName:       car.CarName,
		ProviderEmail: car.OwnerEmail,
		UserEmail:     caller.Email,
		UserName:      caller.Name,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CreatedAt:     time.Now().UTC(),
	}

	bookingID, err := s.bookingRepo.Book(ctx, booking)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrCarUnavailable):
			return nil, fmt.Errorf("%w: car with ID '%s'", ErrCarAlreadyBooked, req.CarID)
		case errors.Is(err, db.ErrNotFound):
			return nil, fmt.Errorf("%w: car with ID '%s'", ErrCarNotFound, req.CarID)
		default:
			return nil, fmt.Errorf("failed to book car '%s': %w", req.CarID, err)
		}
	}
	booking.ID = bookingID

	recordAudit(ctx, s.auditService, models.AuditLog{
		UserEmail:  caller.Email,
		Action:     models.AuditBookingCreate,
		TargetType: "BOOKING",
		TargetID:   booking.ID,
		Details:    map[string]interface{}{"carId": car.ID, "carName": car.CarName},
	})

	return booking, nil
}

// GetBooking retrieves a single booking by ID. Public read.
func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("BookingRepository not initialized in BookingService")
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking with ID '%s'", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to get booking '%s' from repository: %w", bookingID, err)
	}
	return booking, nil
}

// ListMyBookings returns the caller's bookings, newest first.
func (s *bookingService) ListMyBookings(ctx context.Context, caller models.Caller) ([]*models.Booking, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("BookingRepository not initialized in BookingService")
	}
	bookings, err := s.bookingRepo.ListByUserEmail(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for '%s': %w", caller.Email, err)
	}
	return bookings, nil
}

// CancelBooking deletes the booking and flips the referenced car back to
// Available. Only the user who created the booking may cancel it; the car's
// owner has no say here. Releasing the car is best-effort: when the car has
// been deleted in the meantime, the cancellation still succeeds.
func (s *bookingService) CancelBooking(ctx context.Context, caller models.Caller, bookingID string) error {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserEmail != caller.Email {
		return fmt.Errorf("%w: caller '%s' did not create booking '%s'", ErrForbidden, caller.Email, bookingID)
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, booking.CarID); err != nil {
		return fmt.Errorf("failed to cancel booking '%s': %w", bookingID, err)
	}

	recordAudit(ctx, s.auditService, models.AuditLog{
		UserEmail:  caller.Email,
		Action:     models.AuditBookingCancel,
		TargetType: "BOOKING",
		TargetID:   bookingID,
		Details:    map[string]interface{}{"carId": booking.CarID},
	})

	return nil
}
