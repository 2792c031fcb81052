package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentwheels-backend-go/internal/db"
	"rentwheels-backend-go/internal/models"
)

// Defaults applied when a car is created without these optional fields.
const (
	defaultCarCategory = "Standard"
	defaultCarLocation = "Not specified"
)

// carService implements the CarService interface.
type carService struct {
	carRepo      db.CarRepository
	auditService AuditService
}

// NewCarService creates a new CarService instance.
func NewCarService(carRepo db.CarRepository, auditService AuditService) CarService {
	return &carService{
		carRepo:      carRepo,
		auditService: auditService,
	}
}

// CreateCar lists a new car owned by the caller. Every car starts out
// Available; required-field validation happens at the binding layer.
func (s *carService) CreateCar(ctx context.Context, caller models.Caller, req models.CreateCarRequest) (*models.Car, error) {
	if s.carRepo == nil {
		return nil, errors.New("CarRepository not initialized in CarService")
	}

	car := &models.Car{
		CarName:         req.CarName,
		Description:     req.Description,
		Category:        req.Category,
		RentPricePerDay: req.RentPricePerDay,
		Location:        req.Location,
		ImageURL:        req.ImageURL,
		Status:          models.CarStatusAvailable,
		OwnerEmail:      caller.Email,
		CreatedAt:       time.Now().UTC(),
	}
	if car.Category == "" {
		car.Category = defaultCarCategory
	}
	if car.Location == "" {
		car.Location = defaultCarLocation
	}

	carID, err := s.carRepo.Create(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("failed to create car in repository: %w", err)
	}
	car.ID = carID

	recordAudit(ctx, s.auditService, models.AuditLog{
		UserEmail:  caller.Email,
		Action:     models.AuditCarCreate,
		TargetType: "CAR",
		TargetID:   car.ID,
		Details:    map[string]interface{}{"carName": car.CarName},
	})

	return car, nil
}

// GetCar retrieves a single car by ID. Public read, no ownership check.
func (s *carService) GetCar(ctx context.Context, carID string) (*models.Car, error) {
	if s.carRepo == nil {
		return nil, errors.New("CarRepository not initialized in CarService")
	}
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: car with ID '%s'", ErrCarNotFound, carID)
		}
		return nil, fmt.Errorf("failed to get car '%s' from repository: %w", carID, err)
	}
	return car, nil
}

// ListCars returns all cars newest first, optionally filtered by a
// case-insensitive substring match on the car name.
func (s *carService) ListCars(ctx context.Context, filter string) ([]*models.Car, error) {
	if s.carRepo == nil {
		return nil, errors.New("CarRepository not initialized in CarService")
	}
	cars, err := s.carRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars from repository: %w", err)
	}
	if filter == "" {
		return cars, nil
	}

	needle := strings.ToLower(filter)
	filtered := make([]*models.Car, 0, len(cars))
	for _, car := range cars {
		if strings.Contains(strings.ToLower(car.CarName), needle) {
			filtered = append(filtered, car)
		}
	}
	return filtered, nil
}

// UpdateCar applies the patch to an existing car after verifying ownership.
// A missing car is reported before the ownership check so the two failure
// modes stay distinguishable. OwnerEmail is not part of the patch struct,
// so attempts to reassign ownership are dropped at the type level.
func (s *carService) UpdateCar(ctx context.Context, caller models.Caller, carID string, req models.UpdateCarRequest) (*models.Car, error) {
	car, err := s.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.OwnerEmail != caller.Email {
		return nil, fmt.Errorf("%w: caller '%s' does not own car '%s'", ErrForbidden, caller.Email, carID)
	}

	if req.CarName != nil {
		car.CarName = *req.CarName
	}
	if req.Description != nil {
		car.Description = *req.Description
	}
	if req.Category != nil {
		car.Category = *req.Category
	}
	if req.RentPricePerDay != nil {
		car.RentPricePerDay = *req.RentPricePerDay
	}
	if req.Location != nil {
		car.Location = *req.Location
	}
	if req.ImageURL != nil {
		car.ImageURL = *req.ImageURL
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update car '%s' in repository: %w", carID, err)
	}

	recordAudit(ctx, s.auditService, models.AuditLog{
		UserEmail:  caller.Email,
		Action:     models.AuditCarUpdate,
		TargetType: "CAR",
		TargetID:   carID,
	})

	return car, nil
}

// DeleteCar removes a car after verifying ownership. The delete is
// unconditional: bookings still referencing the car are left in place and
// release nothing when later cancelled.
func (s *carService) DeleteCar(ctx context.Context, caller models.Caller, carID string) error {
	car, err := s.GetCar(ctx, carID)
	if err != nil {
		return err
	}
	if car.OwnerEmail != caller.Email {
		return fmt.Errorf("%w: caller '%s' does not own car '%s'", ErrForbidden, caller.Email, carID)
	}

	if err := s.carRepo.Delete(ctx, carID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: car with ID '%s'", ErrCarNotFound, carID)
		}
		return fmt.Errorf("failed to delete car '%s' from repository: %w", carID, err)
	}

	recordAudit(ctx, s.auditService, models.AuditLog{
		UserEmail:  caller.Email,
		Action:     models.AuditCarDelete,
		TargetType: "CAR",
		TargetID:   carID,
	})

	return nil
}
