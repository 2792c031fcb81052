package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"rentwheels-backend-go/internal/db"
	"rentwheels-backend-go/internal/models"
)

// recentBookingsLimit caps the recent-bookings dashboard widget.
const recentBookingsLimit = 5

// dashboardService implements the DashboardService interface. All methods
// are direct reductions over the store with no caching; results reflect the
// store at query time.
type dashboardService struct {
	carRepo     db.CarRepository
	bookingRepo db.BookingRepository
	userRepo    db.UserRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(carRepo db.CarRepository, bookingRepo db.BookingRepository, userRepo db.UserRepository) DashboardService {
	return &dashboardService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// Stats returns the headline counts across all three collections.
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.carRepo == nil || s.bookingRepo == nil || s.userRepo == nil {
		return nil, errors.New("dashboardService: component not initialized")
	}

	totalCars, err := s.carRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count cars: %w", err)
	}
	available, err := s.carRepo.CountByStatus(ctx, models.CarStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to count available cars: %w", err)
	}
	booked, err := s.carRepo.CountByStatus(ctx, models.CarStatusBooked)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked cars: %w", err)
	}
	totalBookings, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &models.DashboardStats{
		TotalCars:     totalCars,
		AvailableCars: available,
		BookedCars:    booked,
		TotalBookings: totalBookings,
		TotalUsers:    totalUsers,
	}, nil
}

// CarAvailability returns the two-bucket availability breakdown.
func (s *dashboardService) CarAvailability(ctx context.Context) (*models.CarAvailability, error) {
	if s.carRepo == nil {
		return nil, errors.New("CarRepository not initialized in DashboardService")
	}

	available, err := s.carRepo.CountByStatus(ctx, models.CarStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to count available cars: %w", err)
	}
	booked, err := s.carRepo.CountByStatus(ctx, models.CarStatusBooked)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked cars: %w", err)
	}

	return &models.CarAvailability{Available: available, Booked: booked}, nil
}

// BookingsOverTime groups bookings by the calendar day of their creation
// time, ascending by day.
func (s *dashboardService) BookingsOverTime(ctx context.Context) ([]models.BookingsByDay, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("BookingRepository not initialized in DashboardService")
	}

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for grouping: %w", err)
	}

	counts := make(map[string]int)
	for _, booking := range bookings {
		day := booking.CreatedAt.UTC().Format("2006-01-02")
		counts[day]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]models.BookingsByDay, 0, len(days))
	for _, day := range days {
		series = append(series, models.BookingsByDay{Date: day, Count: counts[day]})
	}
	return series, nil
}

// RecentBookings returns the five most recently created bookings.
func (s *dashboardService) RecentBookings(ctx context.Context) ([]*models.Booking, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("BookingRepository not initialized in DashboardService")
	}
	bookings, err := s.bookingRepo.ListRecent(ctx, recentBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bookings: %w", err)
	}
	return bookings, nil
}
