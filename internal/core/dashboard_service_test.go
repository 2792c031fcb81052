package core

import (
	"context"
	"testing"
	"time"

	"rentwheels-backend-go/internal/models"
	"rentwheels-backend-go/internal/testutil"
)

func newDashboardServiceForTest(store *testutil.MemoryStore) DashboardService {
	return NewDashboardService(store.Cars(), store.Bookings(), store.Users())
}

func TestDashboardStatsCounts(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newDashboardServiceForTest(store)
	store.SeedCar(&models.Car{CarName: "A", Status: models.CarStatusAvailable, OwnerEmail: "o@x.com"})
	store.SeedCar(&models.Car{CarName: "B", Status: models.CarStatusAvailable, OwnerEmail: "o@x.com"})
	store.SeedCar(&models.Car{CarName: "C", Status: models.CarStatusBooked, OwnerEmail: "o@x.com"})
	store.SeedBooking(&models.Booking{CarID: "car-3", UserEmail: "r@x.com"})
	store.SeedUser(&models.User{UID: "uid-1", Email: "o@x.com"})
	store.SeedUser(&models.User{UID: "uid-2", Email: "r@x.com"})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalCars != 3 || stats.AvailableCars != 2 || stats.BookedCars != 1 {
		t.Errorf("unexpected car counts: %+v", stats)
	}
	if stats.TotalBookings != 1 || stats.TotalUsers != 2 {
		t.Errorf("unexpected booking/user counts: %+v", stats)
	}
}

func TestCarAvailabilityBreakdown(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newDashboardServiceForTest(store)
	store.SeedCar(&models.Car{CarName: "A", Status: models.CarStatusAvailable, OwnerEmail: "o@x.com"})
	store.SeedCar(&models.Car{CarName: "B", Status: models.CarStatusBooked, OwnerEmail: "o@x.com"})
	store.SeedCar(&models.Car{CarName: "C", Status: models.CarStatusBooked, OwnerEmail: "o@x.com"})

	availability, err := svc.CarAvailability(context.Background())
	if err != nil {
		t.Fatalf("CarAvailability failed: %v", err)
	}
	if availability.Available != 1 || availability.Booked != 2 {
		t.Errorf("unexpected availability breakdown: %+v", availability)
	}
}

func TestBookingsOverTimeGroupsByDayAscending(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newDashboardServiceForTest(store)
	store.SeedBooking(&models.Booking{CarID: "car-1", UserEmail: "r@x.com", CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)})
	store.SeedBooking(&models.Booking{CarID: "car-2", UserEmail: "r@x.com", CreatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)})
	store.SeedBooking(&models.Booking{CarID: "car-3", UserEmail: "r@x.com", CreatedAt: time.Date(2024, 5, 2, 17, 0, 0, 0, time.UTC)})

	series, err := svc.BookingsOverTime(context.Background())
	if err != nil {
		t.Fatalf("BookingsOverTime failed: %v", err)
	}
	want := []models.BookingsByDay{
		{Date: "2024-05-01", Count: 1},
		{Date: "2024-05-02", Count: 2},
	}
	if len(series) != len(want) {
		t.Fatalf("expected %d days, got %d: %+v", len(want), len(series), series)
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("day %d: expected %+v, got %+v", i, want[i], series[i])
		}
	}
}

func TestRecentBookingsLimitedAndNewestFirst(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newDashboardServiceForTest(store)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		store.SeedBooking(&models.Booking{
			CarID:     "car-1",
			UserEmail: "r@x.com",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	recent, err := svc.RecentBookings(context.Background())
	if err != nil {
		t.Fatalf("RecentBookings failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5 recent bookings, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Errorf("expected newest-first order at index %d", i)
		}
	}
	if !recent[0].CreatedAt.Equal(base.Add(6 * time.Hour)) {
		t.Errorf("expected the newest booking first, got %v", recent[0].CreatedAt)
	}
}
