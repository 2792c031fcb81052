package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentwheels-backend-go/internal/models"
	"rentwheels-backend-go/internal/testutil"
)

func newBookingServiceForTest(store *testutil.MemoryStore) BookingService {
	return NewBookingService(store.Bookings(), store.Cars(), NewAuditService(store.Audit()))
}

func seedAvailableCar(store *testutil.MemoryStore, owner string) string {
	return store.SeedCar(&models.Car{
		CarName:    "Civic",
		Status:     models.CarStatusAvailable,
		OwnerEmail: owner,
		CreatedAt:  time.Now().UTC(),
	})
}

func TestCreateBookingSnapshotsCarAndFlipsStatus(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	carID := seedAvailableCar(store, "owner@x.com")
	renter := models.Caller{UID: "uid-r", Email: "renter@x.com", Name: "Rita"}

	booking, err := svc.CreateBooking(context.Background(), renter, models.CreateBookingRequest{
		CarID:     carID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected generated booking ID")
	}
	if booking.CarName != "Civic" || booking.ProviderEmail != "owner@x.com" {
		t.Errorf("booking did not snapshot car fields: %+v", booking)
	}
	if booking.UserEmail != "renter@x.com" || booking.UserName != "Rita" {
		t.Errorf("booking did not capture caller identity: %+v", booking)
	}

	car, err := store.Cars().GetByID(context.Background(), carID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if car.Status != models.CarStatusBooked {
		t.Errorf("expected car status %q after booking, got %q", models.CarStatusBooked, car.Status)
	}
}

func TestCreateBookingCarNotFound(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)

	_, err := svc.CreateBooking(context.Background(), models.Caller{Email: "renter@x.com"}, models.CreateBookingRequest{
		CarID:     "no-such-car",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	})
	if !errors.Is(err, ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound, got %v", err)
	}
}

func TestSequentialDoubleBookingConflicts(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	carID := seedAvailableCar(store, "owner@x.com")
	req := models.CreateBookingRequest{CarID: carID, StartDate: "2024-01-01", EndDate: "2024-01-03"}

	if _, err := svc.CreateBooking(context.Background(), models.Caller{Email: "first@x.com"}, req); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := svc.CreateBooking(context.Background(), models.Caller{Email: "second@x.com"}, req)
	if !errors.Is(err, ErrCarAlreadyBooked) {
		t.Fatalf("expected ErrCarAlreadyBooked on second booking, got %v", err)
	}

	count, err := store.Bookings().Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 booking record after conflict, got %d", count)
	}
}

func TestBookThenCancelRestoresAvailability(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	carID := seedAvailableCar(store, "owner@x.com")
	renter := models.Caller{Email: "renter@x.com"}

	booking, err := svc.CreateBooking(context.Background(), renter, models.CreateBookingRequest{
		CarID:     carID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if err := svc.CancelBooking(context.Background(), renter, booking.ID); err != nil {
		t.Fatalf("CancelBooking failed: %v", err)
	}

	car, err := store.Cars().GetByID(context.Background(), carID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if car.Status != models.CarStatusAvailable {
		t.Errorf("expected car status %q after cancellation, got %q", models.CarStatusAvailable, car.Status)
	}

	mine, err := svc.ListMyBookings(context.Background(), renter)
	if err != nil {
		t.Fatalf("ListMyBookings failed: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("expected no bookings after cancellation, got %d", len(mine))
	}
}

func TestCancelBookingForbiddenForNonCreator(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	carID := seedAvailableCar(store, "owner@x.com")

	booking, err := svc.CreateBooking(context.Background(), models.Caller{Email: "renter@x.com"}, models.CreateBookingRequest{
		CarID:     carID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// The car's owner is not the booking's creator and may not cancel it.
	if err := svc.CancelBooking(context.Background(), models.Caller{Email: "owner@x.com"}, booking.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetBooking(context.Background(), booking.ID); err != nil {
		t.Errorf("booking should survive a forbidden cancellation: %v", err)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)

	err := svc.CancelBooking(context.Background(), models.Caller{Email: "renter@x.com"}, "no-such-booking")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelBookingSurvivesDeletedCar(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	carID := seedAvailableCar(store, "owner@x.com")
	renter := models.Caller{Email: "renter@x.com"}

	booking, err := svc.CreateBooking(context.Background(), renter, models.CreateBookingRequest{
		CarID:     carID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// Owner deletes the car while the booking is active; releasing it on
	// cancellation becomes a no-op, not an error.
	if err := store.Cars().Delete(context.Background(), carID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.CancelBooking(context.Background(), renter, booking.ID); err != nil {
		t.Fatalf("expected cancellation to succeed after car deletion, got %v", err)
	}
}

func TestListMyBookingsNewestFirstAndScoped(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.SeedBooking(&models.Booking{CarID: "car-a", UserEmail: "renter@x.com", StartDate: "2024-05-02", EndDate: "2024-05-03", CreatedAt: base})
	store.SeedBooking(&models.Booking{CarID: "car-b", UserEmail: "renter@x.com", StartDate: "2024-05-04", EndDate: "2024-05-05", CreatedAt: base.Add(time.Hour)})
	store.SeedBooking(&models.Booking{CarID: "car-c", UserEmail: "other@x.com", StartDate: "2024-05-04", EndDate: "2024-05-05", CreatedAt: base.Add(2 * time.Hour)})

	mine, err := svc.ListMyBookings(context.Background(), models.Caller{Email: "renter@x.com"})
	if err != nil {
		t.Fatalf("ListMyBookings failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 bookings for renter, got %d", len(mine))
	}
	if mine[0].CarID != "car-b" || mine[1].CarID != "car-a" {
		t.Errorf("expected newest-first order, got %q, %q", mine[0].CarID, mine[1].CarID)
	}
}

func TestBookingRecordsAuditTrail(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newBookingServiceForTest(store)
	carID := seedAvailableCar(store, "owner@x.com")

	if _, err := svc.CreateBooking(context.Background(), models.Caller{Email: "renter@x.com"}, models.CreateBookingRequest{
		CarID:     carID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	}); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	entries := store.AuditEntries()
	found := false
	for _, entry := range entries {
		if entry.Action == models.AuditBookingCreate && entry.UserEmail == "renter@x.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s audit entry, got %+v", models.AuditBookingCreate, entries)
	}
}
