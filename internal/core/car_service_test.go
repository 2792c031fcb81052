package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentwheels-backend-go/internal/models"
	"rentwheels-backend-go/internal/testutil"
)

func newCarServiceForTest(store *testutil.MemoryStore) CarService {
	return NewCarService(store.Cars(), NewAuditService(store.Audit()))
}

func TestCreateCarAppliesDefaults(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newCarServiceForTest(store)
	caller := models.Caller{UID: "uid-1", Email: "a@x.com", Name: "Alice"}

	car, err := svc.CreateCar(context.Background(), caller, models.CreateCarRequest{
		CarName:         "Civic",
		Description:     "sedan",
		RentPricePerDay: 40,
	})
	if err != nil {
		t.Fatalf("CreateCar failed: %v", err)
	}

	if car.ID == "" {
		t.Error("expected generated car ID")
	}
	if car.Status != models.CarStatusAvailable {
		t.Errorf("expected status %q, got %q", models.CarStatusAvailable, car.Status)
	}
	if car.OwnerEmail != "a@x.com" {
		t.Errorf("expected ownerEmail a@x.com, got %q", car.OwnerEmail)
	}
	if car.Category == "" || car.Location == "" {
		t.Errorf("expected category and location defaults, got %q / %q", car.Category, car.Location)
	}
}

func TestUpdateCarNotFoundBeforeOwnershipCheck(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newCarServiceForTest(store)
	caller := models.Caller{UID: "uid-2", Email: "b@x.com"}

	_, err := svc.UpdateCar(context.Background(), caller, "no-such-car", models.UpdateCarRequest{})
	if !errors.Is(err, ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound for missing car, got %v", err)
	}
}

func TestUpdateCarForbiddenForNonOwner(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newCarServiceForTest(store)
	carID := store.SeedCar(&models.Car{
		CarName:    "Civic",
		Status:     models.CarStatusAvailable,
		OwnerEmail: "a@x.com",
		CreatedAt:  time.Now().UTC(),
	})

	name := "Hijacked"
	_, err := svc.UpdateCar(context.Background(), models.Caller{Email: "b@x.com"}, carID, models.UpdateCarRequest{CarName: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner update, got %v", err)
	}

	car, err := svc.GetCar(context.Background(), carID)
	if err != nil {
		t.Fatalf("GetCar failed: %v", err)
	}
	if car.CarName != "Civic" {
		t.Errorf("car was modified by a forbidden update: %q", car.CarName)
	}
}

func TestUpdateCarAppliesPatchAndKeepsOwner(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newCarServiceForTest(store)
	carID := store.SeedCar(&models.Car{
		CarName:         "Civic",
		Description:     "sedan",
		Category:        "Standard",
		RentPricePerDay: 40,
		Location:        "Downtown",
		Status:          models.CarStatusAvailable,
		OwnerEmail:      "a@x.com",
		CreatedAt:       time.Now().UTC(),
	})

	name := "Civic 2024"
	price := 55.0
	car, err := svc.UpdateCar(context.Background(), models.Caller{Email: "a@x.com"}, carID, models.UpdateCarRequest{
		CarName:         &name,
		RentPricePerDay: &price,
	})
	if err != nil {
		t.Fatalf("UpdateCar failed: %v", err)
	}

	if car.CarName != "Civic 2024" || car.RentPricePerDay != 55.0 {
		t.Errorf("patch not applied: %+v", car)
	}
	if car.Description != "sedan" || car.Location != "Downtown" {
		t.Errorf("unpatched fields changed: %+v", car)
	}
	if car.OwnerEmail != "a@x.com" {
		t.Errorf("ownerEmail changed through update: %q", car.OwnerEmail)
	}
}

func TestDeleteCarOwnerOnly(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newCarServiceForTest(store)
	carID := store.SeedCar(&models.Car{
		CarName:    "Civic",
		Status:     models.CarStatusAvailable,
		OwnerEmail: "a@x.com",
		CreatedAt:  time.Now().UTC(),
	})

	if err := svc.DeleteCar(context.Background(), models.Caller{Email: "b@x.com"}, carID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}
	if err := svc.DeleteCar(context.Background(), models.Caller{Email: "a@x.com"}, carID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.GetCar(context.Background(), carID); !errors.Is(err, ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound after delete, got %v", err)
	}
}

func TestListCarsFilterAndOrder(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newCarServiceForTest(store)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SeedCar(&models.Car{CarName: "Honda Civic", Status: models.CarStatusAvailable, OwnerEmail: "a@x.com", CreatedAt: base})
	store.SeedCar(&models.Car{CarName: "Toyota Prius", Status: models.CarStatusAvailable, OwnerEmail: "a@x.com", CreatedAt: base.Add(time.Hour)})
	store.SeedCar(&models.Car{CarName: "CIVIC Type R", Status: models.CarStatusAvailable, OwnerEmail: "b@x.com", CreatedAt: base.Add(2 * time.Hour)})

	all, err := svc.ListCars(context.Background(), "")
	if err != nil {
		t.Fatalf("ListCars failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 cars, got %d", len(all))
	}
	if all[0].CarName != "CIVIC Type R" || all[2].CarName != "Honda Civic" {
		t.Errorf("expected newest-first order, got %q ... %q", all[0].CarName, all[2].CarName)
	}

	filtered, err := svc.ListCars(context.Background(), "civ")
	if err != nil {
		t.Fatalf("ListCars with filter failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 cars matching 'civ' case-insensitively, got %d", len(filtered))
	}
}
