package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentwheels-backend-go/internal/models"
)

const carsCollection = "cars"

// firestoreCarRepository implements the CarRepository interface using Firestore.
type firestoreCarRepository struct {
	client *firestore.Client
}

// NewFirestoreCarRepository creates a new instance of firestoreCarRepository.
func NewFirestoreCarRepository(client *firestore.Client) CarRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CarRepository.")
	}
	return &firestoreCarRepository{client: client}
}

// Create adds a new car document to Firestore with an auto-generated ID.
func (r *firestoreCarRepository) Create(ctx context.Context, car *models.Car) (string, error) {
	docRef := r.client.Collection(carsCollection).NewDoc()
	car.ID = docRef.ID

	_, err := docRef.Create(ctx, car)
	if err != nil {
		return "", fmt.Errorf("failed to create car: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a car document from Firestore by its ID.
func (r *firestoreCarRepository) GetByID(ctx context.Context, carID string) (*models.Car, error) {
	if carID == "" {
		return nil, errors.New("carID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(carsCollection).Doc(carID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("car with ID '%s' not found: %w", carID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get car with ID '%s': %w", carID, err)
	}

	var car models.Car
	if err := docSnap.DataTo(&car); err != nil {
		return nil, fmt.Errorf("failed to decode car data for ID '%s': %w", carID, err)
	}
	car.ID = docSnap.Ref.ID

	return &car, nil
}

// List returns all cars ordered newest first by creation time.
func (r *firestoreCarRepository) List(ctx context.Context) ([]*models.Car, error) {
	iter := r.client.Collection(carsCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var cars []*models.Car
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate cars: %w", err)
		}

		var car models.Car
		if err := doc.DataTo(&car); err != nil {
			log.Printf("Error decoding car data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		car.ID = doc.Ref.ID
		cars = append(cars, &car)
	}

	return cars, nil
}

// Update overwrites the stored car with the given state. The service layer
// fetches the car and applies the patch before calling Update, so the
// struct is a complete representation and a plain Set is the right write;
// MergeAll is only valid with map data and would be rejected client-side.
func (r *firestoreCarRepository) Update(ctx context.Context, car *models.Car) error {
	if car.ID == "" {
		return errors.New("car ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(carsCollection).Doc(car.ID).Set(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to update car with ID '%s': %w", car.ID, err)
	}
	return nil
}

// Delete removes a car document from Firestore.
// Bookings that reference the car are not touched; a later cancellation of
// such a booking simply finds no car to release.
func (r *firestoreCarRepository) Delete(ctx context.Context, carID string) error {
	if carID == "" {
		return errors.New("carID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(carsCollection).Doc(carID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("car with ID '%s' not found for deletion: %w", carID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete car with ID '%s': %w", carID, err)
	}
	return nil
}

// Count returns the total number of car documents.
func (r *firestoreCarRepository) Count(ctx context.Context) (int, error) {
	return countDocuments(ctx, r.client.Collection(carsCollection).Query)
}

// CountByStatus counts cars whose status field matches.
func (r *firestoreCarRepository) CountByStatus(ctx context.Context, carStatus string) (int, error) {
	return countDocuments(ctx, r.client.Collection(carsCollection).Where("status", "==", carStatus))
}
