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

const bookingsCollection = "bookings"

// firestoreBookingRepository implements the BookingRepository interface
// using Firestore. The booking transition touches both the bookings and
// cars collections, so Book and Cancel run inside a Firestore transaction:
// the car's status and the set of bookings referencing it can never drift
// apart, and two concurrent bookings of one car cannot both succeed.
type firestoreBookingRepository struct {
	client *firestore.Client
}

// NewFirestoreBookingRepository creates a new instance of firestoreBookingRepository.
func NewFirestoreBookingRepository(client *firestore.Client) BookingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BookingRepository.")
	}
	return &firestoreBookingRepository{client: client}
}

// GetByID retrieves a booking document from Firestore by its ID.
func (r *firestoreBookingRepository) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, errors.New("bookingID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(bookingsCollection).Doc(bookingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("booking with ID '%s' not found: %w", bookingID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking with ID '%s': %w", bookingID, err)
	}

	var booking models.Booking
	if err := docSnap.DataTo(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking data for ID '%s': %w", bookingID, err)
	}
	booking.ID = docSnap.Ref.ID

	return &booking, nil
}

// ListByUserEmail retrieves all bookings created by the given user, newest first.
func (r *firestoreBookingRepository) ListByUserEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for ListByUserEmail operation")
	}
	query := r.client.Collection(bookingsCollection).
		Where("userEmail", "==", email).
		OrderBy("createdAt", firestore.Desc)
	return r.collectBookings(ctx, query)
}

// ListAll retrieves every booking, newest first.
func (r *firestoreBookingRepository) ListAll(ctx context.Context) ([]*models.Booking, error) {
	query := r.client.Collection(bookingsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collectBookings(ctx, query)
}

// ListRecent retrieves the most recently created bookings, newest first.
func (r *firestoreBookingRepository) ListRecent(ctx context.Context, limit int) ([]*models.Booking, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive for ListRecent operation")
	}
	query := r.client.Collection(bookingsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.collectBookings(ctx, query)
}

func (r *firestoreBookingRepository) collectBookings(ctx context.Context, query firestore.Query) ([]*models.Booking, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var bookings []*models.Booking
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate bookings: %w", err)
		}

		var booking models.Booking
		if err := doc.DataTo(&booking); err != nil {
			log.Printf("Error decoding booking data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		booking.ID = doc.Ref.ID
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

// Book atomically creates the booking document and flips the referenced car
// to "Booked". The car's status is re-read inside the transaction, so a
// concurrent booking of the same car fails with ErrCarUnavailable instead
// of double-booking.
func (r *firestoreBookingRepository) Book(ctx context.Context, booking *models.Booking) (string, error) {
	if booking.CarID == "" {
		return "", errors.New("booking carId cannot be empty for Book operation")
	}

	carRef := r.client.Collection(carsCollection).Doc(booking.CarID)
	bookingRef := r.client.Collection(bookingsCollection).NewDoc()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		carSnap, err := tx.Get(carRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("car with ID '%s' not found: %w", booking.CarID, ErrNotFound)
			}
			return fmt.Errorf("failed to read car '%s' in booking transaction: %w", booking.CarID, err)
		}

		carStatus, err := carSnap.DataAt("status")
		if err != nil {
			return fmt.Errorf("failed to read status of car '%s': %w", booking.CarID, err)
		}
		if carStatus == models.CarStatusBooked {
			return fmt.Errorf("car with ID '%s': %w", booking.CarID, ErrCarUnavailable)
		}

		if err := tx.Create(bookingRef, booking); err != nil {
			return fmt.Errorf("failed to create booking for car '%s': %w", booking.CarID, err)
		}
		return tx.Update(carRef, []firestore.Update{
			{Path: "status", Value: models.CarStatusBooked},
		})
	})
	if err != nil {
		return "", err
	}

	return bookingRef.ID, nil
}

// Cancel atomically deletes the booking and releases the referenced car.
// The car may have been deleted since the booking was made; in that case
// only the booking is removed and the cancellation still succeeds.
func (r *firestoreBookingRepository) Cancel(ctx context.Context, bookingID, carID string) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for Cancel operation")
	}

	bookingRef := r.client.Collection(bookingsCollection).Doc(bookingID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		carExists := false
		var carRef *firestore.DocumentRef
		if carID != "" {
			carRef = r.client.Collection(carsCollection).Doc(carID)
			if _, err := tx.Get(carRef); err != nil {
				if status.Code(err) != codes.NotFound {
					return fmt.Errorf("failed to read car '%s' in cancel transaction: %w", carID, err)
				}
			} else {
				carExists = true
			}
		}

		if err := tx.Delete(bookingRef); err != nil {
			return fmt.Errorf("failed to delete booking '%s': %w", bookingID, err)
		}
		if carExists {
			return tx.Update(carRef, []firestore.Update{
				{Path: "status", Value: models.CarStatusAvailable},
			})
		}
		return nil
	})
}

// Count returns the total number of booking documents.
func (r *firestoreBookingRepository) Count(ctx context.Context) (int, error) {
	return countDocuments(ctx, r.client.Collection(bookingsCollection).Query)
}
