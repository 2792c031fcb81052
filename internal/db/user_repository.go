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

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document to Firestore.
// The user.UID (Firebase Auth UID) is used as the Firestore document ID.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with UID '%s' already exists: %w", user.UID, err)
		}
		return fmt.Errorf("failed to create user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// GetByUID retrieves a user document from Firestore by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByUID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with UID '%s': %w", uid, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for UID '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID

	return &user, nil
}

// GetByEmail retrieves the user document whose email field matches.
// Email is unique per identity provider account, so at most one document matches.
func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}

	iter := r.client.Collection(usersCollection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("user with email '%s' not found: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email '%s': %w", email, err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for email '%s': %w", email, err)
	}
	user.UID = doc.Ref.ID

	return &user, nil
}

// UpsertByEmail writes the user record matched by user.Email, creating the
// document (keyed by user.UID) when no match exists. The service layer
// merges the patch into the fetched record first, so the struct is complete
// and both branches are a plain overwrite Set of the matched document.
func (r *firestoreUserRepository) UpsertByEmail(ctx context.Context, user *models.User) error {
	if user.Email == "" {
		return errors.New("user email cannot be empty for UpsertByEmail operation")
	}

	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if user.UID == "" {
			return errors.New("user UID cannot be empty when inserting a new profile")
		}
		return r.writeProfile(ctx, user.UID, user)
	}
	return r.writeProfile(ctx, existing.UID, user)
}

// writeProfile overwrites the user document at the given UID. MergeAll is
// deliberately absent: it only accepts map data, and the caller always
// supplies a fully populated struct.
func (r *firestoreUserRepository) writeProfile(ctx context.Context, uid string, user *models.User) error {
	if _, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, user); err != nil {
		return fmt.Errorf("failed to write profile for email '%s': %w", user.Email, err)
	}
	return nil
}

// Count returns the total number of user documents.
func (r *firestoreUserRepository) Count(ctx context.Context) (int, error) {
	return countDocuments(ctx, r.client.Collection(usersCollection).Query)
}
