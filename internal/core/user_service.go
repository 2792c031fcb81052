package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentwheels-backend-go/internal/db"
	"rentwheels-backend-go/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo     db.UserRepository
	auditService AuditService
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, auditService AuditService) UserService {
	return &userService{
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// EnsureUser retrieves the user record for the caller's UID, creating one
// with the default role when none exists. The operation is idempotent: a
// second call with the same identity finds the existing record and creates
// nothing.
func (s *userService) EnsureUser(ctx context.Context, caller models.Caller) (*models.User, bool, error) {
	if s.userRepo == nil {
		return nil, false, errors.New("UserRepository not initialized in UserService")
	}

	user, err := s.userRepo.GetByUID(ctx, caller.UID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user by UID '%s' from repository: %w", caller.UID, err)
	}

	now := time.Now().UTC()
	newUser := &models.User{
		UID:       caller.UID,
		Name:      caller.Name,
		Email:     caller.Email,
		Role:      models.DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
		return nil, false, fmt.Errorf("failed to create user (uid: %s) after not found: %w", caller.UID, createErr)
	}

	recordAudit(ctx, s.auditService, models.AuditLog{
		UserEmail:  caller.Email,
		Action:     models.AuditUserRegister,
		TargetType: "USER",
		TargetID:   caller.UID,
	})

	return newUser, true, nil
}

// GetRole returns the stored role for the requested email. A caller asking
// about any email other than their own is rejected regardless of whether
// that user exists; an absent record yields the default role.
func (s *userService) GetRole(ctx context.Context, caller models.Caller, email string) (string, error) {
	if s.userRepo == nil {
		return "", errors.New("UserRepository not initialized in UserService")
	}
	if caller.Email != email {
		return "", fmt.Errorf("%w: role lookup is restricted to the caller's own email", ErrForbidden)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.DefaultRole, nil
		}
		return "", fmt.Errorf("failed to get user by email '%s' from repository: %w", email, err)
	}
	if user.Role == "" {
		return models.DefaultRole, nil
	}
	return user.Role, nil
}

// UpsertProfile updates the user record matched by the caller's email with
// the supplied profile fields and a refreshed update timestamp, inserting a
// fresh record when none exists yet.
func (s *userService) UpsertProfile(ctx context.Context, caller models.Caller, req models.UpdateProfileRequest) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("UserRepository not initialized in UserService")
	}

	user, err := s.userRepo.GetByEmail(ctx, caller.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user by email '%s' from repository: %w", caller.Email, err)
		}
		user = &models.User{
			UID:       caller.UID,
			Name:      caller.Name,
			Email:     caller.Email,
			Role:      models.DefaultRole,
			CreatedAt: time.Now().UTC(),
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Photo != nil {
		user.Photo = *req.Photo
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpsertByEmail(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to upsert profile for email '%s': %w", caller.Email, err)
	}
	return user, nil
}
