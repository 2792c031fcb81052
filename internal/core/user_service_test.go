package core

import (
	"context"
	"errors"
	"testing"

	"rentwheels-backend-go/internal/models"
	"rentwheels-backend-go/internal/testutil"
)

func newUserServiceForTest(store *testutil.MemoryStore) UserService {
	return NewUserService(store.Users(), NewAuditService(store.Audit()))
}

func TestEnsureUserCreatesThenFinds(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newUserServiceForTest(store)
	caller := models.Caller{UID: "uid-1", Email: "alice@x.com", Name: "Alice"}

	user, created, err := svc.EnsureUser(context.Background(), caller)
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if !created {
		t.Error("expected first call to create the user")
	}
	if user.Role != models.DefaultRole {
		t.Errorf("expected default role %q, got %q", models.DefaultRole, user.Role)
	}
	if user.Email != "alice@x.com" || user.Name != "Alice" {
		t.Errorf("user record did not capture caller identity: %+v", user)
	}

	again, created, err := svc.EnsureUser(context.Background(), caller)
	if err != nil {
		t.Fatalf("second EnsureUser failed: %v", err)
	}
	if created {
		t.Error("expected second call to find the existing user")
	}
	if again.UID != user.UID {
		t.Errorf("expected same record, got UID %q vs %q", again.UID, user.UID)
	}

	count, err := store.Users().Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 user record, got %d", count)
	}
}

func TestGetRoleRestrictedToOwnEmail(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newUserServiceForTest(store)
	store.SeedUser(&models.User{UID: "uid-2", Email: "bob@x.com", Role: "admin"})

	// Even though the target user exists, someone else may not look it up.
	_, err := svc.GetRole(context.Background(), models.Caller{UID: "uid-1", Email: "alice@x.com"}, "bob@x.com")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	role, err := svc.GetRole(context.Background(), models.Caller{UID: "uid-2", Email: "bob@x.com"}, "bob@x.com")
	if err != nil {
		t.Fatalf("GetRole failed: %v", err)
	}
	if role != "admin" {
		t.Errorf("expected stored role %q, got %q", "admin", role)
	}
}

func TestGetRoleDefaultsWhenUnregistered(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newUserServiceForTest(store)

	role, err := svc.GetRole(context.Background(), models.Caller{UID: "uid-1", Email: "alice@x.com"}, "alice@x.com")
	if err != nil {
		t.Fatalf("GetRole failed: %v", err)
	}
	if role != models.DefaultRole {
		t.Errorf("expected default role %q for unregistered email, got %q", models.DefaultRole, role)
	}
}

func TestUpsertProfileInsertsWhenAbsent(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newUserServiceForTest(store)
	phone := "555-0100"

	user, err := svc.UpsertProfile(context.Background(), models.Caller{UID: "uid-1", Email: "alice@x.com", Name: "Alice"}, models.UpdateProfileRequest{
		Phone: &phone,
	})
	if err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}
	if user.Phone != phone {
		t.Errorf("expected phone %q, got %q", phone, user.Phone)
	}
	if user.Role != models.DefaultRole {
		t.Errorf("expected inserted record to carry default role, got %q", user.Role)
	}

	stored, err := store.Users().GetByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if stored.Phone != phone {
		t.Errorf("insert not persisted, stored phone %q", stored.Phone)
	}
}

func TestUpsertProfilePartialUpdatePreservesFields(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := newUserServiceForTest(store)
	store.SeedUser(&models.User{UID: "uid-1", Email: "alice@x.com", Name: "Alice", Phone: "555-0100", Address: "1 Main St"})

	name := "Alice B."
	user, err := svc.UpsertProfile(context.Background(), models.Caller{UID: "uid-1", Email: "alice@x.com"}, models.UpdateProfileRequest{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}
	if user.Name != name {
		t.Errorf("expected updated name %q, got %q", name, user.Name)
	}
	if user.Phone != "555-0100" || user.Address != "1 Main St" {
		t.Errorf("omitted fields must be preserved: %+v", user)
	}
	if user.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be refreshed")
	}
}
