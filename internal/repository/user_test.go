package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &model.User{Name: "Alice", Email: "alice@example.com", Password: "hash", Role: model.RoleUser}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated ID to be set")
	}

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != user.ID || got.Name != "Alice" || got.Role != model.RoleUser {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)

	err := repo.Create(context.Background(), &model.User{
		Name: "Other Alice", Email: "alice@example.com", Password: "hash", Role: model.RoleUser,
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_CountByRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	n, err := repo.CountByRole(context.Background(), model.RoleAdmin)
	if err != nil {
		t.Fatalf("CountByRole() error = %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 admins, got %d", n)
	}

	createTestUser(t, db, "Admin", "admin@example.com", model.RoleAdmin)
	createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)

	n, err = repo.CountByRole(context.Background(), model.RoleAdmin)
	if err != nil {
		t.Fatalf("CountByRole() error = %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 admin, got %d", n)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Error("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Error("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(errors.New("Error 1062: Duplicate entry 'a@b.c' for key 'email'")) {
		t.Error("MySQL duplicate entry error not detected")
	}
	if !isDuplicateEntryError(errors.New("UNIQUE constraint failed: users.email")) {
		t.Error("sqlite unique constraint error not detected")
	}
}
