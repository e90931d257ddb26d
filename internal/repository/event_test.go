package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
)

// createTestEvent inserts an event fixture with the given invitees.
func createTestEvent(t *testing.T, db *sql.DB, owner *model.User, title string, invitees ...model.Invitee) *model.Event {
	t.Helper()

	event := &model.Event{
		UserID:    owner.ID,
		Title:     title,
		EventDate: "2026-09-12",
		Notes:     "test notes",
		Status:    model.EventStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := NewEventRepository(db).Create(context.Background(), event, invitees); err != nil {
		t.Fatalf("Failed to create test event %s: %v", title, err)
	}
	return event
}

func TestEventRepository_CreateWithInvitees(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	owner := createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)

	invitees := []model.Invitee{
		{Name: "Bob", Phone: "15550001"},
		{Name: "Carol", Phone: "15550002"},
	}
	event := &model.Event{
		UserID:    owner.ID,
		Title:     "Garden party",
		EventDate: "2026-09-12",
		Status:    model.EventStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), event, invitees); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if event.ID == 0 {
		t.Fatal("expected generated event ID to be set")
	}

	stored, err := repo.ListInvitees(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("ListInvitees() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 invitees, got %d", len(stored))
	}
	for i, inv := range stored {
		if inv.EventID != event.ID {
			t.Errorf("invitee %d EventID got = %d, want %d", i, inv.EventID, event.ID)
		}
		if inv.ID == 0 {
			t.Errorf("invitee %d should have a generated ID", i)
		}
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	owner := createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)
	event := createTestEvent(t, db, owner, "Garden party")

	got, err := repo.GetByID(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Garden party" || got.Status != model.EventStatusPending || got.Paid {
		t.Errorf("unexpected event: %+v", got)
	}

	if _, err := repo.GetByID(context.Background(), event.ID+100); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)
	bob := createTestUser(t, db, "Bob", "bob@example.com", model.RoleUser)

	first := createTestEvent(t, db, alice, "First")
	second := createTestEvent(t, db, alice, "Second")
	createTestEvent(t, db, bob, "Bob's event")

	events, err := repo.ListByOwner(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for alice, got %d", len(events))
	}
	if events[0].ID != second.ID || events[1].ID != first.ID {
		t.Errorf("expected newest first, got [%d %d]", events[0].ID, events[1].ID)
	}
}

func TestEventRepository_MarkPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)
	bob := createTestUser(t, db, "Bob", "bob@example.com", model.RoleUser)
	event := createTestEvent(t, db, alice, "Garden party")

	// Another user's event is indistinguishable from an absent one.
	if err := repo.MarkPaid(context.Background(), event.ID, bob.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound for non-owner, got %v", err)
	}

	if err := repo.MarkPaid(context.Background(), event.ID, alice.ID); err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Paid {
		t.Error("expected event to be marked paid")
	}

	// Re-marking succeeds silently.
	if err := repo.MarkPaid(context.Background(), event.ID, alice.ID); err != nil {
		t.Errorf("re-marking paid should succeed, got %v", err)
	}
}

func TestEventRepository_ListPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)

	pending := createTestEvent(t, db, alice, "Pending one")
	decided := createTestEvent(t, db, alice, "Already approved")

	tx, err := repo.BeginTx(context.Background())
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}
	if err := repo.UpdateStatusTx(context.Background(), tx, decided.ID, model.EventStatusApproved); err != nil {
		t.Fatalf("UpdateStatusTx() error = %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	events, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 pending event, got %d", len(events))
	}
	if events[0].ID != pending.ID {
		t.Errorf("pending event ID got = %d, want %d", events[0].ID, pending.ID)
	}
	if events[0].Requester != "Alice" {
		t.Errorf("Requester got = %q, want %q", events[0].Requester, "Alice")
	}
}

func TestEventRepository_UpdateStatusTx_Rollback(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", model.RoleUser)
	event := createTestEvent(t, db, alice, "Garden party")

	tx, err := repo.BeginTx(context.Background())
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}
	if err := repo.UpdateStatusTx(context.Background(), tx, event.ID, model.EventStatusApproved); err != nil {
		t.Fatalf("UpdateStatusTx() error = %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != model.EventStatusPending {
		t.Errorf("status after rollback got = %q, want %q", got.Status, model.EventStatusPending)
	}
}
