package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository handles event and invitee persistence operations.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// BeginTx starts a new database transaction.
func (r *EventRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// Create inserts an event together with its invitees in one transaction and
// sets the generated IDs on the passed structs.
func (r *EventRepository) Create(ctx context.Context, event *model.Event, invitees []model.Invitee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO events (user_id, title, event_date, notes, status, paid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.UserID, event.Title, event.EventDate, event.Notes,
		event.Status, event.Paid, event.CreatedAt,
	)
	if err != nil {
		return err
	}

	eventID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = eventID

	for i := range invitees {
		invitees[i].EventID = eventID
		result, err := tx.ExecContext(ctx,
			`INSERT INTO invitees (event_id, name, phone) VALUES (?, ?, ?)`,
			eventID, invitees[i].Name, invitees[i].Phone,
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		invitees[i].ID = id
	}

	return tx.Commit()
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT id, user_id, title, event_date, notes, status, paid, created_at
		FROM events WHERE id = ?`

	event := &model.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.UserID, &event.Title, &event.EventDate,
		&event.Notes, &event.Status, &event.Paid, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// ListByOwner retrieves all events owned by a user, newest first.
func (r *EventRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Event, error) {
	query := `SELECT id, user_id, title, event_date, notes, status, paid, created_at
		FROM events WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Title, &e.EventDate,
			&e.Notes, &e.Status, &e.Paid, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// ListPending retrieves all events awaiting an admin decision joined with
// the requester's name, newest first.
func (r *EventRepository) ListPending(ctx context.Context) ([]model.PendingEvent, error) {
	query := `SELECT events.id, events.user_id, events.title, events.event_date,
			events.notes, events.status, events.paid, events.created_at, users.name
		FROM events JOIN users ON events.user_id = users.id
		WHERE events.status = ? ORDER BY events.created_at DESC, events.id DESC`

	rows, err := r.db.QueryContext(ctx, query, model.EventStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.PendingEvent
	for rows.Next() {
		var e model.PendingEvent
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Title, &e.EventDate,
			&e.Notes, &e.Status, &e.Paid, &e.CreatedAt, &e.Requester,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// MarkPaid sets paid=true on an event owned by the given user. Re-marking
// an already-paid event succeeds silently.
func (r *EventRepository) MarkPaid(ctx context.Context, eventID, ownerID int64) error {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = ? AND user_id = ?`, eventID, ownerID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}

	_, err = r.db.ExecContext(ctx, `UPDATE events SET paid = TRUE WHERE id = ?`, eventID)
	return err
}

// UpdateStatusTx sets an event's status within the provided transaction.
func (r *EventRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, eventID int64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE events SET status = ? WHERE id = ?`, status, eventID)
	return err
}

// ListInviteesTx retrieves an event's invitees within the provided transaction.
func (r *EventRepository) ListInviteesTx(ctx context.Context, tx *sql.Tx, eventID int64) ([]model.Invitee, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, event_id, name, phone FROM invitees WHERE event_id = ? ORDER BY id`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitees []model.Invitee
	for rows.Next() {
		var i model.Invitee
		if err := rows.Scan(&i.ID, &i.EventID, &i.Name, &i.Phone); err != nil {
			return nil, err
		}
		invitees = append(invitees, i)
	}

	return invitees, rows.Err()
}

// ListInvitees retrieves an event's invitees.
func (r *EventRepository) ListInvitees(ctx context.Context, eventID int64) ([]model.Invitee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, name, phone FROM invitees WHERE event_id = ? ORDER BY id`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitees []model.Invitee
	for rows.Next() {
		var i model.Invitee
		if err := rows.Scan(&i.ID, &i.EventID, &i.Name, &i.Phone); err != nil {
			return nil, err
		}
		invitees = append(invitees, i)
	}

	return invitees, rows.Err()
}
