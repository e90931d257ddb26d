package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
)

var ErrInviteNotFound = errors.New("invite not found")

// InviteRepository handles invite persistence operations.
type InviteRepository struct {
	db *sql.DB
}

// NewInviteRepository creates a new InviteRepository.
func NewInviteRepository(db *sql.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// CreateTx inserts a new invite within the provided transaction and sets
// the generated ID on the invite struct.
func (r *InviteRepository) CreateTx(ctx context.Context, tx *sql.Tx, invite *model.Invite) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO invites (invitee_id, status, created_at) VALUES (?, ?, ?)`,
		invite.InviteeID, invite.Status, invite.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	invite.ID = id
	return nil
}

// GetDetail retrieves an invite joined with its invitee and event. This
// backs the public invite page and requires no authentication.
func (r *InviteRepository) GetDetail(ctx context.Context, id int64) (*model.InviteDetail, error) {
	query := `SELECT invites.id, invites.status, invitees.name, invitees.phone,
			events.title, events.event_date
		FROM invites
		JOIN invitees ON invites.invitee_id = invitees.id
		JOIN events ON invitees.event_id = events.id
		WHERE invites.id = ?`

	detail := &model.InviteDetail{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID, &detail.Status, &detail.Name, &detail.Phone,
		&detail.Title, &detail.EventDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	return detail, nil
}

// UpdateResponse sets an invite's status and response timestamp,
// overwriting any prior response.
func (r *InviteRepository) UpdateResponse(ctx context.Context, id int64, status string, respondedAt time.Time) error {
	var existing int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM invites WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInviteNotFound
		}
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE invites SET status = ?, responded_at = ? WHERE id = ?`,
		status, respondedAt, id,
	)
	return err
}

// ListByEvent retrieves all invites belonging to an event's invitees,
// newest-created first.
func (r *InviteRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.EventInvite, error) {
	query := `SELECT invites.id, invitees.name, invitees.phone, invites.status, invites.responded_at
		FROM invites
		JOIN invitees ON invites.invitee_id = invitees.id
		WHERE invitees.event_id = ?
		ORDER BY invites.created_at DESC, invites.id DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []model.EventInvite
	for rows.Next() {
		var inv model.EventInvite
		var respondedAt sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Phone, &inv.Status, &respondedAt); err != nil {
			return nil, err
		}
		if respondedAt.Valid {
			t := respondedAt.Time
			inv.RespondedAt = &t
		}
		invites = append(invites, inv)
	}

	return invites, rows.Err()
}
