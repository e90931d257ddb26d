package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository handles session persistence operations.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `INSERT INTO sessions (token, user_id, role, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.Role, session.CreatedAt,
	)
	return err
}

// GetByToken retrieves a session by its token. Sessions have no expiry, so
// any stored token resolves for as long as its row exists.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	query := `SELECT token, user_id, role, created_at FROM sessions WHERE token = ?`

	session := &model.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token, &session.UserID, &session.Role, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}
