package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/sessiongate/internal/model"
)

// Ensure SessionRepository implements the model.SessionStore interface.
var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

// Put inserts a new session. An id that is already stored is rejected with
// model.ErrSessionExists.
func (r *SessionRepository) Put(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (id, user_id, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
    `

	if _, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to put session: %w", model.ErrSessionExists)
		}
		return fmt.Errorf("failed to put session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (model.Session, error) {
	const query = `
        SELECT id, user_id, created_at, expires_at
        FROM sessions
        WHERE id = $1
    `
	var s model.Session
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.CreatedAt,
		&s.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// Delete removes the session. Deleting an absent id is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry is not after now and
// reports how many were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= NOW()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
