package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists server-side sessions. Delete must be idempotent.
type SessionStore interface {
	Put(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Session binds an opaque token to an authenticated user.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the session is no longer active at now.
func (s Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionSigner turns session ids into tamper-evident cookie values and back.
type SessionSigner interface {
	Sign(sessionID string) (string, error)
	Parse(value string) (string, error)
}
