package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
	"github.com/dtroode/sessiongate/internal/token"
)

// SessionOptions is the session policy shared by Sessions and Gate.
// It is built once at startup and never mutated.
type SessionOptions struct {
	TTL   time.Duration
	Clock func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.TTL <= 0 {
		o.TTL = model.DefaultSessionTTL
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Sessions owns session creation and destruction on top of a SessionStore.
type Sessions struct {
	store  model.SessionStore
	opts   SessionOptions
	newID  func() (string, error)
	logger *logger.Logger
}

func NewSessions(store model.SessionStore, opts SessionOptions, logger *logger.Logger) *Sessions {
	return &Sessions{
		store:  store,
		opts:   opts.withDefaults(),
		newID:  token.NewSessionID,
		logger: logger,
	}
}

// TTL returns the configured session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.opts.TTL
}

// Create issues and persists a new session for userID.
func (s *Sessions) Create(ctx context.Context, userID uuid.UUID) (model.Session, error) {
	id, err := s.newID()
	if err != nil {
		s.logger.Error("Session service: failed to generate session id",
			"user_id", userID,
			"error", err.Error())
		return model.Session{}, err
	}

	now := s.opts.Clock()
	session := model.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.TTL),
	}

	if err := s.store.Put(ctx, session); err != nil {
		s.logger.Error("Session service: failed to persist session",
			"user_id", userID,
			"error", err.Error())
		return model.Session{}, storeFailure("failed to persist session", err)
	}

	s.logger.Debug("Session service: session created",
		"user_id", userID,
		"session_id", shortID(id),
		"expires_at", session.ExpiresAt)

	return session, nil
}

// Destroy removes a session. Destroying an absent session is not an error.
func (s *Sessions) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	err := s.store.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Session service: failed to destroy session",
			"session_id", shortID(sessionID),
			"error", err.Error())
		return storeFailure("failed to destroy session", err)
	}

	s.logger.Debug("Session service: session destroyed",
		"session_id", shortID(sessionID))

	return nil
}

func storeFailure(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, model.ErrStoreFailure, err)
}

func hashingFailure(msg string, err error) error {
	if errors.Is(err, model.ErrHashingFailure) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, model.ErrHashingFailure, err)
}

// shortID keeps session ids out of logs while leaving them correlatable.
func shortID(sessionID string) string {
	const keep = 8
	if len(sessionID) <= keep {
		return sessionID
	}
	return sessionID[:keep] + "..."
}
