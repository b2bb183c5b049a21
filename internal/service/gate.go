package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
)

// Gate resolves session ids presented on protected requests to user ids.
type Gate struct {
	sessions model.SessionStore
	users    model.UserStore
	now      func() time.Time
	group    singleflight.Group
	logger   *logger.Logger
}

func NewGate(sessions model.SessionStore, users model.UserStore, opts SessionOptions, logger *logger.Logger) *Gate {
	opts = opts.withDefaults()
	return &Gate{
		sessions: sessions,
		users:    users,
		now:      opts.Clock,
		logger:   logger,
	}
}

// Authorize returns the user bound to sessionID. Concurrent calls for the
// same id share one lookup, so an expired session is destroyed once. The
// shared lookup is detached from the caller's cancellation: one request
// going away must not fail the others waiting on it. Store calls stay
// bounded by the store's own deadline.
func (g *Gate) Authorize(ctx context.Context, sessionID string) (uuid.UUID, error) {
	if sessionID == "" {
		return uuid.Nil, model.ErrNoSession
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := g.group.Do(sessionID, func() (interface{}, error) {
		return g.authorize(shared, sessionID)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return v.(uuid.UUID), nil
}

func (g *Gate) authorize(ctx context.Context, sessionID string) (uuid.UUID, error) {
	session, err := g.sessions.Get(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		g.logger.Debug("Gate: session not found",
			"session_id", shortID(sessionID))
		return uuid.Nil, model.ErrNoSession
	}
	if err != nil {
		g.logger.Error("Gate: failed to load session",
			"session_id", shortID(sessionID),
			"error", err.Error())
		return uuid.Nil, storeFailure("failed to load session", err)
	}

	if session.ExpiredAt(g.now()) {
		g.logger.Info("Gate: session expired",
			"session_id", shortID(sessionID),
			"user_id", session.UserID,
			"expires_at", session.ExpiresAt)

		err := g.sessions.Delete(ctx, sessionID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			g.logger.Error("Gate: failed to destroy expired session",
				"session_id", shortID(sessionID),
				"error", err.Error())
			return uuid.Nil, storeFailure("failed to destroy expired session", err)
		}

		return uuid.Nil, model.ErrSessionExpired
	}

	user, err := g.users.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		g.logger.Warn("Gate: session references missing user",
			"session_id", shortID(sessionID),
			"user_id", session.UserID)
		return uuid.Nil, model.ErrSessionInvalid
	}
	if err != nil {
		g.logger.Error("Gate: failed to load session user",
			"session_id", shortID(sessionID),
			"user_id", session.UserID,
			"error", err.Error())
		return uuid.Nil, storeFailure("failed to load session user", err)
	}

	return user.ID, nil
}
