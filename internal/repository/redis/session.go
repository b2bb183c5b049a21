package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/sessiongate/internal/model"
)

const keyPrefix = "session:"

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository stores each session as a JSON value whose Redis TTL ends
// at the session's ExpiresAt.
type SessionRepository struct {
	client goredis.Cmdable
	prefix string
	now    func() time.Time
}

func NewSessionRepository(client goredis.Cmdable) *SessionRepository {
	return &SessionRepository{
		client: client,
		prefix: keyPrefix,
		now:    time.Now,
	}
}

func (r *SessionRepository) key(id string) string {
	return r.prefix + id
}

func (r *SessionRepository) Put(ctx context.Context, session model.Session) error {
	if session.ID == "" {
		return errors.New("session id is empty")
	}

	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID[:min(len(session.ID), 8)])
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	stored, err := r.client.SetNX(ctx, r.key(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to put session: %w", err)
	}
	if !stored {
		return fmt.Errorf("failed to put session: %w", model.ErrSessionExists)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (model.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return model.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
