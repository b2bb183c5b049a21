package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/dtroode/sessiongate/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository stores sessions in a bigcache instance whose life window
// equals the session TTL, so bigcache evicts entries the gate would already
// reject as expired.
type SessionRepository struct {
	// mu makes the existence check and Set in Put one step.
	mu    sync.Mutex
	cache *bigcache.BigCache
}

func NewSessionRepository(ttl time.Duration) (*SessionRepository, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false

	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &SessionRepository{cache: cache}, nil
}

func (r *SessionRepository) Put(_ context.Context, session model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.cache.Get(session.ID); err == nil {
		return fmt.Errorf("failed to put session: %w", model.ErrSessionExists)
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("failed to put session: %w", err)
	}

	if err := r.cache.Set(session.ID, data); err != nil {
		return fmt.Errorf("failed to put session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (model.Session, error) {
	data, err := r.cache.Get(id)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
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

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	if err := r.cache.Delete(id); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Close() error {
	return r.cache.Close()
}
