package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/sessiongate/internal/password"
	"github.com/dtroode/sessiongate/internal/repository/memory"
	"github.com/dtroode/sessiongate/internal/testutil"
)

const testTTL = time.Hour

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// env wires the services over in-memory stores and a real bcrypt hasher.
type env struct {
	clock    *fakeClock
	users    *memory.UserRepository
	store    *memory.SessionRepository
	sessions *Sessions
	gate     *Gate
	auth     *Auth
}

func newEnv(t *testing.T) *env {
	t.Helper()

	clock := newFakeClock()
	users := memory.NewUserRepository()
	store, err := memory.NewSessionRepository(testTTL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hasher, err := password.NewBcrypt(password.MinCost)
	require.NoError(t, err)

	log := testutil.MakeNoopLogger()
	opts := SessionOptions{TTL: testTTL, Clock: clock.Now}
	sessions := NewSessions(store, opts, log)

	return &env{
		clock:    clock,
		users:    users,
		store:    store,
		sessions: sessions,
		gate:     NewGate(store, users, opts, log),
		auth:     NewAuth(users, sessions, hasher, log),
	}
}
