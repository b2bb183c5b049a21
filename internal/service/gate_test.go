package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sessiongate/internal/mocks"
	"github.com/dtroode/sessiongate/internal/model"
	"github.com/dtroode/sessiongate/internal/testutil"
)

func registerUser(t *testing.T, e *env, username string) (model.User, model.Session) {
	t.Helper()
	user, session, err := e.auth.Register(context.Background(), username, "secret1")
	require.NoError(t, err)
	return user, session
}

func TestGate_Authorize(t *testing.T) {
	e := newEnv(t)
	user, session := registerUser(t, e, "alice")

	got, err := e.gate.Authorize(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)
}

func TestGate_NoSession(t *testing.T) {
	e := newEnv(t)

	for _, id := range []string{"", "never-issued"} {
		_, err := e.gate.Authorize(context.Background(), id)
		assert.ErrorIs(t, err, model.ErrNoSession, "id %q", id)
	}
}

func TestGate_Expiry(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user, session := registerUser(t, e, "alice")

	e.clock.Advance(testTTL - time.Nanosecond)
	got, err := e.gate.Authorize(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)

	e.clock.Advance(time.Nanosecond)
	_, err = e.gate.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, model.ErrSessionExpired)

	_, err = e.store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = e.gate.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestGate_DestroyedSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, session := registerUser(t, e, "alice")

	require.NoError(t, e.auth.Logout(ctx, session.ID))

	_, err := e.gate.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestGate_DanglingUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user, session := registerUser(t, e, "alice")

	e.users.Delete(ctx, user.ID)

	_, err := e.gate.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, model.ErrSessionInvalid)
}

func TestGate_StoreFailures(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := SessionOptions{TTL: testTTL, Clock: func() time.Time { return now }}
	live := model.Session{ID: "live", UserID: uuid.New(), CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	expired := model.Session{ID: "dead", UserID: uuid.New(), CreatedAt: now.Add(-time.Hour), ExpiresAt: now}

	tests := []struct {
		name  string
		id    string
		setup func(sessions *mocks.SessionStore, users *mocks.UserStore)
	}{
		{
			name: "session lookup fails",
			id:   "live",
			setup: func(sessions *mocks.SessionStore, _ *mocks.UserStore) {
				sessions.On("Get", mock.Anything, "live").Return(model.Session{}, assert.AnError).Once()
			},
		},
		{
			name: "expired session cannot be deleted",
			id:   "dead",
			setup: func(sessions *mocks.SessionStore, _ *mocks.UserStore) {
				sessions.On("Get", mock.Anything, "dead").Return(expired, nil).Once()
				sessions.On("Delete", mock.Anything, "dead").Return(assert.AnError).Once()
			},
		},
		{
			name: "user lookup fails",
			id:   "live",
			setup: func(sessions *mocks.SessionStore, users *mocks.UserStore) {
				sessions.On("Get", mock.Anything, "live").Return(live, nil).Once()
				users.On("GetByID", mock.Anything, live.UserID).Return(model.User{}, assert.AnError).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewSessionStore(t)
			users := mocks.NewUserStore(t)
			tt.setup(sessions, users)

			g := NewGate(sessions, users, opts, testutil.MakeNoopLogger())
			_, err := g.Authorize(context.Background(), tt.id)
			assert.ErrorIs(t, err, model.ErrStoreFailure)
		})
	}
}

func TestGate_ExpiredAlreadyDeletedElsewhere(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expired := model.Session{ID: "dead", UserID: uuid.New(), ExpiresAt: now.Add(-time.Second)}

	sessions := mocks.NewSessionStore(t)
	sessions.On("Get", mock.Anything, "dead").Return(expired, nil).Once()
	sessions.On("Delete", mock.Anything, "dead").Return(model.ErrNotFound).Once()

	g := NewGate(sessions, mocks.NewUserStore(t), SessionOptions{Clock: func() time.Time { return now }}, testutil.MakeNoopLogger())
	_, err := g.Authorize(context.Background(), "dead")
	assert.ErrorIs(t, err, model.ErrSessionExpired)
}

// slowSessionStore delays Get so concurrent lookups overlap, and counts deletes.
type slowSessionStore struct {
	model.SessionStore
	deletes atomic.Int32
}

func (s *slowSessionStore) Get(ctx context.Context, id string) (model.Session, error) {
	time.Sleep(50 * time.Millisecond)
	return s.SessionStore.Get(ctx, id)
}

func (s *slowSessionStore) Delete(ctx context.Context, id string) error {
	s.deletes.Add(1)
	return s.SessionStore.Delete(ctx, id)
}

func TestGate_ConcurrentExpiredLookupsDeleteOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, session := registerUser(t, e, "alice")

	store := &slowSessionStore{SessionStore: e.store}
	g := NewGate(store, e.users, SessionOptions{TTL: testTTL, Clock: e.clock.Now}, testutil.MakeNoopLogger())

	e.clock.Advance(testTTL)

	const n = 10
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = g.Authorize(ctx, session.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), store.deletes.Load())
	for _, err := range errs {
		if !assert.Error(t, err) {
			continue
		}
		assert.True(t, err == model.ErrSessionExpired || err == model.ErrNoSession, "unexpected error: %v", err)
	}
}

// blockingSessionStore holds Get until released and fails it if the lookup
// context is canceled first.
type blockingSessionStore struct {
	model.SessionStore
	gets    atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSessionStore) Get(ctx context.Context, id string) (model.Session, error) {
	if s.gets.Add(1) == 1 {
		close(s.entered)
	}
	select {
	case <-s.release:
	case <-ctx.Done():
		return model.Session{}, ctx.Err()
	}
	return s.SessionStore.Get(ctx, id)
}

func TestGate_CanceledCallerDoesNotFailSharedLookup(t *testing.T) {
	e := newEnv(t)
	user, session := registerUser(t, e, "alice")

	store := &blockingSessionStore{
		SessionStore: e.store,
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	g := NewGate(store, e.users, SessionOptions{TTL: testTTL, Clock: e.clock.Now}, testutil.MakeNoopLogger())

	type result struct {
		id  uuid.UUID
		err error
	}
	first := make(chan result, 1)
	second := make(chan result, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		id, err := g.Authorize(ctx, session.ID)
		first <- result{id, err}
	}()
	<-store.entered

	go func() {
		id, err := g.Authorize(context.Background(), session.ID)
		second <- result{id, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(10 * time.Millisecond)
	close(store.release)

	r2 := <-second
	require.NoError(t, r2.err)
	assert.Equal(t, user.ID, r2.id)

	r1 := <-first
	require.NoError(t, r1.err)
	assert.Equal(t, user.ID, r1.id)

	assert.Equal(t, int32(1), store.gets.Load())
}
