//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/sessiongate/internal/model"
	repo "github.com/dtroode/sessiongate/internal/repository/redis"
)

var addr string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		panic(err)
	}
	addr = fmt.Sprintf("%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	client, err := repo.New(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sr := repo.NewSessionRepository(client)
	now := time.Now().UTC()
	s := model.Session{
		ID:        "session-one",
		UserID:    uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	require.NoError(t, sr.Put(ctx, s))

	got, err := sr.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)

	ttl, err := client.TTL(ctx, "session:"+s.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	replacement := s
	replacement.UserID = uuid.New()
	assert.ErrorIs(t, sr.Put(ctx, replacement), model.ErrSessionExists)

	got, err = sr.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)

	require.NoError(t, sr.Delete(ctx, s.ID))
	require.NoError(t, sr.Delete(ctx, s.ID))

	_, err = sr.Get(ctx, s.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_RedisExpiry(t *testing.T) {
	ctx := context.Background()
	client, err := repo.New(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sr := repo.NewSessionRepository(client)
	now := time.Now()
	s := model.Session{ID: "short", UserID: uuid.New(), CreatedAt: now, ExpiresAt: now.Add(1100 * time.Millisecond)}
	require.NoError(t, sr.Put(ctx, s))

	require.Eventually(t, func() bool {
		_, err := sr.Get(ctx, s.ID)
		return err == model.ErrNotFound
	}, 5*time.Second, 100*time.Millisecond)
}
