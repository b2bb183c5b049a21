package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Structure(t *testing.T) {
	repo := &UserRepository{
		db: nil,
	}

	assert.NotNil(t, repo)
	assert.Nil(t, repo.db)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "other pg error", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestConnection_PingNilPool(t *testing.T) {
	c := &Connection{}
	assert.ErrorIs(t, c.Ping(context.Background()), errNoPool)
	assert.NoError(t, c.Close())
}

func TestNewConnection_Failures(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr string
	}{
		{name: "malformed dsn", dsn: "postgres://%zz", wantErr: "failed to parse postgres dsn"},
		{name: "unreachable server", dsn: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", wantErr: "failed to reach postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := NewConnection(context.Background(), tt.dsn)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, conn)
		})
	}
}
