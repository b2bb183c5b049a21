// Package timeout bounds every store call with a per-call deadline.
package timeout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/model"
)

var (
	_ model.UserStore    = (*Users)(nil)
	_ model.SessionStore = (*Sessions)(nil)
)

// Users wraps a model.UserStore.
type Users struct {
	next    model.UserStore
	timeout time.Duration
}

func NewUsers(next model.UserStore, timeout time.Duration) *Users {
	return &Users{next: next, timeout: timeout}
}

func (u *Users) Create(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.next.Create(ctx, user)
}

func (u *Users) GetByUsername(ctx context.Context, username string) (model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.next.GetByUsername(ctx, username)
}

func (u *Users) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.next.GetByID(ctx, id)
}

// Sessions wraps a model.SessionStore.
type Sessions struct {
	next    model.SessionStore
	timeout time.Duration
}

func NewSessions(next model.SessionStore, timeout time.Duration) *Sessions {
	return &Sessions{next: next, timeout: timeout}
}

func (s *Sessions) Put(ctx context.Context, session model.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Put(ctx, session)
}

func (s *Sessions) Get(ctx context.Context, id string) (model.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Get(ctx, id)
}

func (s *Sessions) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Delete(ctx, id)
}
