// Package memory holds process-local store implementations for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps users in maps guarded by a single mutex, so the
// username check and insert in Create are one atomic step.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]model.User
	byUsername map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[uuid.UUID]model.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return model.User{}, model.ErrDuplicateUsername
	}

	r.byID[user.ID] = user
	r.byUsername[user.Username] = user.ID

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	return r.byID[id], nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	return user, nil
}

// Delete removes a user. Sessions referencing it become invalid at the gate.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.byID[id]; ok {
		delete(r.byUsername, user.Username)
		delete(r.byID, id)
	}
}
