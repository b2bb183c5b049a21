// Package context carries the authenticated user id through request contexts.
package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/model"
)

type userIDKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the user id resolved by the session gate.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) WithAuthenticatedUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// AuthenticatedUser reports false when no gate has run for ctx.
func (m *Manager) AuthenticatedUser(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
