package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager attaches the user resolved by the session gate to a
// request context. The attachment lives only as long as the request.
type ContextManager interface {
	// WithAuthenticatedUser returns a copy of ctx carrying userID.
	WithAuthenticatedUser(ctx context.Context, userID uuid.UUID) context.Context
	// AuthenticatedUser reports false when the request did not pass the gate.
	AuthenticatedUser(ctx context.Context) (uuid.UUID, bool)
}
