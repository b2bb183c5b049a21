package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/sessiongate/internal/model"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "validation reason", err: model.NewValidationError("password must be at most 72 bytes"), wantStatus: http.StatusBadRequest, wantMessage: "password must be at most 72 bytes"},
		{name: "bare validation", err: model.ErrValidation, wantStatus: http.StatusBadRequest, wantMessage: "Invalid request"},
		{name: "duplicate", err: model.ErrDuplicateUsername, wantStatus: http.StatusBadRequest, wantMessage: "Username already exists"},
		{name: "user not found", err: model.ErrUserNotFound, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidCredentials},
		{name: "invalid credentials", err: model.ErrInvalidCredentials, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidCredentials},
		{name: "no session", err: model.ErrNoSession, wantStatus: http.StatusUnauthorized, wantMessage: msgUnauthorized},
		{name: "expired", err: model.ErrSessionExpired, wantStatus: http.StatusUnauthorized, wantMessage: msgUnauthorized},
		{name: "invalid session", err: model.ErrSessionInvalid, wantStatus: http.StatusUnauthorized, wantMessage: msgUnauthorized},
		{name: "store failure", err: fmt.Errorf("failed to get user: %w", model.ErrStoreFailure), wantStatus: http.StatusInternalServerError, wantMessage: msgInternal},
		{name: "hashing failure", err: model.ErrHashingFailure, wantStatus: http.StatusInternalServerError, wantMessage: msgInternal},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}
