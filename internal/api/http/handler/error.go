package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/sessiongate/internal/model"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
	msgInternal           = "Internal server error"
)

// handleError writes the client-facing response for err. Unknown users and
// wrong passwords share one response so accounts cannot be enumerated.
func (h *Auth) handleError(c *gin.Context, err error) {
	status, message := mapError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	} else {
		h.logger.Debug("Auth handler: request rejected",
			"path", c.Request.URL.Path,
			"status", status,
			"error", err.Error())
	}
	c.JSON(status, messageResponse{Message: message})
}

func mapError(err error) (int, string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Reason
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, model.ErrDuplicateUsername):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, model.ErrNoSession),
		errors.Is(err, model.ErrSessionExpired),
		errors.Is(err, model.ErrSessionInvalid):
		return http.StatusUnauthorized, msgUnauthorized
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
