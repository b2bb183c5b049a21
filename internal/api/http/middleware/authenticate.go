package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/api/http/cookie"
	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
)

// Gate resolves session ids to user ids.
type Gate interface {
	Authorize(ctx context.Context, sessionID string) (uuid.UUID, error)
}

// Authenticate admits requests carrying a live session and puts the user id
// into the request context.
type Authenticate struct {
	gate           Gate
	cookies        *cookie.Jar
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(gate Gate, cookies *cookie.Jar, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		gate:           gate,
		cookies:        cookies,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle is the gin middleware.
func (m *Authenticate) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := m.cookies.SessionID(c.Request)

	userID, err := m.gate.Authorize(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrStoreFailure) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		m.logger.Debug("Authenticate middleware: request rejected",
			"path", c.Request.URL.Path,
			"error", err.Error())

		if errors.Is(err, model.ErrSessionExpired) || errors.Is(err, model.ErrSessionInvalid) {
			m.cookies.Clear(c.Writer)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.WithAuthenticatedUser(ctx, userID))
	c.Next()
}
