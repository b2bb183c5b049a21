// Package handler implements the /auth HTTP endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/api/http/cookie"
	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
)

// AuthService defines registration, login, logout and profile operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (model.User, model.Session, error)
	Login(ctx context.Context, username, password string) (model.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, userID uuid.UUID) (model.User, error)
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type profileResponse struct {
	User userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	cookies        *cookie.Jar
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(authService AuthService, cookies *cookie.Jar, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		cookies:        cookies,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and logs it in.
func (h *Auth) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug("Auth handler: bad registration body",
			"error", err.Error())
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	previous := h.cookies.SessionID(c.Request)

	user, session, err := h.authService.Register(ctx, req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !h.issueCookie(c, session) {
		return
	}
	h.rotate(ctx, previous, session.ID)

	c.JSON(http.StatusCreated, registerResponse{
		Message: "User created successfully",
		User:    userResponse{ID: user.ID, Username: user.Username},
	})
}

// Login verifies credentials and sets a fresh session cookie.
func (h *Auth) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug("Auth handler: bad login body",
			"error", err.Error())
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	previous := h.cookies.SessionID(c.Request)

	session, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !h.issueCookie(c, session) {
		return
	}
	h.rotate(ctx, previous, session.ID)

	c.JSON(http.StatusOK, messageResponse{Message: "Logged in successfully"})
}

// Logout destroys the presented session. It succeeds without a session.
func (h *Auth) Logout(c *gin.Context) {
	sessionID := h.cookies.SessionID(c.Request)

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "Could not log out"})
		return
	}

	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Profile returns the authenticated user. It must run behind the
// authenticate middleware.
func (h *Auth) Profile(c *gin.Context) {
	userID, ok := h.contextManager.AuthenticatedUser(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, messageResponse{Message: "Unauthorized"})
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if status, _ := mapError(err); status == http.StatusUnauthorized {
			h.cookies.Clear(c.Writer)
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		User: userResponse{ID: user.ID, Username: user.Username},
	})
}

func (h *Auth) issueCookie(c *gin.Context, session model.Session) bool {
	if err := h.cookies.Set(c.Writer, session); err != nil {
		h.logger.Error("Auth handler: failed to set session cookie",
			"user_id", session.UserID,
			"error", err.Error())
		if derr := h.authService.Logout(c.Request.Context(), session.ID); derr != nil {
			h.logger.Warn("Auth handler: failed to drop unusable session",
				"error", derr.Error())
		}
		h.handleError(c, err)
		return false
	}
	return true
}

// rotate drops the session the client presented before authenticating again.
func (h *Auth) rotate(ctx context.Context, previous, current string) {
	if previous == "" || previous == current {
		return
	}
	if err := h.authService.Logout(ctx, previous); err != nil {
		h.logger.Warn("Auth handler: failed to destroy previous session",
			"error", err.Error())
	}
}
