package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/model"
	"github.com/dtroode/sessiongate/internal/password"
)

// dummyPassword is hashed once and verified against for unknown users so a
// missing account costs as much as a wrong password.
const dummyPassword = "sessiongate-timing-equalizer"

type Auth struct {
	userStore model.UserStore
	sessions  *Sessions
	hasher    model.PasswordHasher
	logger    *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuth(
	userStore model.UserStore,
	sessions *Sessions,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		sessions:  sessions,
		hasher:    hasher,
		logger:    logger,
	}
}

// Register creates a user and a first session for it. The returned user
// never carries the password hash.
func (a *Auth) Register(ctx context.Context, username, plaintext string) (model.User, model.Session, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if err := validateCredentials(username, plaintext); err != nil {
		a.logger.Info("Auth service: registration rejected",
			"username", username,
			"error", err.Error())
		return model.User{}, model.Session{}, err
	}

	hash, err := a.hasher.Hash(plaintext)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return model.User{}, model.Session{}, hashingFailure("failed to hash password", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    a.sessions.opts.Clock(),
	})
	if errors.Is(err, model.ErrDuplicateUsername) {
		a.logger.Info("Auth service: username already exists",
			"username", username)
		return model.User{}, model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, model.Session{}, storeFailure("failed to create user", err)
	}

	session, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username,
		"user_id", user.ID)

	user.PasswordHash = ""
	return user, session, nil
}

// Login verifies credentials and opens a new session. Unknown users and
// wrong passwords are distinct errors; callers must not reveal which.
func (a *Auth) Login(ctx context.Context, username, plaintext string) (model.Session, error) {
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.burnVerify(plaintext)
		a.logger.Info("Auth service: login failed, user not found",
			"username", username)
		return model.Session{}, model.ErrUserNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.Session{}, storeFailure("failed to get user by username", err)
	}

	ok, err := a.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to verify password",
			"username", username,
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, hashingFailure("failed to verify password", err)
	}
	if !ok {
		a.logger.Info("Auth service: login failed, invalid password",
			"username", username,
			"user_id", user.ID)
		return model.Session{}, model.ErrInvalidCredentials
	}

	session, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", username,
		"user_id", user.ID,
		"session_id", shortID(session.ID))

	return session, nil
}

// Logout destroys the session. It succeeds for unknown ids.
func (a *Auth) Logout(ctx context.Context, sessionID string) error {
	if err := a.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	a.logger.Info("Auth service: user logged out",
		"session_id", shortID(sessionID))

	return nil
}

// Profile returns the public view of the user behind an authorized request.
func (a *Auth) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Warn("Auth service: profile user disappeared",
			"user_id", userID)
		return model.User{}, model.ErrSessionInvalid
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, storeFailure("failed to get user by id", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (a *Auth) burnVerify(plaintext string) {
	a.dummyOnce.Do(func() {
		hash, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Warn("Auth service: failed to prepare dummy hash",
				"error", err.Error())
			return
		}
		a.dummyHash = hash
	})
	if a.dummyHash == "" {
		return
	}
	_, _ = a.hasher.Verify(plaintext, a.dummyHash)
}

func validateCredentials(username, plaintext string) error {
	if username == "" || plaintext == "" {
		return model.NewValidationError("username and password are required")
	}
	if len(plaintext) > password.MaxLength {
		return model.NewValidationError(fmt.Sprintf("password must be at most %d bytes", password.MaxLength))
	}
	return nil
}
