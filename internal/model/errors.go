package model

import "errors"

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
	ErrSessionInvalid = errors.New("session invalid")
)

// ErrSessionExists is returned by Put when the id is already stored.
// Stores never overwrite a session.
var ErrSessionExists = errors.New("session id already in use")

var (
	ErrHashingFailure = errors.New("hashing failure")
	ErrStoreFailure   = errors.New("store failure")
)

// ValidationError describes rejected input. It matches ErrValidation.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
