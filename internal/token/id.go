package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SessionIDSize is the number of random bytes in a session id (256 bits).
const SessionIDSize = 32

// NewSessionID generates a cryptographically random, URL-safe session id.
func NewSessionID() (string, error) {
	b := make([]byte, SessionIDSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
