package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/sessiongate/internal/model"
)

// ErrMalformed is returned by Parse for values that are not valid signed session tokens.
var ErrMalformed = errors.New("malformed session token")

const typeSession = "session"

// Claims carries the session id in the registered jti claim.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT signs session ids with HMAC so cookies cannot be forged or altered.
// Session validity is decided by the session store, not by token claims.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

var _ model.SessionSigner = (*JWT)(nil)

// NewJWT creates a signer with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: []byte(secretKey), now: time.Now}
}

// Sign returns a signed cookie value for sessionID.
func (j *JWT) Sign(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("failed to sign session token: empty session id")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			IssuedAt: jwt.NewNumericDate(j.now()),
		},
		TokenType: typeSession,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies value and extracts the session id.
func (j *JWT) Parse(value string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if !token.Valid {
		return "", ErrMalformed
	}
	if claims.TokenType != typeSession {
		return "", fmt.Errorf("%w: token type mismatch: %s", ErrMalformed, claims.TokenType)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: missing session id", ErrMalformed)
	}
	return claims.ID, nil
}
