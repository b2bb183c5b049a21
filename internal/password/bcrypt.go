// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/sessiongate/internal/model"
)

// MinCost is the lowest work factor Bcrypt accepts.
const MinCost = 10

// MaxLength is the longest password bcrypt hashes without truncation.
const MaxLength = 72

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements model.PasswordHasher.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a hasher with the given work factor.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost < MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, MinCost, bcrypt.MaxCost)
	}
	return &Bcrypt{cost: cost}, nil
}

// Hash returns a salted bcrypt hash of plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrHashingFailure, err)
	}
	return string(out), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a
// mismatch, not an error. Plaintexts longer than MaxLength never match:
// bcrypt ignores everything past that length.
func (b *Bcrypt) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case len(plaintext) > MaxLength:
		return false, nil
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), isMalformed(err):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", model.ErrHashingFailure, err)
	}
}

func isMalformed(err error) bool {
	var (
		prefixErr  bcrypt.InvalidHashPrefixError
		costErr    bcrypt.InvalidCostError
		versionErr bcrypt.HashVersionTooNewError
		corruptErr base64.CorruptInputError
		numErr     *strconv.NumError
	)
	return errors.Is(err, bcrypt.ErrHashTooShort) ||
		errors.As(err, &prefixErr) ||
		errors.As(err, &costErr) ||
		errors.As(err, &versionErr) ||
		errors.As(err, &corruptErr) ||
		errors.As(err, &numErr)
}
