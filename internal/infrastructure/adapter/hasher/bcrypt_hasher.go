package hasher

import (
	"fmt"

	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher stores salted, deliberately slow bcrypt digests
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher; a cost outside bcrypt's range falls back to the default
func NewBcryptHasher(cost int) coreport.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt digest of plaintext.
// Fails with bcrypt.ErrPasswordTooLong for passwords over 72 bytes.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether plaintext matches the bcrypt digest
func (h *BcryptHasher) Check(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
