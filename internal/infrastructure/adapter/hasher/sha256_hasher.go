package hasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
)

// SHA256Hasher produces an unsalted SHA-256 digest encoded as 64 lowercase hex characters.
// The same password always yields the same digest, which makes stored digests
// open to precomputed-table attacks. Use BcryptHasher where that matters.
type SHA256Hasher struct{}

// NewSHA256Hasher creates the deterministic hasher
func NewSHA256Hasher() coreport.PasswordHasher {
	return &SHA256Hasher{}
}

// Hash returns the hex-encoded SHA-256 digest of the UTF-8 bytes of plaintext
func (h *SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Check recomputes the digest and compares it for exact equality in constant time
func (h *SHA256Hasher) Check(plaintext, digest string) bool {
	computed, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
