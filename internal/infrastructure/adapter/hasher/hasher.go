package hasher

import (
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
)

// Supported hasher kinds
const (
	KindSHA256 = "sha256"
	KindBcrypt = "bcrypt"
)

// New returns the hasher named by kind. An empty kind selects SHA-256.
func New(kind string, bcryptCost int) (coreport.PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindSHA256:
		return NewSHA256Hasher(), nil
	case KindBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	default:
		return nil, fmt.Errorf("unsupported password hasher: %s", kind)
	}
}
