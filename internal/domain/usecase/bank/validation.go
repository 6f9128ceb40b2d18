package bank

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/ledger"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
)

// DefaultMinPasswordLength is used when no minimum is configured
const DefaultMinPasswordLength = 8

// AccountValidator provides validation for account creation requests
type AccountValidator struct {
	minPasswordLength int
}

// NewAccountValidator creates a new AccountValidator
func NewAccountValidator(minPasswordLength int) *AccountValidator {
	if minPasswordLength <= 0 {
		minPasswordLength = DefaultMinPasswordLength
	}
	return &AccountValidator{minPasswordLength: minPasswordLength}
}

// MinPasswordLength returns the configured minimum password length
func (v *AccountValidator) MinPasswordLength() int {
	return v.minPasswordLength
}

// ValidateCreateAccount validates all account fields.
// The request is expected to be normalized already.
func (v *AccountValidator) ValidateCreateAccount(req usecase.CreateAccountRequest) error {
	if err := v.validateUsername(req.Username); err != nil {
		return err
	}

	if err := v.validatePassword(req.Password); err != nil {
		return err
	}

	return v.validateNames(req.FirstName, req.LastName)
}

func (v *AccountValidator) validateUsername(username string) error {
	if !ledger.IsUsernameValid(username) {
		return errs.ErrInvalidUsername
	}
	return nil
}

// validatePassword counts runes, not bytes
func (v *AccountValidator) validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < v.minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", errs.ErrPasswordTooShort, v.minPasswordLength)
	}
	return nil
}

func (v *AccountValidator) validateNames(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return errs.ErrNameRequired
	}
	return nil
}

// NormalizeUsername trims surrounding whitespace and lowercases the username
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
