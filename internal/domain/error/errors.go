package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest     = 4000
	CodeInsufficientFunds  = 4001
	CodeNotANumber         = 4002
	CodeNotPositive        = 4003
	CodeOverflow           = 4004
	CodeInvalidUsername    = 4005
	CodePasswordTooShort   = 4006
	CodeNameRequired       = 4007
	CodeInvalidCredentials = 4010
	CodeUserNotFound       = 4040
	CodeUsernameTaken      = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidUsername is returned when a username is empty, does not start with a letter,
	// or contains anything other than letters and digits
	ErrInvalidUsername = errors.New("usernames must begin with a letter and contain only letters and numbers")

	// ErrUsernameTaken is returned when the username is already registered
	ErrUsernameTaken = errors.New("this username is already taken")

	// ErrNotANumber is returned when an amount cannot be parsed as a decimal
	ErrNotANumber = errors.New("this is not a valid value")

	// ErrNotPositive is returned when an amount is zero or negative
	ErrNotPositive = errors.New("the value must be greater than 0")

	// ErrOverflow is returned when a deposit would push the balance past the maximum
	ErrOverflow = errors.New("there is not enough room in your account")

	// ErrInsufficientFunds is returned when a withdrawal would make the balance negative
	ErrInsufficientFunds = errors.New("you do not have enough money in your account")

	// ErrInvalidCredentials is the single signal for every failed login
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrPasswordTooShort is returned when a new password is below the minimum length
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrNameRequired is returned when a first or last name is blank
	ErrNameRequired = errors.New("first and last name are required")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrNotANumber):
		return CodeNotANumber
	case errors.Is(err, ErrNotPositive):
		return CodeNotPositive
	case errors.Is(err, ErrOverflow):
		return CodeOverflow
	case errors.Is(err, ErrInvalidUsername):
		return CodeInvalidUsername
	case errors.Is(err, ErrPasswordTooShort):
		return CodePasswordTooShort
	case errors.Is(err, ErrNameRequired):
		return CodeNameRequired
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// BalanceError represents an error related to balance operations
type BalanceError struct {
	Username       string
	Amount         string
	CurrentBalance string
	Err            error
}

// Error implements the error interface for BalanceError
func (e *BalanceError) Error() string {
	return fmt.Sprintf("balance operation failed for user %s (current balance: %s, amount: %s): %v",
		e.Username, e.CurrentBalance, e.Amount, e.Err)
}

// Unwrap returns the underlying error
func (e *BalanceError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "balance_error",
		"username":        e.Username,
		"amount":          e.Amount,
		"current_balance": e.CurrentBalance,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewBalanceError wraps err with the account context it occurred in
func NewBalanceError(username, amount, currentBalance string, err error) error {
	return &BalanceError{
		Username:       username,
		Amount:         amount,
		CurrentBalance: currentBalance,
		Err:            err,
	}
}

// InsufficientFundsError provides detailed error information for a rejected withdrawal
type InsufficientFundsError struct {
	Username    string
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s: required %s, available %s",
		e.Username, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"username":        e.Username,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(username, amount, currentBalance string) error {
	return &InsufficientFundsError{
		Username:    username,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// LogFielder is implemented by errors that carry structured logging context
type LogFielder interface {
	LogFields() map[string]any
}

// LogFields extracts structured fields from err, falling back to the message alone
func LogFields(err error) map[string]any {
	var lf LogFielder
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAmountError checks if the error rejects the amount text itself
func IsAmountError(err error) bool {
	return errors.Is(err, ErrNotANumber) || errors.Is(err, ErrNotPositive)
}

// IsAccountCreationError checks if the error is one of the account creation rejections
func IsAccountCreationError(err error) bool {
	return errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrNameRequired)
}

// userFacing lists the sentinels whose text may be shown to a customer as is
var userFacing = []error{
	ErrInsufficientFunds,
	ErrNotANumber,
	ErrNotPositive,
	ErrOverflow,
	ErrInvalidUsername,
	ErrPasswordTooShort,
	ErrNameRequired,
	ErrInvalidCredentials,
	ErrUserNotFound,
	ErrUsernameTaken,
	ErrInvalidRequest,
}

// Message returns the customer-facing text for err.
// Wrapped detail is dropped; unknown errors become ErrInternalServer's text.
func Message(err error) string {
	for _, sentinel := range userFacing {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ErrInternalServer.Error()
}
