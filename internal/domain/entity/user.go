package entity

import (
	"strings"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/shopspring/decimal"
)

// User represents an account holder with a balance and transaction history
type User struct {
	username       string
	passwordDigest string
	FirstName      string
	LastName       string
	CreatedAt      time.Time // When the account was created

	// mu guards balance and history as one unit
	mu      sync.Mutex
	balance decimal.Decimal
	history []Transaction
}

// NewUser creates a user with a zero balance and an empty history
func NewUser(username, passwordDigest, firstName, lastName string, now time.Time) *User {
	return &User{
		username:       username,
		passwordDigest: passwordDigest,
		FirstName:      firstName,
		LastName:       lastName,
		CreatedAt:      now,
		balance:        decimal.Zero,
	}
}

// Username returns the immutable registry key of the user
func (u *User) Username() string {
	return u.username
}

// PasswordDigest returns the stored password digest
func (u *User) PasswordDigest() string {
	return u.passwordDigest
}

// FullName returns the first and last name separated by a space
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Balance returns the current balance
func (u *User) Balance() decimal.Decimal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.balance
}

// GetBalance returns the balance formatted for display
func (u *User) GetBalance() string {
	return FormatAmount(u.Balance())
}

// History returns a copy of the transaction history in chronological order
func (u *User) History() []Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Transaction, len(u.history))
	copy(out, u.history)
	return out
}

// TransactionCount returns the number of recorded transactions
func (u *User) TransactionCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.history)
}

// ApplyDeposit adds a positive amount to the balance and records it.
// Returns ErrOverflow, leaving the account untouched, if the new balance would exceed MaxBalance.
func (u *User) ApplyDeposit(amount decimal.Decimal, now time.Time) (Transaction, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.balance.GreaterThan(MaxBalance.Sub(amount)) {
		return Transaction{}, errs.NewBalanceError(u.username, FormatAmount(amount), FormatAmount(u.balance), errs.ErrOverflow)
	}

	u.balance = u.balance.Add(amount)
	txn := NewTransaction(amount, u.balance, DescriptionDeposit, now)
	u.history = append(u.history, txn)
	return txn, nil
}

// ApplyWithdraw subtracts a positive amount from the balance and records it.
// Returns ErrInsufficientFunds, leaving the account untouched, if the balance would go negative.
func (u *User) ApplyWithdraw(amount decimal.Decimal, now time.Time) (Transaction, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.balance.Sub(amount).IsNegative() {
		return Transaction{}, errs.NewInsufficientFundsError(u.username, FormatAmount(amount), FormatAmount(u.balance))
	}

	u.balance = u.balance.Sub(amount)
	txn := NewTransaction(amount.Neg(), u.balance, DescriptionWithdraw, now)
	u.history = append(u.history, txn)
	return txn, nil
}
