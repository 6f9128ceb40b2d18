package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
)

// CreateAccountRequest carries the raw fields entered by a new customer
type CreateAccountRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// TransactionResult describes an accepted deposit or withdrawal
type TransactionResult struct {
	Transaction entity.Transaction
	Balance     string // Balance after the transaction, formatted
}

// StatementLine is one rendered history entry
type StatementLine struct {
	TransactionID string    `json:"transactionId"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Balance       string    `json:"balance"`
}

// Statement is the account overview shown to a logged-in user
type Statement struct {
	Username  string          `json:"username"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Balance   string          `json:"balance"`
	Lines     []StatementLine `json:"transactions"`
}

// BankUseCase defines the operations available to drivers (console, HTTP)
type BankUseCase interface {
	// CheckUsername pre-validates a username for account creation.
	// Returns ErrUsernameTaken, ErrInvalidUsername or nil.
	CheckUsername(ctx context.Context, username string) error

	// CreateAccount validates the request and registers a new account
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*entity.User, error)

	// Login authenticates a user; every failure is ErrInvalidCredentials
	Login(ctx context.Context, username, password string) (*entity.User, error)

	// Deposit adds amountText to the user's balance
	Deposit(ctx context.Context, user *entity.User, amountText string) (*TransactionResult, error)

	// Withdraw subtracts amountText from the user's balance
	Withdraw(ctx context.Context, user *entity.User, amountText string) (*TransactionResult, error)

	// GetStatement returns the user's balance and history
	GetStatement(ctx context.Context, user *entity.User) *Statement

	// MinPasswordLength returns the minimum accepted password length in runes
	MinPasswordLength() int
}
