package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Description identifies the kind of balance change a transaction records
type Description string

// Transaction descriptions
const (
	DescriptionDeposit  Description = "Deposit"
	DescriptionWithdraw Description = "Withdraw"
)

// Transaction is an immutable record of one balance change
type Transaction struct {
	ID               string          // Unique identifier for the transaction
	Amount           decimal.Decimal // Positive for a deposit, negative for a withdrawal
	ResultingBalance decimal.Decimal // Balance after this transaction was applied
	Description      Description
	Timestamp        time.Time // When the transaction was recorded
}

// NewTransaction records a balance change captured at now
func NewTransaction(amount, resultingBalance decimal.Decimal, description Description, now time.Time) Transaction {
	return Transaction{
		ID:               uuid.NewString(),
		Amount:           amount,
		ResultingBalance: resultingBalance,
		Description:      description,
		Timestamp:        now,
	}
}

// IsCredit returns true if this transaction increased the balance
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit returns true if this transaction decreased the balance
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// FormattedAmount returns the signed amount as a decimal string
func (t Transaction) FormattedAmount() string {
	return FormatAmount(t.Amount)
}

// FormattedBalance returns the resulting balance as a decimal string
func (t Transaction) FormattedBalance() string {
	return FormatAmount(t.ResultingBalance)
}

// IsValidDescription validates if the description is one of the known kinds
func IsValidDescription(description string) bool {
	return description == string(DescriptionDeposit) || description == string(DescriptionWithdraw)
}
