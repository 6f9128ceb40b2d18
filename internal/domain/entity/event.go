package entity

import "time"

// EventType names a kind of ledger event
type EventType string

// Ledger event types
const (
	EventAccountCreated EventType = "account.created"
	EventFundsDeposited EventType = "funds.deposited"
	EventFundsWithdrawn EventType = "funds.withdrawn"
)

// LedgerEvent describes a state change that already happened in the ledger
type LedgerEvent struct {
	Type          EventType `json:"type"`
	Username      string    `json:"username"`
	TransactionID string    `json:"transactionId,omitempty"`
	Amount        string    `json:"amount,omitempty"`
	Balance       string    `json:"balance"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewAccountCreatedEvent builds the event emitted after account creation
func NewAccountCreatedEvent(user *User) LedgerEvent {
	return LedgerEvent{
		Type:       EventAccountCreated,
		Username:   user.Username(),
		Balance:    user.GetBalance(),
		OccurredAt: user.CreatedAt,
	}
}

// NewTransactionEvent builds the event emitted after a deposit or withdrawal
func NewTransactionEvent(username string, txn Transaction) LedgerEvent {
	eventType := EventFundsDeposited
	if txn.IsDebit() {
		eventType = EventFundsWithdrawn
	}

	return LedgerEvent{
		Type:          eventType,
		Username:      username,
		TransactionID: txn.ID,
		Amount:        txn.FormattedAmount(),
		Balance:       txn.FormattedBalance(),
		OccurredAt:    txn.Timestamp,
	}
}
