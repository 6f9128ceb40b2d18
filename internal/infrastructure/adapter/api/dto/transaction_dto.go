package dto

import "time"

// AmountRequest represents the API request for a deposit or withdrawal.
// Amounts travel as strings so no precision is lost in JSON.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// TransactionResponse represents the API response for an accepted transaction
type TransactionResponse struct {
	TransactionID string    `json:"transactionId"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Balance       string    `json:"balance"`
	Timestamp     time.Time `json:"timestamp"`
}

// StatementResponse represents the account's balance and history
type StatementResponse struct {
	Username     string                `json:"username"`
	FullName     string                `json:"fullName"`
	Balance      string                `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}
