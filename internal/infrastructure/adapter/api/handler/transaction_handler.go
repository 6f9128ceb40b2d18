package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles money movement for the authenticated user
type TransactionHandler struct {
	bank   usecase.BankUseCase
	logger coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(bank usecase.BankUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		bank:   bank,
		logger: logger,
	}
}

type moveFunc func(ctx context.Context, user *entity.User, amountText string) (*usecase.TransactionResult, error)

// Deposit handles the POST /account/deposit endpoint
func (h *TransactionHandler) Deposit(c *gin.Context) {
	h.move(c, h.bank.Deposit)
}

// Withdraw handles the POST /account/withdraw endpoint
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	h.move(c, h.bank.Withdraw)
}

func (h *TransactionHandler) move(c *gin.Context, fn moveFunc) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, h.logger, domainerr.ErrInvalidCredentials)
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := fn(c.Request.Context(), user, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(result.Transaction))
}

// GetTransactions handles the GET /account/transactions endpoint
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, h.logger, domainerr.ErrInvalidCredentials)
		return
	}

	statement := h.bank.GetStatement(c.Request.Context(), user)

	resp := dto.StatementResponse{
		Username:     statement.Username,
		FullName:     statement.FirstName + " " + statement.LastName,
		Balance:      statement.Balance,
		Transactions: make([]dto.TransactionResponse, 0, len(statement.Lines)),
	}
	for _, line := range statement.Lines {
		resp.Transactions = append(resp.Transactions, dto.TransactionResponse{
			TransactionID: line.TransactionID,
			Description:   line.Description,
			Amount:        line.Amount,
			Balance:       line.Balance,
			Timestamp:     line.Date,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func toTransactionResponse(txn entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		TransactionID: txn.ID,
		Description:   string(txn.Description),
		Amount:        txn.FormattedAmount(),
		Balance:       txn.FormattedBalance(),
		Timestamp:     txn.Timestamp,
	}
}
