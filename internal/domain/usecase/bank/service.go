package bank

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/ledger"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
)

// Service ties the ledger to validation, logging and event delivery
type Service struct {
	ledger     *ledger.Ledger
	validator  *AccountValidator
	dispatcher *EventDispatcher
	logger     coreport.Logger
}

var _ usecase.BankUseCase = (*Service)(nil)

// NewBankService creates a new bank service
func NewBankService(
	l *ledger.Ledger,
	validator *AccountValidator,
	dispatcher *EventDispatcher,
	logger coreport.Logger,
) *Service {
	if l == nil || validator == nil || dispatcher == nil || logger == nil {
		panic("bank service dependencies cannot be nil")
	}

	return &Service{
		ledger:     l,
		validator:  validator,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// MinPasswordLength implements usecase.BankUseCase
func (s *Service) MinPasswordLength() int {
	return s.validator.MinPasswordLength()
}

// CheckUsername implements usecase.BankUseCase
func (s *Service) CheckUsername(_ context.Context, username string) error {
	username = NormalizeUsername(username)

	if s.ledger.UserExists(username) {
		return errs.ErrUsernameTaken
	}
	if !s.ledger.IsUsernameValid(username) {
		return errs.ErrInvalidUsername
	}
	return nil
}

// CreateAccount implements usecase.BankUseCase
func (s *Service) CreateAccount(ctx context.Context, req usecase.CreateAccountRequest) (*entity.User, error) {
	req.Username = NormalizeUsername(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if s.ledger.UserExists(req.Username) {
		return nil, errs.ErrUsernameTaken
	}
	if err := s.validator.ValidateCreateAccount(req); err != nil {
		s.logger.Debug("Account request rejected", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	user, err := s.ledger.CreateAccount(req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errs.IsAccountCreationError(err) {
			return nil, err
		}
		s.logger.Error("Failed to create account", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Account created", map[string]any{
		"username":    user.Username(),
		"total_users": s.ledger.Count(),
	})
	s.dispatcher.Dispatch(ctx, entity.NewAccountCreatedEvent(user))

	return user, nil
}

// Login implements usecase.BankUseCase
func (s *Service) Login(_ context.Context, username, password string) (*entity.User, error) {
	username = NormalizeUsername(username)

	user, ok := s.ledger.Login(username, password)
	if !ok {
		s.logger.Warn("Login failed", map[string]any{
			"username": username,
		})
		return nil, errs.ErrInvalidCredentials
	}

	s.logger.Debug("Login succeeded", map[string]any{
		"username": username,
	})
	return user, nil
}

// Deposit implements usecase.BankUseCase
func (s *Service) Deposit(ctx context.Context, user *entity.User, amountText string) (*usecase.TransactionResult, error) {
	txn, err := s.ledger.Deposit(user, amountText)
	return s.finishTransaction(ctx, user, txn, err)
}

// Withdraw implements usecase.BankUseCase
func (s *Service) Withdraw(ctx context.Context, user *entity.User, amountText string) (*usecase.TransactionResult, error) {
	txn, err := s.ledger.Withdraw(user, amountText)
	return s.finishTransaction(ctx, user, txn, err)
}

// finishTransaction logs the outcome and emits the event for an accepted transaction
func (s *Service) finishTransaction(
	ctx context.Context,
	user *entity.User,
	txn entity.Transaction,
	err error,
) (*usecase.TransactionResult, error) {
	if err != nil {
		fields := errs.LogFields(err)
		fields["username"] = user.Username()
		s.logger.Warn("Transaction rejected", fields)
		return nil, err
	}

	s.logger.Info("Transaction processed", map[string]any{
		"username":       user.Username(),
		"transaction_id": txn.ID,
		"description":    string(txn.Description),
		"amount":         txn.FormattedAmount(),
		"balance":        txn.FormattedBalance(),
	})
	s.dispatcher.Dispatch(ctx, entity.NewTransactionEvent(user.Username(), txn))

	return &usecase.TransactionResult{
		Transaction: txn,
		Balance:     txn.FormattedBalance(),
	}, nil
}

// GetStatement implements usecase.BankUseCase
func (s *Service) GetStatement(_ context.Context, user *entity.User) *usecase.Statement {
	history := user.History()

	lines := make([]usecase.StatementLine, 0, len(history))
	for _, txn := range history {
		lines = append(lines, usecase.StatementLine{
			TransactionID: txn.ID,
			Date:          txn.Timestamp,
			Description:   string(txn.Description),
			Amount:        txn.FormattedAmount(),
			Balance:       txn.FormattedBalance(),
		})
	}

	return &usecase.Statement{
		Username:  user.Username(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Balance:   user.GetBalance(),
		Lines:     lines,
	}
}

// Shutdown drains pending events
func (s *Service) Shutdown() {
	s.dispatcher.Shutdown()
}

// IsClientError reports whether err is caused by caller input rather than the service
func IsClientError(err error) bool {
	return errs.IsAmountError(err) ||
		errs.IsAccountCreationError(err) ||
		errors.Is(err, errs.ErrInsufficientFunds) ||
		errors.Is(err, errs.ErrOverflow) ||
		errors.Is(err, errs.ErrInvalidCredentials)
}
