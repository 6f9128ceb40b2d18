// Package app assembles the bank from configuration for the command entry points.
package app

import (
	"fmt"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/ledger"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/usecase/bank"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/hasher"
	messagingadapter "github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/messaging"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/config"
)

// App owns the bank service and the resources it was built with
type App struct {
	Bank      *bank.Service
	publisher messaging.EventPublisher
	logger    coreport.Logger
}

// New builds the ledger, hasher, event publisher and bank service described by cfg
func New(cfg *config.Config, logger coreport.Logger, timeProvider coreport.TimeProvider) (*App, error) {
	passwordHasher, err := hasher.New(cfg.Security.PasswordHasher, cfg.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	l, err := ledger.NewLedger(passwordHasher, timeProvider)
	if err != nil {
		return nil, err
	}

	publisher, err := messagingadapter.New(messagingadapter.Options{
		Enabled:        cfg.Messaging.Enabled,
		URL:            cfg.Messaging.NatsURL,
		SubjectPrefix:  cfg.Messaging.SubjectPrefix,
		ConnectTimeout: cfg.Messaging.ConnectTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}

	dispatcher := bank.NewEventDispatcher(logger, publisher, cfg.Messaging.QueueSize)
	service := bank.NewBankService(l, bank.NewAccountValidator(cfg.Security.MinPasswordLength), dispatcher, logger)

	logger.Info("Bank initialized", map[string]any{
		"bank":            cfg.Bank.Name,
		"password_hasher": cfg.Security.PasswordHasher,
		"messaging":       cfg.Messaging.Enabled,
	})

	return &App{
		Bank:      service,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Close drains pending events, then closes the publisher and flushes logs
func (a *App) Close() {
	a.Bank.Shutdown()

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("Failed to close event publisher", map[string]any{
			"error": err.Error(),
		})
	}
	_ = a.logger.Flush()
}
