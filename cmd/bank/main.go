package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/command-line-bank/internal/app"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/console"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Logs go to stderr and stay quiet below warn so they don't interleave with the menus
	level := coreport.ParseLogLevel(cfg.Logger.Level)
	if level < coreport.LogLevelWarn {
		level = coreport.LogLevelWarn
	}
	appLogger := logger.NewZapLoggerWithOutput(cfg.Logger.IsJSON(), os.Stderr, level)

	bankApp, err := app.New(cfg, appLogger, timeProvider.NewRealTimeProvider())
	if err != nil {
		return err
	}
	defer bankApp.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- console.New(bankApp.Bank, cfg.Bank.Name, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// The console may be blocked reading stdin; leave it behind
		fmt.Fprintln(os.Stdout, "\nThank you for visiting!")
		return nil
	}
}
