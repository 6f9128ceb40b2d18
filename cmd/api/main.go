package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/command-line-bank/internal/app"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	isProduction := cfg.Environment == config.Production
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Logger.IsJSON() || isProduction)
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))

	tp := timeProvider.NewRealTimeProvider()

	bankApp, err := app.New(cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to initialize bank", map[string]any{
			"error": err.Error(),
		})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	defer bankApp.Close()

	router := routes.NewRouter(bankApp.Bank, appLogger, tp, cfg.Bank.Name)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", map[string]any{
			"error": err.Error(),
		})
		bankApp.Close()
		os.Exit(1)
	}

	appLogger.Info("Server exited gracefully", nil)
}
