// Package cli holds the boot plumbing shared by cmd/ekspence and
// cmd/ekspence-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ekspence/internal/config"
	applog "ekspence/internal/log"
	"ekspence/internal/storage"
)

// Bootstrap loads the environment, installs the default logger and returns
// the validated configuration. Exits the process on invalid configuration.
func Bootstrap(component string) (*applog.Logger, *config.Config) {
	// .env is for local development; absent in production is fine
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(component)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return logger, cfg
}

// OpenRepository opens the SQLite store, running migrations. Exits the
// process on failure: neither binary can do anything without its database.
func OpenRepository(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func SignalContext(logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()
	return ctx, cancel
}
