// Package cli provides common process initialization shared by the command
// entrypoints: logging, .env loading, config validation and ledger wiring.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"spendlog/internal/backend"
	"spendlog/internal/config"
	applog "spendlog/internal/log"
	"spendlog/internal/services"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger.
func SetupLogger(level string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(level),
		Component: "spendlog",
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitLedger builds the configured store and loads the ledger from it.
// Returns the service and a cleanup function, or exits on failure. A load
// failure at startup is fatal here: starting with an empty ledger on a
// corrupt file would silently shadow the user's data on the next save.
func InitLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*services.LedgerService, backend.CleanupFunc) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger.Logger).CreateStore(backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", backendCfg.Kind.String())
		os.Exit(1)
	}

	ledger, err := services.NewLedgerService(ctx, result.Store)
	if err != nil {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
		logger.Error("Failed to load ledger", "error", err, "backend", backendCfg.Kind.String())
		os.Exit(1)
	}

	cleanup := result.Cleanup
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return ledger, cleanup
}
