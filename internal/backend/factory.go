package backend

import (
	"fmt"
	"log/slog"

	"spendlog/internal/storage"
)

// Factory creates stores based on configuration
type Factory interface {
	CreateStore(config Config) (*Result, error)
}

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new store factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Kind {
	case FileBackend:
		return f.createFileStore(config)
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	default:
		return nil, fmt.Errorf("unsupported backend kind: %s", config.Kind)
	}
}

func (f *DefaultFactory) createFileStore(config Config) (*Result, error) {
	store := storage.NewJSONFileStore(config.LedgerFilePath)

	f.logger.Info("Initialized file backend", "path", config.LedgerFilePath)

	return &Result{
		Store:   store,
		Cleanup: nil, // Nothing held open between calls
	}, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}
