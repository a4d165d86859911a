// Package backend selects and builds the persistence store the ledger runs
// on: the flat JSON file (the default) or a local SQLite database.
package backend

import (
	"fmt"

	"spendlog/internal/config"
	"spendlog/internal/storage"
)

// Kind identifies a persistence backend.
type Kind string

const (
	FileBackend   Kind = "file"
	SQLiteBackend Kind = "sqlite"
)

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the backend kind is valid
func (k Kind) IsValid() bool {
	switch k {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Kinds returns all valid backend kinds
func Kinds() []Kind {
	return []Kind{FileBackend, SQLiteBackend}
}

// CleanupFunc releases resources held by a store.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function
type Result struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// Config holds configuration for store creation
type Config struct {
	Kind Kind

	// File backend specific
	LedgerFilePath string

	// SQLite specific
	SQLiteDBPath string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	kind := Kind(appConfig.DataBackend)
	if !kind.IsValid() {
		return Config{}, fmt.Errorf("invalid backend kind in config: %s", appConfig.DataBackend)
	}

	return Config{
		Kind:           kind,
		LedgerFilePath: appConfig.LedgerFilePath,
		SQLiteDBPath:   appConfig.SQLiteDBPath,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("invalid backend kind: %s", c.Kind)
	}

	switch c.Kind {
	case FileBackend:
		if c.LedgerFilePath == "" {
			return fmt.Errorf("ledger file path is required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	}

	return nil
}
