package backend

import (
	"context"
	"path/filepath"
	"testing"

	"spendlog/internal/config"
	"spendlog/internal/storage"
)

func TestKindIsValid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.IsValid() {
			t.Fatalf("%s expected valid", k)
		}
	}
	for _, k := range []Kind{"", "memory", "sheets"} {
		if k.IsValid() {
			t.Fatalf("%q expected invalid", k)
		}
	}
}

func TestFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		DataBackend:    "file",
		LedgerFilePath: "./data/expenses.json",
		SQLiteDBPath:   "./data/spendlog.db",
	}
	cfg, err := FromAppConfig(appCfg)
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Kind != FileBackend {
		t.Fatalf("expected file kind, got %s", cfg.Kind)
	}
	if cfg.LedgerFilePath != appCfg.LedgerFilePath || cfg.SQLiteDBPath != appCfg.SQLiteDBPath {
		t.Fatalf("paths not carried over: %+v", cfg)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"file with path", Config{Kind: FileBackend, LedgerFilePath: "x.json"}, false},
		{"file without path", Config{Kind: FileBackend}, true},
		{"sqlite with path", Config{Kind: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Kind: SQLiteBackend}, true},
		{"unknown kind", Config{Kind: "sheets"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
		})
	}
}

func TestCreateFileStore(t *testing.T) {
	factory := NewFactory(nil)
	path := filepath.Join(t.TempDir(), "expenses.json")

	result, err := factory.CreateStore(Config{Kind: FileBackend, LedgerFilePath: path})
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("expected a store")
	}
	if result.Cleanup != nil {
		t.Fatalf("file store needs no cleanup")
	}

	fileStore, ok := result.Store.(*storage.JSONFileStore)
	if !ok {
		t.Fatalf("expected *storage.JSONFileStore, got %T", result.Store)
	}
	if fileStore.Path() != path {
		t.Fatalf("expected path %s, got %s", path, fileStore.Path())
	}
}

func TestCreateSQLiteStore(t *testing.T) {
	factory := NewFactory(nil)
	path := filepath.Join(t.TempDir(), "ledger.db")

	result, err := factory.CreateStore(Config{Kind: SQLiteBackend, SQLiteDBPath: path})
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	if result.Cleanup == nil {
		t.Fatalf("sqlite store must expose a cleanup")
	}
	defer result.Cleanup()

	got, err := result.Store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %v", got)
	}
}

func TestCreateStoreRejectsInvalidConfig(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateStore(Config{Kind: "sheets"}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := factory.CreateStore(Config{Kind: FileBackend}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
