// Package storage provides the persistence adapters for the expense ledger:
// a flat JSON file (the default on-disk contract) and a SQLite database
// behind the same Store port.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"spendlog/internal/core"
)

// record is the wire form of one expense in the persisted document. The
// format carries no version marker; compatibility is by field names alone.
type record struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// JSONFileStore persists the ledger as a single JSON array of records at a
// fixed path. Every Save is a full rewrite through a temp file and rename,
// so readers never observe a half-written document.
type JSONFileStore struct {
	path string
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the configured file location.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Save writes the full ordered expense list, replacing whatever the file
// held before.
func (s *JSONFileStore) Save(_ context.Context, expenses []core.Expense) error {
	records := make([]record, len(expenses))
	for i, e := range expenses {
		records[i] = record{
			Amount:      e.Amount.Float64(),
			Category:    string(e.Category),
			Date:        e.Date.String(),
			Description: e.Description,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Load reads the persisted expense list in stored order. A missing file is
// the first-run case and yields an empty ledger; an existing file that does
// not parse fails. Categories are not checked against the current fixed set,
// so documents written with an older set still load.
func (s *JSONFileStore) Load(_ context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	expenses := make([]core.Expense, len(records))
	for i, r := range records {
		date, err := parseStoredDate(r.Date)
		if err != nil {
			return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
		}
		expenses[i] = core.Expense{
			Date:        date,
			Category:    core.Category(r.Category),
			Amount:      core.MoneyFromFloat(r.Amount),
			Description: r.Description,
		}
	}
	return expenses, nil
}

// parseStoredDate parses the YYYY-MM-DD field of a persisted record. This is
// deliberately not core.ParseDate: a bad date in the file is a persistence
// problem, not caller input.
func parseStoredDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("stored date %q: %w", s, err)
	}
	return core.Date{Time: t}, nil
}
