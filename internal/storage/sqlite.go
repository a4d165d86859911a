package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"spendlog/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database. Save mirrors the
// flat-file contract: the expenses table is replaced wholesale inside one
// transaction, and Load returns rows in insertion order.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	const insert = `INSERT INTO expenses (amount_cents, category, date, description) VALUES (?, ?, ?, ?)`
	for _, e := range expenses {
		if _, err := tx.ExecContext(ctx, insert,
			e.Amount.Cents, string(e.Category), e.Date.String(), e.Description); err != nil {
			return &PersistenceError{Op: "save", Path: s.path, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT amount_cents, category, date, description FROM expenses ORDER BY id`)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			cents       int64
			category    string
			dateText    string
			description string
		)
		if err := rows.Scan(&cents, &category, &dateText, &description); err != nil {
			return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
		}
		date, err := parseStoredDate(dateText)
		if err != nil {
			return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
		}
		expenses = append(expenses, core.Expense{
			Date:        date,
			Category:    core.Category(category),
			Amount:      core.Money{Cents: cents},
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return expenses, nil
}
