package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
)

func scenarioExpenses() []core.Expense {
	return []core.Expense{
		{Date: core.NewDate(2024, 3, 5), Category: core.CategoryFood, Amount: core.Money{Cents: 5000}, Description: "lunch"},
		{Date: core.NewDate(2024, 3, 10), Category: core.CategoryFood, Amount: core.Money{Cents: 2000}},
		{Date: core.NewDate(2024, 3, 1), Category: core.CategoryRent, Amount: core.Money{Cents: 10000}},
	}
}

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	want := scenarioExpenses()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d expenses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expense %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestJSONFileLoadMissingFile(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "never-written.json"))

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file is the first-run case, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %v", got)
	}
}

func TestJSONFileLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("not a json document"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewJSONFileStore(path).Load(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestJSONFileLoadBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	doc := `[{"amount": 10, "category": "Food", "date": "March 5th", "description": ""}]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewJSONFileStore(path).Load(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestJSONFileLoadDefaultsDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	doc := `[{"amount": 12.34, "category": "Food", "date": "2024-03-05"}]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := NewJSONFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Description != "" {
		t.Fatalf("expected empty description, got %v", got)
	}
	if got[0].Amount.Cents != 1234 {
		t.Fatalf("expected 1234 cents, got %d", got[0].Amount.Cents)
	}
}

func TestJSONFileLoadLegacyCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	doc := `[{"amount": 15, "category": "Groceries", "date": "2023-06-01", "description": "old file"}]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := NewJSONFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unknown categories must load, got %v", err)
	}
	if len(got) != 1 || got[0].Category != "Groceries" {
		t.Fatalf("legacy category not carried through: %v", got)
	}
}

func TestJSONFileSaveIsFullRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, scenarioExpenses()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	single := scenarioExpenses()[:1]
	if err := store.Save(ctx, single); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != single[0] {
		t.Fatalf("expected exactly the second snapshot, got %v", got)
	}
}

func TestJSONFileSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %v", got)
	}
}

func TestJSONFileWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	store := NewJSONFileStore(path)

	err := store.Save(context.Background(), []core.Expense{
		{Date: core.NewDate(2024, 3, 5), Category: core.CategoryFood, Amount: core.Money{Cents: 5050}, Description: "lunch"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 object, got %d", len(raw))
	}
	obj := raw[0]
	if len(obj) != 4 {
		t.Fatalf("expected exactly 4 fields, got %v", obj)
	}
	if amount, ok := obj["amount"].(float64); !ok || amount != 50.5 {
		t.Fatalf("amount must be the number 50.5, got %v", obj["amount"])
	}
	if obj["category"] != "Food" || obj["date"] != "2024-03-05" || obj["description"] != "lunch" {
		t.Fatalf("unexpected fields: %v", obj)
	}
}

func TestJSONFileSaveUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	// Parent "directory" is a regular file, so the write cannot succeed.
	store := NewJSONFileStore(filepath.Join(blocker, "expenses.json"))
	err := store.Save(context.Background(), scenarioExpenses())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
