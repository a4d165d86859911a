package storage

import (
	"context"

	"spendlog/internal/core"
)

// Store is the port for ledger persistence. Implementations are stateless
// transforms between the in-memory expense list and their backing medium:
// Save replaces the whole persisted sequence with exactly the records passed
// in, Load returns the persisted sequence in its stored order.
type Store interface {
	Save(ctx context.Context, expenses []core.Expense) error
	Load(ctx context.Context) ([]core.Expense, error)
}
