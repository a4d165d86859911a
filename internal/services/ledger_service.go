// Package services holds the ledger service: the authoritative in-memory
// expense collection and the operations the presentation layer calls.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/storage"
)

// LedgerService owns the ordered expense list for the process lifetime and
// writes it through to the injected store on every append. It assumes a
// single caller at a time; nothing here is safe for concurrent use, matching
// the one-user one-window model it serves.
type LedgerService struct {
	store    storage.Store
	expenses []core.Expense
	now      func() time.Time
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithClock overrides the clock used for month/year defaulting in
// MonthlySummary. Tests use this to pin "the current month".
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService loads the persisted ledger from store and returns a
// service holding it. A load failure is returned as-is; whether to retry,
// abort or start empty is the caller's policy, not ours.
func NewLedgerService(ctx context.Context, store storage.Store, opts ...Option) (*LedgerService, error) {
	expenses, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	s := &LedgerService{
		store:    store,
		expenses: expenses,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add validates the raw inputs, appends the new expense and persists the
// full ledger. All three inputs arrive as text exactly as the caller typed
// them. Validation happens before any mutation, and the persisted copy is
// written before the in-memory one is replaced, so a failed save leaves both
// memory and disk exactly as they were.
func (s *LedgerService) Add(ctx context.Context, amount, category, date, description string) (core.Expense, error) {
	money, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, err
	}

	cat := core.Category(category)
	if err := cat.Validate(); err != nil {
		return core.Expense{}, err
	}

	day, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, err
	}

	expense := core.Expense{
		Date:        day,
		Category:    cat,
		Amount:      money,
		Description: description,
	}

	next := make([]core.Expense, len(s.expenses), len(s.expenses)+1)
	copy(next, s.expenses)
	next = append(next, expense)

	if err := s.store.Save(ctx, next); err != nil {
		return core.Expense{}, fmt.Errorf("save ledger: %w", err)
	}
	s.expenses = next

	slog.InfoContext(ctx, "Expense recorded",
		"category", string(cat),
		"amount_cents", money.Cents,
		"date", day.String())

	return expense, nil
}

// Filter narrows a Query. Zero values mean "no constraint on this
// dimension".
type Filter struct {
	Category core.Category // empty selects all categories
	Month    int           // 0 selects all months
	Year     int           // 0 selects all years
}

func (f Filter) matches(e core.Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Month != 0 && e.Date.Month() != f.Month {
		return false
	}
	if f.Year != 0 && e.Date.Year() != f.Year {
		return false
	}
	return true
}

// Query returns the expenses matching every set filter dimension, in
// insertion order. The result is a fresh slice; the ledger is not touched.
func (s *LedgerService) Query(filter Filter) []core.Expense {
	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// MonthlySummary aggregates the expenses whose date falls in the given
// month and year. Zero month or year defaults to the current one.
func (s *LedgerService) MonthlySummary(month, year int) core.MonthSummary {
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	summary := core.MonthSummary{
		Year:       year,
		Month:      month,
		ByCategory: make(map[core.Category]core.Money),
	}
	for _, e := range s.expenses {
		if e.Date.Month() != month || e.Date.Year() != year {
			continue
		}
		summary.Total.Cents += e.Amount.Cents
		byCat := summary.ByCategory[e.Category]
		byCat.Cents += e.Amount.Cents
		summary.ByCategory[e.Category] = byCat
		summary.Count++
	}
	return summary
}

// Categories returns the fixed category set for populating selection
// controls.
func (s *LedgerService) Categories() []core.Category {
	return core.Categories()
}
