// Package state owns the in-memory application state: the transaction list,
// the account registry, the category lists and settings. Reads hand out
// copied snapshots; mutations build replacement slices under the lock and
// swap them whole, so a computation never observes a half-applied change.
package state

import (
	"context"
	"log/slog"
	"sync"

	"ekspence/internal/core"
)

// Store is the persistence collaborator. Save calls are fire-and-forget
// from the controller's point of view: failures are logged and the in-memory
// state stays authoritative.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	SaveTransactions(ctx context.Context, txns []core.Transaction) error
	SaveAccounts(ctx context.Context, accounts []core.Account) error
	SaveCategories(ctx context.Context, cats core.Categories) error
	SaveSettings(ctx context.Context, settings core.Settings) error
}

// Publisher notifies downstream consumers that part of the ledger changed.
type Publisher interface {
	PublishChange(ctx context.Context, scope, id string) error
}

// Snapshot is an owned copy of the full application state.
type Snapshot struct {
	Transactions []core.Transaction
	Accounts     []core.Account
	Categories   core.Categories
	Settings     core.Settings
}

type App struct {
	mu       sync.RWMutex
	txns     []core.Transaction
	accounts []core.Account
	cats     core.Categories
	settings core.Settings

	// saveMu serializes whole-table saves. Each save re-reads the current
	// state under the lock, so overlapping mutations cannot write their
	// tables out of order and leave the store one change behind.
	saveMu sync.Mutex

	store     Store
	publisher Publisher
}

func New(store Store, publisher Publisher) *App {
	return &App{
		store:     store,
		publisher: publisher,
		cats:      core.DefaultCategories(),
	}
}

// Load replaces the in-memory state with the stored one. Any load failure
// falls back to the default dataset instead of propagating: worst case the
// app starts empty, never broken.
func (a *App) Load(ctx context.Context) {
	if a.store == nil {
		return
	}
	snap, err := a.store.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load state, starting from defaults", "error", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.txns = snap.Transactions
	a.accounts = snap.Accounts
	if len(snap.Categories.Expense) > 0 || len(snap.Categories.Income) > 0 {
		a.cats = snap.Categories
	}
	a.settings = snap.Settings
}

// Snapshot returns a copy of the current state. Callers may hold it across
// subsequent mutations without seeing them.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{
		Transactions: copyTransactions(a.txns),
		Accounts:     copyAccounts(a.accounts),
		Categories:   copyCategories(a.cats),
		Settings:     a.settings,
	}
}

func (a *App) Settings() core.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// SetSpendingLimit stores the override; zero reverts to the derived limit.
func (a *App) SetSpendingLimit(ctx context.Context, limit float64) error {
	if limit < 0 {
		return core.ErrInvalidAmount
	}
	a.mu.Lock()
	a.settings.SpendingLimit = limit
	a.mu.Unlock()

	a.persistSettings(ctx)
	a.publish(ctx, "settings", "")
	return nil
}

func (a *App) persistTransactions(ctx context.Context) {
	if a.store == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	a.mu.RLock()
	txns := a.txns
	a.mu.RUnlock()
	if err := a.store.SaveTransactions(ctx, txns); err != nil {
		slog.ErrorContext(ctx, "Failed to persist transactions", "error", err)
	}
}

func (a *App) persistAccounts(ctx context.Context) {
	if a.store == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	a.mu.RLock()
	accounts := a.accounts
	a.mu.RUnlock()
	if err := a.store.SaveAccounts(ctx, accounts); err != nil {
		slog.ErrorContext(ctx, "Failed to persist accounts", "error", err)
	}
}

func (a *App) persistCategories(ctx context.Context) {
	if a.store == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	a.mu.RLock()
	cats := a.cats
	a.mu.RUnlock()
	if err := a.store.SaveCategories(ctx, cats); err != nil {
		slog.ErrorContext(ctx, "Failed to persist categories", "error", err)
	}
}

func (a *App) persistSettings(ctx context.Context) {
	if a.store == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	a.mu.RLock()
	settings := a.settings
	a.mu.RUnlock()
	if err := a.store.SaveSettings(ctx, settings); err != nil {
		slog.ErrorContext(ctx, "Failed to persist settings", "error", err)
	}
}

func (a *App) publish(ctx context.Context, scope, id string) {
	if a.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping change message", "scope", scope)
		return
	}
	if err := a.publisher.PublishChange(ctx, scope, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"scope", scope, "id", id, "error", err)
		// Don't fail the operation, the change is applied locally.
	}
}

func copyTransactions(txns []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txns))
	copy(out, txns)
	return out
}

func copyAccounts(accounts []core.Account) []core.Account {
	out := make([]core.Account, len(accounts))
	copy(out, accounts)
	return out
}

func copyCategories(cats core.Categories) core.Categories {
	return core.Categories{
		Expense: append([]string(nil), cats.Expense...),
		Income:  append([]string(nil), cats.Income...),
	}
}
