package state

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ekspence/internal/core"
)

// AddTransaction validates, fills defaults and appends. The stored ID is
// generated here, never taken from the caller.
func (a *App) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	a.mu.Lock()
	tx.ID = uuid.NewString()
	tx = tx.WithDefaultDescription(a.cats.Income)
	if err := tx.Validate(); err != nil {
		a.mu.Unlock()
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	next := make([]core.Transaction, 0, len(a.txns)+1)
	next = append(next, a.txns...)
	next = append(next, tx)
	a.txns = next
	a.mu.Unlock()

	a.persistTransactions(ctx)
	a.publish(ctx, "transaction", tx.ID)
	return tx, nil
}

// UpdateTransaction replaces the record with the given ID wholesale.
func (a *App) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	a.mu.Lock()
	tx = tx.WithDefaultDescription(a.cats.Income)
	if err := tx.Validate(); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("update transaction: %w", err)
	}

	idx := -1
	for i, t := range a.txns {
		if t.ID == tx.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("update transaction %s: %w", tx.ID, core.ErrNotFound)
	}

	next := copyTransactions(a.txns)
	next[idx] = tx
	a.txns = next
	a.mu.Unlock()

	a.persistTransactions(ctx)
	a.publish(ctx, "transaction", tx.ID)
	return nil
}

func (a *App) DeleteTransaction(ctx context.Context, id string) error {
	a.mu.Lock()
	next := make([]core.Transaction, 0, len(a.txns))
	found := false
	for _, t := range a.txns {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		a.mu.Unlock()
		return fmt.Errorf("delete transaction %s: %w", id, core.ErrNotFound)
	}
	a.txns = next
	a.mu.Unlock()

	a.persistTransactions(ctx)
	a.publish(ctx, "transaction", id)
	return nil
}
