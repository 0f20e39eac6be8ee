// Package memory is an in-memory export destination, used in tests and as a
// stand-in when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"ekspence/internal/core"
	ports "ekspence/internal/sheets"
)

type Exporter struct {
	mu       sync.Mutex
	rows     []core.Transaction
	replaces int
}

var _ ports.TransactionExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{}
}

// ReplaceTransactions stores an owned copy of the exported snapshot.
func (e *Exporter) ReplaceTransactions(_ context.Context, txns []core.Transaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = append([]core.Transaction(nil), txns...)
	e.replaces++
	return nil
}

// Rows returns a copy of the last exported snapshot.
func (e *Exporter) Rows() []core.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.Transaction(nil), e.rows...)
}

// Replaces reports how many exports have run.
func (e *Exporter) Replaces() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replaces
}
