// Package worker mirrors the persisted ledger into the configured export
// destination.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ekspence/internal/amqp"
	"ekspence/internal/sheets"
	"ekspence/internal/state"
)

// SnapshotLoader reads the current persisted state.
type SnapshotLoader interface {
	Load(ctx context.Context) (state.Snapshot, error)
}

// ExportWorker reacts to change messages by re-exporting the whole ledger.
// Exports are idempotent, so replayed or duplicated messages are harmless.
type ExportWorker struct {
	loader   SnapshotLoader
	exporter sheets.TransactionExporter
	interval time.Duration
}

func NewExportWorker(loader SnapshotLoader, exporter sheets.TransactionExporter, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		loader:   loader,
		exporter: exporter,
		interval: interval,
	}
}

// HandleChange processes a single change message from the queue.
func (w *ExportWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	slog.InfoContext(ctx, "Processing change message",
		"scope", msg.Scope,
		"entity_id", msg.EntityID)
	return w.Export(ctx)
}

// Export reads the persisted snapshot and replaces the export destination
// with it.
func (w *ExportWorker) Export(ctx context.Context) error {
	start := time.Now()

	snap, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if err := w.exporter.ReplaceTransactions(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("export transactions: %w", err)
	}

	slog.InfoContext(ctx, "Ledger export completed",
		"rows", len(snap.Transactions),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// StartupExport converges the destination once at boot, recovering from any
// messages missed while the worker was down.
func (w *ExportWorker) StartupExport(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup export")
	return w.Export(ctx)
}

// RunPeriodic re-exports on a timer as a backstop for lost messages. It
// returns when the context is canceled.
func (w *ExportWorker) RunPeriodic(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
