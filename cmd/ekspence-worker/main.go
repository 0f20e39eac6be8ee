package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	appamqp "ekspence/internal/amqp"
	"ekspence/internal/cli"
	applog "ekspence/internal/log"
	ports "ekspence/internal/sheets"
	gsheet "ekspence/internal/sheets/google"
	mem "ekspence/internal/sheets/memory"
	"ekspence/internal/worker"
)

func main() {
	logger, cfg := cli.Bootstrap(applog.ComponentWorker)
	logger.Info("Starting ekspence-worker")

	repo := cli.OpenRepository(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	var exporter ports.TransactionExporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets export enabled",
			"spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		exporter = mem.New()
		logger.Warn("No GOOGLE_SPREADSHEET_ID configured, exporting to memory only")
	}

	amqpClient, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	w := worker.NewExportWorker(repo, exporter, cfg.ExportInterval)

	// Converge once before consuming, covering anything missed while down
	if err := w.StartupExport(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
		// Keep going, the periodic pass will retry
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeChanges(gctx, func(msg *appamqp.ChangeMessage) error {
			return w.HandleChange(gctx, msg)
		})
	})
	g.Go(func() error {
		return w.RunPeriodic(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
