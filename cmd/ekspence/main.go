package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	appamqp "ekspence/internal/amqp"
	"ekspence/internal/auth"
	"ekspence/internal/cli"
	apphttp "ekspence/internal/http"
	"ekspence/internal/insights"
	applog "ekspence/internal/log"
	"ekspence/internal/state"
)

func main() {
	logger, cfg := cli.Bootstrap(applog.ComponentApp)

	repo := cli.OpenRepository(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// AMQP is optional: without it mutations still apply locally, the
	// export worker just never hears about them until its periodic pass.
	var publisher state.Publisher
	amqpClient, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, change messages disabled", "error", err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	app := state.New(repo, publisher)
	app.Load(context.Background())

	gen := insights.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
	verifier := auth.NewTokenVerifier(cfg.APIToken)

	srv := apphttp.NewServer(":"+cfg.Port, app, gen, verifier, cfg.CacheTTL)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting ekspence server", "port", cfg.Port, "db_path", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
