// Command dispatch-once runs a single dispatch tick and exits. It is meant
// for an external cron and is safe next to a running worker: reminders are
// claimed with a conditional update, so no reminder is sent twice.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/reminder-worker/internal/adapter/postgres"
	"github.com/heartmarshall/reminder-worker/internal/app"
	"github.com/heartmarshall/reminder-worker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	a, err := app.New(cfg, logger, pool)
	if err != nil {
		logger.Error("build app", slog.String("error", err.Error()))
		os.Exit(1)
	}

	report, err := a.RunOnce(ctx, cfg.Simulated.MaxDelay+cfg.Simulated.CompletionTimeout)
	if err != nil {
		logger.Error("dispatch tick failed",
			slog.String("error", err.Error()),
			slog.Any("report", report),
		)
		os.Exit(1)
	}

	logger.Info("dispatch tick completed", slog.Any("report", report))
}
