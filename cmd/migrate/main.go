// Command migrate applies the embedded database migrations.
//
// Usage: migrate [up|down|status]   (default: up)
package main

import (
	"context"
	"fmt"
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

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cmd, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", cmd), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd, dsn string, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(ctx, dsn, logger)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck

	switch cmd {
	case "up":
		return m.Up(ctx)
	case "down":
		return m.Down(ctx)
	case "status":
		return m.Status(ctx)
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", cmd)
	}
}
