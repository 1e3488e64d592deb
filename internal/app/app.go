package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reminder-worker/internal/adapter/postgres"
	"github.com/heartmarshall/reminder-worker/internal/adapter/postgres/calllog"
	"github.com/heartmarshall/reminder-worker/internal/adapter/postgres/reminder"
	"github.com/heartmarshall/reminder-worker/internal/adapter/provider/simulated"
	"github.com/heartmarshall/reminder-worker/internal/adapter/provider/twilio"
	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/service/dispatch"
	"github.com/heartmarshall/reminder-worker/internal/service/reconcile"
	"github.com/heartmarshall/reminder-worker/internal/transport/middleware"
	"github.com/heartmarshall/reminder-worker/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, starts the dispatch poller and the HTTP server, and blocks
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("gateway", cfg.Gateway.ProviderName()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	a, err := New(cfg, logger, pool)
	if err != nil {
		return err
	}
	return a.Serve(ctx)
}

// Migrate applies all pending embedded migrations.
func Migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(ctx, dsn, logger)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck
	return m.Up(ctx)
}

// App is the assembled worker: dispatch poller, reconciler and HTTP surface
// over one connection pool.
type App struct {
	cfg        *config.Config
	log        *slog.Logger
	dispatcher *dispatch.Service
	simulated  *simulated.Gateway
	limiter    *middleware.RateLimiter
	handler    http.Handler
}

// New wires every component over an open pool. It starts nothing.
func New(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*App, error) {
	txm := postgres.NewTxManager(pool)
	reminders := reminder.New(pool)
	callLogs := calllog.New(pool)

	reconciler := reconcile.NewService(logger, reminders, callLogs, txm)

	gateway, sim, err := NewGateway(cfg, reconciler, logger)
	if err != nil {
		return nil, err
	}

	dispatcher := dispatch.NewService(logger, reminders, callLogs, txm, gateway, cfg.Scheduler)

	limiter := middleware.NewRateLimiter(cfg.Webhook.LimiterCleanup)

	deps := rest.RouterDeps{
		Health:   rest.NewHealthHandler(pool, dispatcher, Version),
		Webhook:  rest.NewWebhookHandler(reconciler, cfg.Webhook.MaxBodyBytes, logger),
		Logger:   logger,
		Webhooks: cfg.Webhook,
		Limiter:  limiter,
	}
	if cfg.Webhook.VerifySignatures {
		v, err := twilio.NewSignatureVerifier(cfg.Twilio.AuthToken, cfg.Gateway.CallbackURL, cfg.Webhook.MaxBodyBytes)
		if err != nil {
			limiter.Stop()
			return nil, fmt.Errorf("webhook signature verifier: %w", err)
		}
		deps.Verifier = v
	}

	return &App{
		cfg:        cfg,
		log:        logger,
		dispatcher: dispatcher,
		simulated:  sim,
		limiter:    limiter,
		handler:    rest.NewRouter(deps),
	}, nil
}

// Handler returns the HTTP surface.
func (a *App) Handler() http.Handler { return a.handler }

// Serve starts the poller and the HTTP server and blocks until ctx is
// cancelled or the server fails. Shutdown stops the poller first, then
// drains HTTP, then the simulated completion queue.
func (a *App) Serve(ctx context.Context) error {
	srvCfg := a.cfg.Server
	srv := &http.Server{
		Addr:         net.JoinHostPort(srvCfg.Host, strconv.Itoa(srvCfg.Port)),
		Handler:      a.handler,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	if err := a.dispatcher.Start(runCtx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		serveErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()

	return errors.Join(serveErr, a.shutdown(shutdownCtx, srv, cancelRun))
}

func (a *App) shutdown(ctx context.Context, srv *http.Server, cancelRun context.CancelFunc) error {
	var errs []error

	// Let an in-flight tick finish before its context is cancelled.
	if err := a.dispatcher.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	cancelRun()

	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	a.limiter.Stop()

	if a.simulated != nil {
		if err := a.simulated.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("simulated gateway shutdown: %w", err))
		}
	}

	if len(errs) == 0 {
		a.log.Info("shutdown complete")
	}
	return errors.Join(errs...)
}

// RunOnce executes a single dispatch tick. With the simulated gateway it
// then waits up to drain for the completions the tick scheduled; whatever
// has not fired by then is cancelled.
func (a *App) RunOnce(ctx context.Context, drain time.Duration) (dispatch.TickReport, error) {
	defer a.limiter.Stop()

	report, err := a.dispatcher.Tick(ctx)
	if a.simulated == nil {
		return report, err
	}

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drain)
	defer cancel()

	waitIdle(dctx, a.simulated, 50*time.Millisecond)
	if serr := a.simulated.Shutdown(dctx); serr != nil {
		err = errors.Join(err, fmt.Errorf("simulated gateway shutdown: %w", serr))
	}
	return report, err
}

type pendingCounter interface {
	Pending() int
}

// waitIdle polls p until nothing is queued or ctx is done.
func waitIdle(ctx context.Context, p pendingCounter, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for p.Pending() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
