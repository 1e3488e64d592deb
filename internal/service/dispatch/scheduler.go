package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Start schedules Tick every configured interval. Ticks never overlap:
// cron's SkipIfStillRunning drops a firing while the previous one runs.
// ctx bounds every tick; cancel it or call Stop to halt the poller.
func (s *Service) Start(ctx context.Context) error {
	s.cronMu.Lock()
	defer s.cronMu.Unlock()

	if s.cron != nil {
		return errors.New("dispatch scheduler already started")
	}

	logger := cronLogger{log: s.log}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	spec := "@every " + s.cfg.Interval.String()
	if _, err := c.AddFunc(spec, func() { s.scheduledTick(ctx) }); err != nil {
		return fmt.Errorf("schedule dispatch tick %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.running.Store(true)

	s.log.InfoContext(ctx, "dispatch scheduler started",
		slog.Duration("interval", s.cfg.Interval),
		slog.Int("batch_size", s.cfg.BatchSize),
		slog.Int("workers", s.cfg.Workers),
		slog.String("gateway", s.gateway.Name()),
	)
	return nil
}

// Stop halts the poller and waits for a running tick to finish or ctx to
// expire, whichever comes first.
func (s *Service) Stop(ctx context.Context) error {
	s.cronMu.Lock()
	c := s.cron
	s.cron = nil
	s.cronMu.Unlock()

	if c == nil {
		return nil
	}
	s.running.Store(false)

	done := c.Stop()
	select {
	case <-done.Done():
		s.log.InfoContext(ctx, "dispatch scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop dispatch scheduler: %w", ctx.Err())
	}
}

// Running reports whether the poller is scheduled.
func (s *Service) Running() bool {
	return s.running.Load()
}

func (s *Service) scheduledTick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.Tick(ctx); err != nil {
		if errors.Is(err, ErrTickInProgress) {
			s.log.DebugContext(ctx, "tick skipped, previous tick still running")
			return
		}
		s.log.ErrorContext(ctx, "dispatch tick failed", slog.String("error", err.Error()))
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
