// Package simulated implements a delivery gateway that fakes the provider:
// dispatch succeeds with a configured probability, and a final outcome is
// produced later from a gateway-owned timer queue.
package simulated

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/domain"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

// Name is the gateway name reported in logs and health.
const Name = "simulated"

// ExternalIDPrefix prefixes synthetic external ids.
const ExternalIDPrefix = "sim-"

// Option customizes a Gateway.
type Option func(g *Gateway)

// WithRand injects the random source. Tests pass a seeded generator.
func WithRand(r *rand.Rand) Option {
	return func(g *Gateway) { g.rng = r }
}

type job struct {
	timer      *time.Timer
	completion domain.SimulatedCompletion
}

// Gateway is the simulated provider.Gateway and provider.CompletionScheduler.
type Gateway struct {
	cfg  config.SimulatedConfig
	sink provider.CompletionSink
	log  *slog.Logger

	mu      sync.Mutex // guards rng, pending, nextID, closed
	rng     *rand.Rand
	pending map[uint64]*job
	nextID  uint64
	closed  bool
	wg      sync.WaitGroup
}

// New creates a simulated gateway that reports final outcomes to sink.
func New(cfg config.SimulatedConfig, sink provider.CompletionSink, logger *slog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		cfg:     cfg,
		sink:    sink,
		log:     logger.With("adapter", Name),
		pending: make(map[uint64]*job),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Name implements provider.Gateway.
func (g *Gateway) Name() string { return Name }

// AttemptDelivery succeeds with probability DispatchSuccessRate.
func (g *Gateway) AttemptDelivery(ctx context.Context, d provider.Delivery) provider.Outcome {
	if err := ctx.Err(); err != nil {
		return provider.Failure(err.Error())
	}

	externalID := ExternalIDPrefix + d.CorrelationID

	g.mu.Lock()
	ok := g.rng.Float64() < g.cfg.DispatchSuccessRate
	g.mu.Unlock()

	if !ok {
		g.log.WarnContext(ctx, "simulated dispatch failed", slog.String("correlation_id", d.CorrelationID))
		return provider.Failure("simulated dispatch failure")
	}

	g.log.InfoContext(ctx, "simulated dispatch accepted",
		slog.String("correlation_id", d.CorrelationID),
		slog.String("external_id", externalID),
	)
	return provider.Outcome{ExternalID: externalID, ProviderStatus: "pending", Success: true}
}

// ScheduleCompletion queues the final outcome for a dispatched reminder.
// After a random delay in [MinDelay, MaxDelay] the outcome is picked with
// probability CompletionSuccessRate and handed to the sink.
func (g *Gateway) ScheduleCompletion(reminderID uuid.UUID, externalID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		g.log.Warn("completion not scheduled, gateway is shut down", slog.String("reminder_id", reminderID.String()))
		return
	}

	delay := g.cfg.MinDelay
	if span := g.cfg.MaxDelay - g.cfg.MinDelay; span > 0 {
		delay += time.Duration(g.rng.Int64N(int64(span) + 1))
	}
	c := domain.SimulatedCompletion{
		ReminderID: reminderID,
		ExternalID: externalID,
		Success:    g.rng.Float64() < g.cfg.CompletionSuccessRate,
		Duration:   time.Duration(10+g.rng.IntN(21)) * time.Second,
	}

	id := g.nextID
	g.nextID++

	g.wg.Add(1)
	j := &job{completion: c}
	j.timer = time.AfterFunc(delay, func() { g.fire(id) })
	g.pending[id] = j

	g.log.Debug("completion scheduled",
		slog.String("reminder_id", reminderID.String()),
		slog.Duration("delay", delay),
	)
}

// Pending returns the number of queued completions that have not fired.
func (g *Gateway) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *Gateway) fire(id uint64) {
	g.mu.Lock()
	j, ok := g.pending[id]
	if ok {
		delete(g.pending, id)
	}
	g.mu.Unlock()
	if !ok {
		// cancelled by Shutdown
		return
	}
	defer g.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), g.cfg.CompletionTimeout)
	defer cancel()

	c := j.completion
	if err := g.sink.CompleteSimulated(ctx, c); err != nil {
		g.log.ErrorContext(ctx, "simulated completion failed",
			slog.String("reminder_id", c.ReminderID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	g.log.InfoContext(ctx, "simulated completion delivered",
		slog.String("reminder_id", c.ReminderID.String()),
		slog.Bool("success", c.Success),
	)
}

// Shutdown stops timers that have not fired and waits for running jobs
// until ctx is done.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	g.closed = true
	cancelled := 0
	for id, j := range g.pending {
		if j.timer.Stop() {
			delete(g.pending, id)
			g.wg.Done()
			cancelled++
			g.log.WarnContext(ctx, "simulated completion cancelled",
				slog.String("reminder_id", j.completion.ReminderID.String()),
			)
		}
	}
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		g.log.InfoContext(ctx, "simulated gateway stopped", slog.Int("cancelled", cancelled))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
