package simulated

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/domain"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

type sinkFunc func(ctx context.Context, c domain.SimulatedCompletion) error

func (f sinkFunc) CompleteSimulated(ctx context.Context, c domain.SimulatedCompletion) error {
	return f(ctx, c)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.SimulatedConfig {
	return config.SimulatedConfig{
		DispatchSuccessRate:   0.9,
		CompletionSuccessRate: 0.95,
		MinDelay:              10 * time.Millisecond,
		MaxDelay:              20 * time.Millisecond,
		CompletionTimeout:     time.Second,
	}
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func TestGateway_AttemptDelivery_SuccessRate(t *testing.T) {
	t.Parallel()

	const trials = 1000
	for _, p := range []float64{0.9, 0.5, 0.2} {
		cfg := testConfig()
		cfg.DispatchSuccessRate = p
		g := New(cfg, nil, newTestLogger(), seeded(42))

		successes := 0
		for range trials {
			out := g.AttemptDelivery(context.Background(), provider.Delivery{CorrelationID: uuid.NewString(), Message: "m", Destination: "+1"})
			if out.Success {
				successes++
			}
		}

		rate := float64(successes) / trials
		assert.LessOrEqual(t, math.Abs(rate-p), 0.05, "p=%v observed=%v", p, rate)
	}
}

func TestGateway_AttemptDelivery_Outcomes(t *testing.T) {
	t.Parallel()

	d := provider.Delivery{Destination: "+15550100", Message: "water plants", CorrelationID: "abc"}

	cfg := testConfig()
	cfg.DispatchSuccessRate = 1
	out := New(cfg, nil, newTestLogger()).AttemptDelivery(context.Background(), d)
	require.True(t, out.Success)
	assert.Equal(t, "sim-abc", out.ExternalID)
	assert.Equal(t, "pending", out.ProviderStatus)

	cfg.DispatchSuccessRate = 0
	out = New(cfg, nil, newTestLogger()).AttemptDelivery(context.Background(), d)
	require.False(t, out.Success)
	assert.Equal(t, "simulated dispatch failure", out.ErrorMessage)
	assert.Empty(t, out.ExternalID)
}

func TestGateway_AttemptDelivery_CancelledContext(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DispatchSuccessRate = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := New(cfg, nil, newTestLogger()).AttemptDelivery(ctx, provider.Delivery{CorrelationID: "x"})
	assert.False(t, out.Success)
}

func TestGateway_ScheduleCompletion_DeliversToSink(t *testing.T) {
	t.Parallel()

	got := make(chan domain.SimulatedCompletion, 1)
	sink := sinkFunc(func(ctx context.Context, c domain.SimulatedCompletion) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("completion context must carry its own timeout")
		}
		got <- c
		return nil
	})

	cfg := testConfig()
	cfg.CompletionSuccessRate = 1
	g := New(cfg, sink, newTestLogger(), seeded(7))

	reminderID := uuid.New()
	g.ScheduleCompletion(reminderID, "sim-"+reminderID.String())
	assert.Equal(t, 1, g.Pending())

	select {
	case c := <-got:
		assert.Equal(t, reminderID, c.ReminderID)
		assert.Equal(t, "sim-"+reminderID.String(), c.ExternalID)
		assert.True(t, c.Success)
		assert.GreaterOrEqual(t, c.Duration, 10*time.Second)
		assert.LessOrEqual(t, c.Duration, 30*time.Second)
	case <-time.After(2 * time.Second):
		t.Fatal("completion was not delivered")
	}

	require.NoError(t, g.Shutdown(context.Background()))
	assert.Equal(t, 0, g.Pending())
}

func TestGateway_ScheduleCompletion_SuccessRate(t *testing.T) {
	t.Parallel()

	const trials = 1000
	var delivered, successes atomic.Int64
	sink := sinkFunc(func(_ context.Context, c domain.SimulatedCompletion) error {
		if c.Success {
			successes.Add(1)
		}
		delivered.Add(1)
		return nil
	})

	cfg := testConfig()
	cfg.MinDelay, cfg.MaxDelay = 0, time.Millisecond
	g := New(cfg, sink, newTestLogger(), seeded(99))

	for range trials {
		g.ScheduleCompletion(uuid.New(), "sim-rate")
	}

	require.Eventually(t, func() bool { return delivered.Load() == trials }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, g.Shutdown(context.Background()))

	rate := float64(successes.Load()) / trials
	assert.LessOrEqual(t, math.Abs(rate-cfg.CompletionSuccessRate), 0.05,
		"p=%v observed=%v", cfg.CompletionSuccessRate, rate)
}

func TestGateway_ScheduleCompletion_FailureOutcome(t *testing.T) {
	t.Parallel()

	got := make(chan domain.SimulatedCompletion, 1)
	cfg := testConfig()
	cfg.CompletionSuccessRate = 0
	g := New(cfg, sinkFunc(func(_ context.Context, c domain.SimulatedCompletion) error {
		got <- c
		return nil
	}), newTestLogger())

	g.ScheduleCompletion(uuid.New(), "sim-x")

	select {
	case c := <-got:
		assert.False(t, c.Success)
	case <-time.After(2 * time.Second):
		t.Fatal("completion was not delivered")
	}
}

func TestGateway_Shutdown_CancelsPendingTimers(t *testing.T) {
	t.Parallel()

	called := make(chan struct{}, 1)
	cfg := testConfig()
	cfg.MinDelay, cfg.MaxDelay = time.Hour, time.Hour
	g := New(cfg, sinkFunc(func(context.Context, domain.SimulatedCompletion) error {
		called <- struct{}{}
		return nil
	}), newTestLogger())

	g.ScheduleCompletion(uuid.New(), "sim-a")
	g.ScheduleCompletion(uuid.New(), "sim-b")
	require.Equal(t, 2, g.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, g.Shutdown(ctx))
	assert.Equal(t, 0, g.Pending())

	// Scheduling after shutdown is a no-op.
	g.ScheduleCompletion(uuid.New(), "sim-c")
	assert.Equal(t, 0, g.Pending())

	select {
	case <-called:
		t.Fatal("sink must not be called for cancelled completions")
	default:
	}
}

func TestGateway_Shutdown_WaitsForRunningJob(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	cfg := testConfig()
	cfg.MinDelay, cfg.MaxDelay = 0, 0
	g := New(cfg, sinkFunc(func(context.Context, domain.SimulatedCompletion) error {
		close(started)
		<-release
		return nil
	}), newTestLogger())

	g.ScheduleCompletion(uuid.New(), "sim-a")
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, g.Shutdown(ctx), context.DeadlineExceeded, "shutdown must wait for the running job")

	close(release)
	require.NoError(t, g.Shutdown(context.Background()))
}
