// Package dispatch implements the periodic claim-and-dispatch poller.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/domain"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

// ErrTickInProgress is returned by Tick when another tick is still running.
var ErrTickInProgress = errors.New("dispatch tick already in progress")

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type reminderRepo interface {
	SelectDue(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error)
	Claim(ctx context.Context, id uuid.UUID, correlationID string) (bool, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)
	SetExternalID(ctx context.Context, id uuid.UUID, externalID string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error
	ForceFail(ctx context.Context, id uuid.UUID) (bool, error)
}

type callLogRepo interface {
	Create(ctx context.Context, l domain.CallLog) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service claims due reminders and dispatches them through a gateway.
type Service struct {
	log       *slog.Logger
	reminders reminderRepo
	callLogs  callLogRepo
	tx        txManager
	gateway   provider.Gateway
	cfg       config.SchedulerConfig
	limiter   *rate.Limiter
	now       func() time.Time

	tickMu sync.Mutex

	cronMu  sync.Mutex
	cron    *cron.Cron
	running atomic.Bool
	lastRun atomic.Pointer[time.Time]
}

// NewService creates a new dispatch service.
func NewService(
	log *slog.Logger,
	reminders reminderRepo,
	callLogs callLogRepo,
	tx txManager,
	gateway provider.Gateway,
	cfg config.SchedulerConfig,
) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	var limiter *rate.Limiter
	if cfg.DispatchRate > 0 {
		burst := max(int(cfg.DispatchRate), 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.DispatchRate), burst)
	}

	return &Service{
		log:       log.With("service", "dispatch"),
		reminders: reminders,
		callLogs:  callLogs,
		tx:        tx,
		gateway:   gateway,
		cfg:       cfg,
		limiter:   limiter,
		now:       time.Now,
	}
}

// Gateway returns the name of the gateway this service dispatches through.
func (s *Service) Gateway() string { return s.gateway.Name() }

// LastRun returns when the last tick finished, or zero if none has.
func (s *Service) LastRun() time.Time {
	if t := s.lastRun.Load(); t != nil {
		return *t
	}
	return time.Time{}
}
