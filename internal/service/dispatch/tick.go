package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/reminder-worker/internal/domain"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

const forceFailTimeout = 5 * time.Second

// Tick runs one poll cycle: select due reminders, claim each one with a
// compare-and-set, dispatch the claimed ones and persist their outcomes.
// It returns ErrTickInProgress if another tick holds the service.
func (s *Service) Tick(ctx context.Context) (TickReport, error) {
	if !s.tickMu.TryLock() {
		return TickReport{}, ErrTickInProgress
	}
	defer s.tickMu.Unlock()

	defer func() {
		now := s.now()
		s.lastRun.Store(&now)
	}()

	var report TickReport

	due, err := s.reminders.SelectDue(ctx, s.now().UTC(), s.cfg.BatchSize)
	if err != nil {
		return report, fmt.Errorf("select due reminders: %w", err)
	}
	report.Selected = len(due)
	if len(due) == 0 {
		return report, nil
	}

	claimed := make([]domain.Reminder, 0, len(due))
	for _, r := range due {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := domain.ValidateTransition(r.Status, domain.ReminderStatusProcessing); err != nil {
			s.log.WarnContext(ctx, "rejected transition",
				slog.String("reminder_id", r.ID.String()),
				slog.String("from", r.Status.String()),
				slog.String("to", domain.ReminderStatusProcessing.String()),
			)
			report.Skipped++
			continue
		}

		ok, err := s.reminders.Claim(ctx, r.ID, r.CorrelationID())
		if err != nil {
			s.log.ErrorContext(ctx, "claim failed",
				slog.String("reminder_id", r.ID.String()),
				slog.String("error", err.Error()),
			)
			report.Skipped++
			continue
		}
		if !ok {
			s.log.DebugContext(ctx, "reminder claimed elsewhere", slog.String("reminder_id", r.ID.String()))
			report.Skipped++
			continue
		}

		corr := r.CorrelationID()
		r.Status = domain.ReminderStatusProcessing
		r.ExternalCallID = &corr
		claimed = append(claimed, r)
	}
	report.Claimed = len(claimed)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.cfg.Workers)
	for _, r := range claimed {
		g.Go(func() error {
			res := s.process(ctx, r)
			mu.Lock()
			defer mu.Unlock()
			switch res {
			case resultDispatched:
				report.Dispatched++
			case resultFailed:
				report.Failed++
			case resultFaulted:
				report.Faulted++
			}
			return nil
		})
	}
	_ = g.Wait()

	s.log.InfoContext(ctx, "tick finished", slog.Any("report", report))
	return report, nil
}

// process dispatches one claimed reminder. Errors and panics are contained
// here: the reminder is forced to failed and the batch continues.
func (s *Service) process(ctx context.Context, r domain.Reminder) (res result) {
	defer func() {
		if p := recover(); p != nil {
			s.log.ErrorContext(ctx, "panic while dispatching reminder",
				slog.String("reminder_id", r.ID.String()),
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())),
			)
			s.forceFail(ctx, r, fmt.Sprintf("panic: %v", p))
			res = resultFaulted
		}
	}()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.log.ErrorContext(ctx, "dispatch pacing interrupted",
				slog.String("reminder_id", r.ID.String()),
				slog.String("error", err.Error()),
			)
			s.forceFail(ctx, r, "dispatch pacing interrupted: "+err.Error())
			return resultFaulted
		}
	}

	outcome := s.gateway.AttemptDelivery(ctx, provider.Delivery{
		Destination:   r.PhoneNumber,
		Message:       r.Message,
		CorrelationID: r.CorrelationID(),
	})

	if outcome.Success {
		recorded, err := s.recordSuccess(ctx, r, outcome)
		if err != nil {
			s.log.ErrorContext(ctx, "persist dispatch success failed",
				slog.String("reminder_id", r.ID.String()),
				slog.String("error", err.Error()),
			)
			s.forceFail(ctx, r, "persist dispatch success: "+err.Error())
			return resultFaulted
		}
		if !recorded {
			return resultDispatched
		}
		if cs, ok := s.gateway.(provider.CompletionScheduler); ok {
			cs.ScheduleCompletion(r.ID, outcome.ExternalID)
		}
		return resultDispatched
	}

	if err := s.recordFailure(ctx, r, outcome); err != nil {
		s.log.ErrorContext(ctx, "persist dispatch failure failed",
			slog.String("reminder_id", r.ID.String()),
			slog.String("error", err.Error()),
		)
		s.forceFail(ctx, r, "persist dispatch failure: "+err.Error())
		return resultFaulted
	}
	return resultFailed
}

// recordSuccess stores the provider's external id and appends the
// "created" log row under the reminder's row lock. It reports false, writing
// nothing, when a callback already finished the reminder.
func (s *Service) recordSuccess(ctx context.Context, r domain.Reminder, o provider.Outcome) (bool, error) {
	recorded := false
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		cur, err := s.reminders.GetForUpdate(ctx, r.ID)
		if err != nil {
			return err
		}
		if cur.Status.IsTerminal() {
			s.log.InfoContext(ctx, "reminder resolved before dispatch was recorded",
				slog.String("reminder_id", r.ID.String()),
				slog.String("status", cur.Status.String()),
			)
			return nil
		}
		if err := s.reminders.SetExternalID(ctx, r.ID, o.ExternalID); err != nil {
			return err
		}

		s.log.InfoContext(ctx, "reminder dispatched",
			slog.String("reminder_id", r.ID.String()),
			slog.String("external_id", o.ExternalID),
			slog.String("provider_status", o.ProviderStatus),
		)
		if err := s.callLogs.Create(ctx, domain.NewCallLog(r.ID, o.ExternalID, domain.CallLogLabelCreated, nil, s.now())); err != nil {
			return err
		}
		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}

// recordFailure applies processing→failed and appends the "failed" log row
// under the reminder's row lock.
func (s *Service) recordFailure(ctx context.Context, r domain.Reminder, o provider.Outcome) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		cur, err := s.reminders.GetForUpdate(ctx, r.ID)
		if err != nil {
			return err
		}

		if err := domain.ValidateTransition(cur.Status, domain.ReminderStatusFailed); err != nil {
			s.log.WarnContext(ctx, "rejected transition",
				slog.String("reminder_id", r.ID.String()),
				slog.String("from", cur.Status.String()),
				slog.String("to", domain.ReminderStatusFailed.String()),
			)
		} else if err := s.reminders.UpdateStatus(ctx, r.ID, domain.ReminderStatusFailed); err != nil {
			return err
		}

		externalID := o.ExternalID
		if externalID == "" {
			externalID = domain.ExternalIDDispatchFailed
		}
		transcript := "Error: " + o.ErrorMessage

		s.log.WarnContext(ctx, "reminder dispatch failed",
			slog.String("reminder_id", r.ID.String()),
			slog.String("error", o.ErrorMessage),
		)
		return s.callLogs.Create(ctx, domain.NewCallLog(r.ID, externalID, domain.CallLogLabelFailed, &transcript, s.now()))
	})
}

// forceFail moves a reminder stuck in processing to failed and appends a
// "failed" row carrying reason in the same transaction. If that transaction
// cannot commit, the status change is retried alone so the reminder is not
// left in processing. It runs on a context detached from the tick so
// shutdown does not leave it stranded.
func (s *Service) forceFail(ctx context.Context, r domain.Reminder, reason string) {
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), forceFailTimeout)
	defer cancel()

	var changed bool
	err := s.tx.RunInTx(fctx, func(ctx context.Context) error {
		ok, err := s.reminders.ForceFail(ctx, r.ID)
		if err != nil || !ok {
			return err
		}
		externalID := domain.ExternalIDDispatchFailed
		if r.ExternalCallID != nil && *r.ExternalCallID != "" {
			externalID = *r.ExternalCallID
		}
		transcript := "Error: " + reason
		if err := s.callLogs.Create(ctx, domain.NewCallLog(r.ID, externalID, domain.CallLogLabelFailed, &transcript, s.now())); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.ErrorContext(ctx, "force fail with call log failed, retrying status change alone",
			slog.String("reminder_id", r.ID.String()),
			slog.String("error", err.Error()),
		)
		changed, err = s.reminders.ForceFail(fctx, r.ID)
	}

	switch {
	case err != nil && errors.Is(err, domain.ErrNotFound):
		s.log.WarnContext(ctx, "force fail skipped, reminder is gone", slog.String("reminder_id", r.ID.String()))
	case err != nil:
		s.log.ErrorContext(ctx, "force fail failed",
			slog.String("reminder_id", r.ID.String()),
			slog.String("error", err.Error()),
		)
	case changed:
		s.log.WarnContext(ctx, "reminder forced to failed", slog.String("reminder_id", r.ID.String()))
	default:
		s.log.InfoContext(ctx, "force fail skipped, reminder is no longer processing", slog.String("reminder_id", r.ID.String()))
	}
}
