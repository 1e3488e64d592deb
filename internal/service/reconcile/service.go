// Package reconcile applies provider status callbacks to reminders.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reminder-worker/internal/domain"
)

const (
	simulatedFailureTranscript = "[SIMULATED] Call failed - no answer"
	simulatedSuccessFormat     = "[SIMULATED TRANSCRIPT] Your reminder: %s. Call duration: %d seconds."
)

type reminderRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error
}

type callLogRepo interface {
	Exists(ctx context.Context, reminderID uuid.UUID, externalID, label string) (bool, error)
	Create(ctx context.Context, l domain.CallLog) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service reconciles inbound status observations onto reminders. Every call
// runs in one transaction holding the reminder's row lock.
type Service struct {
	log       *slog.Logger
	reminders reminderRepo
	callLogs  callLogRepo
	tx        txManager
	now       func() time.Time
}

// NewService creates a new reconcile service.
func NewService(
	log *slog.Logger,
	reminders reminderRepo,
	callLogs callLogRepo,
	tx txManager,
) *Service {
	return &Service{
		log:       log.With("service", "reconcile"),
		reminders: reminders,
		callLogs:  callLogs,
		tx:        tx,
		now:       time.Now,
	}
}

// Result describes what a callback did.
type Result struct {
	ReminderID uuid.UUID
	// Duplicate is set when the (reminder, external id, label) triple was
	// already recorded. Nothing was written.
	Duplicate bool
	// Applied is set when the reminder's status changed.
	Applied   bool
	NewStatus domain.ReminderStatus
}

// Reconcile applies one callback. A duplicate observation is reported, not
// re-applied. A status change the state machine rejects leaves the reminder
// untouched but still appends the log row.
func (s *Service) Reconcile(ctx context.Context, cb domain.Callback) (Result, error) {
	res := Result{ReminderID: cb.ReminderID}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		r, err := s.reminders.GetForUpdate(ctx, cb.ReminderID)
		if err != nil {
			return fmt.Errorf("lock reminder %s: %w", cb.ReminderID, err)
		}
		res.NewStatus = r.Status

		dup, err := s.callLogs.Exists(ctx, r.ID, cb.ExternalID, cb.StatusLabel)
		if err != nil {
			return fmt.Errorf("check call log: %w", err)
		}
		if dup {
			res.Duplicate = true
			return nil
		}

		// Entering processing is the claim's job; a pending report never
		// moves a reminder on its own.
		target := StatusForGroup(cb.Group)
		if target != r.Status && target != domain.ReminderStatusProcessing {
			applied, err := s.transition(ctx, r, target)
			if err != nil {
				return err
			}
			if applied {
				res.Applied = true
				res.NewStatus = target
			}
		}

		return s.callLogs.Create(ctx, domain.NewCallLog(r.ID, cb.ExternalID, cb.StatusLabel, cb.Detail, s.now()))
	})
	if err != nil {
		return Result{}, err
	}

	switch {
	case res.Duplicate:
		s.log.InfoContext(ctx, "duplicate callback ignored",
			slog.String("reminder_id", cb.ReminderID.String()),
			slog.String("external_id", cb.ExternalID),
			slog.String("label", cb.StatusLabel),
		)
	default:
		s.log.InfoContext(ctx, "callback reconciled",
			slog.String("reminder_id", cb.ReminderID.String()),
			slog.String("external_id", cb.ExternalID),
			slog.String("label", cb.StatusLabel),
			slog.String("group", cb.Group.String()),
			slog.String("status", res.NewStatus.String()),
			slog.Bool("applied", res.Applied),
		)
	}
	return res, nil
}

// CompleteSimulated records the final outcome chosen by the simulated
// gateway. Reminders that are gone or no longer processing are skipped.
func (s *Service) CompleteSimulated(ctx context.Context, c domain.SimulatedCompletion) error {
	label := domain.CallLogLabelFailed
	target := domain.ReminderStatusFailed
	if c.Success {
		label = domain.CallLogLabelCompleted
		target = domain.ReminderStatusCalled
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		r, err := s.reminders.GetForUpdate(ctx, c.ReminderID)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "simulated completion skipped, reminder is gone",
				slog.String("reminder_id", c.ReminderID.String()))
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock reminder %s: %w", c.ReminderID, err)
		}
		if r.Status != domain.ReminderStatusProcessing {
			s.log.InfoContext(ctx, "simulated completion skipped, reminder is not processing",
				slog.String("reminder_id", r.ID.String()),
				slog.String("status", r.Status.String()),
			)
			return nil
		}

		dup, err := s.callLogs.Exists(ctx, r.ID, c.ExternalID, label)
		if err != nil {
			return fmt.Errorf("check call log: %w", err)
		}
		if dup {
			return nil
		}

		if _, err := s.transition(ctx, r, target); err != nil {
			return err
		}

		transcript := simulatedFailureTranscript
		if c.Success {
			transcript = fmt.Sprintf(simulatedSuccessFormat, r.Message, int(c.Duration.Seconds()))
		}

		s.log.InfoContext(ctx, "simulated call completed",
			slog.String("reminder_id", r.ID.String()),
			slog.String("external_id", c.ExternalID),
			slog.String("status", target.String()),
		)
		return s.callLogs.Create(ctx, domain.NewCallLog(r.ID, c.ExternalID, label, &transcript, s.now()))
	})
}

// transition writes r -> to when the state machine allows it and reports
// whether it did.
func (s *Service) transition(ctx context.Context, r *domain.Reminder, to domain.ReminderStatus) (bool, error) {
	if err := domain.ValidateTransition(r.Status, to); err != nil {
		s.log.WarnContext(ctx, "rejected transition",
			slog.String("reminder_id", r.ID.String()),
			slog.String("from", r.Status.String()),
			slog.String("to", to.String()),
		)
		return false, nil
	}
	if err := s.reminders.UpdateStatus(ctx, r.ID, to); err != nil {
		return false, fmt.Errorf("update reminder status: %w", err)
	}
	return true, nil
}
