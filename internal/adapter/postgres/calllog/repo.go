// Package calllog implements the append-only CallLog repository using PostgreSQL.
package calllog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/reminder-worker/internal/adapter/postgres"
	"github.com/heartmarshall/reminder-worker/internal/domain"
)

const table = "call_logs"

var columns = []string{"id", "reminder_id", "external_call_id", "status", "transcript", "received_at"}

type row struct {
	ID             uuid.UUID `db:"id"`
	ReminderID     uuid.UUID `db:"reminder_id"`
	ExternalCallID string    `db:"external_call_id"`
	Status         string    `db:"status"`
	Transcript     *string   `db:"transcript"`
	ReceivedAt     time.Time `db:"received_at"`
}

// Repo provides call log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new call log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create appends a call log row.
func (r *Repo) Create(ctx context.Context, l domain.CallLog) error {
	if l.ExternalCallID == "" {
		return domain.NewValidationError("external_call_id", "required")
	}
	if l.Status == "" {
		return domain.NewValidationError("status", "required")
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(l.ID, l.ReminderID, l.ExternalCallID, l.Status, l.Transcript, l.ReceivedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert call log: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "call_log", l.ID)
	}
	return nil
}

// Exists reports whether a row with the exact idempotency key
// (reminder, external id, status label) has already been recorded.
func (r *Repo) Exists(ctx context.Context, reminderID uuid.UUID, externalID, label string) (bool, error) {
	query, args, err := postgres.Builder().
		Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(sq.Eq{
			"reminder_id":      reminderID,
			"external_call_id": externalID,
			"status":           label,
		}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build call log exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "call_log", reminderID)
	}
	return exists, nil
}

// ListByReminder returns the audit trail of a reminder in arrival order.
func (r *Repo) ListByReminder(ctx context.Context, reminderID uuid.UUID) ([]domain.CallLog, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"reminder_id": reminderID}).
		OrderBy("received_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list call logs: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "call_log", reminderID)
	}

	out := make([]domain.CallLog, 0, len(rows))
	for _, rw := range rows {
		out = append(out, domain.CallLog{
			ID:             rw.ID,
			ReminderID:     rw.ReminderID,
			ExternalCallID: rw.ExternalCallID,
			Status:         rw.Status,
			Transcript:     rw.Transcript,
			ReceivedAt:     rw.ReceivedAt.UTC(),
		})
	}
	return out, nil
}
