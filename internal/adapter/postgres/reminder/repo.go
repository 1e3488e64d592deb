// Package reminder implements the Reminder repository using PostgreSQL.
package reminder

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

const table = "reminders"

var columns = []string{
	"id", "user_id", "phone_number", "message", "scheduled_at",
	"status", "external_call_id", "created_at", "updated_at",
}

// row mirrors a reminders record for pgxscan.
type row struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	PhoneNumber    string    `db:"phone_number"`
	Message        string    `db:"message"`
	ScheduledAt    time.Time `db:"scheduled_at"`
	Status         string    `db:"status"`
	ExternalCallID *string   `db:"external_call_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Reminder {
	return domain.Reminder{
		ID:             r.ID,
		UserID:         r.UserID,
		PhoneNumber:    r.PhoneNumber,
		Message:        r.Message,
		ScheduledAt:    r.ScheduledAt.UTC(),
		Status:         domain.ReminderStatus(r.Status),
		ExternalCallID: r.ExternalCallID,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

// Repo provides reminder persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reminder repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// SelectDue returns up to limit scheduled reminders whose scheduled_at is at
// or before now, oldest first.
func (r *Repo) SelectDue(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"status": string(domain.ReminderStatusScheduled)}).
		Where(sq.LtOrEq{"scheduled_at": now.UTC()}).
		OrderBy("scheduled_at ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select due: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "reminder", uuid.Nil)
	}

	out := make([]domain.Reminder, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.toDomain())
	}
	return out, nil
}

// Claim moves a reminder from scheduled to processing and records the
// correlation id as its external call id. It reports false when the row was
// not in scheduled state, meaning another claimer won.
func (r *Repo) Claim(ctx context.Context, id uuid.UUID, correlationID string) (bool, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("status", string(domain.ReminderStatusProcessing)).
		Set("external_call_id", correlationID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": string(domain.ReminderStatusScheduled)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build claim: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "reminder", id)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID returns a reminder by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns a reminder and holds a row lock on it until the
// surrounding transaction ends. It must be called inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("reminder %s: lock requested outside a transaction", id)
	}
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Reminder, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reminder: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "reminder", id)
	}

	rem := rw.toDomain()
	return &rem, nil
}

// SetExternalID records the provider-assigned external id.
func (r *Repo) SetExternalID(ctx context.Context, id uuid.UUID, externalID string) error {
	return r.update(ctx, id, postgres.Builder().
		Update(table).
		Set("external_call_id", externalID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}))
}

// UpdateStatus writes a new status. Callers validate the transition first.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	return r.update(ctx, id, postgres.Builder().
		Update(table).
		Set("status", string(status)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}))
}

// ForceFail moves a reminder to failed only if it is still processing.
// It reports whether a row changed.
func (r *Repo) ForceFail(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("status", string(domain.ReminderStatusFailed)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": string(domain.ReminderStatusProcessing)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build force fail: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "reminder", id)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repo) update(ctx context.Context, id uuid.UUID, b sq.UpdateBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build update reminder: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "reminder", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reminder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
