package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reminder-worker/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an owner row and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, created_at, updated_at) VALUES ($1, $2, $3, $3)`,
		id, "testuser-"+uniqueSuffix()+"@example.com", now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}
	return id
}

// ReminderOption customizes a seeded reminder.
type ReminderOption func(r *domain.Reminder)

// WithStatus sets the seeded status. Non-scheduled reminders get the
// correlation id as external id unless WithExternalID is also given.
func WithStatus(s domain.ReminderStatus) ReminderOption {
	return func(r *domain.Reminder) { r.Status = s }
}

// WithScheduledAt sets the due time.
func WithScheduledAt(at time.Time) ReminderOption {
	return func(r *domain.Reminder) { r.ScheduledAt = at.UTC().Truncate(time.Microsecond) }
}

// WithExternalID sets the external call id.
func WithExternalID(id string) ReminderOption {
	return func(r *domain.Reminder) { r.ExternalCallID = &id }
}

// WithMessage sets the reminder text.
func WithMessage(msg string) ReminderOption {
	return func(r *domain.Reminder) { r.Message = msg }
}

// SeedReminder inserts a reminder owned by userID. By default it is
// scheduled and due one minute ago.
func SeedReminder(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, opts ...ReminderOption) domain.Reminder {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	r := domain.Reminder{
		ID:          uuid.New(),
		UserID:      userID,
		PhoneNumber: "+15550100" + uniqueSuffix()[:3],
		Message:     "Take your medicine " + uniqueSuffix(),
		ScheduledAt: now.Add(-time.Minute),
		Status:      domain.ReminderStatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.Status != domain.ReminderStatusScheduled && r.ExternalCallID == nil {
		corr := r.CorrelationID()
		r.ExternalCallID = &corr
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO reminders (id, user_id, phone_number, message, scheduled_at, status, external_call_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.UserID, r.PhoneNumber, r.Message, r.ScheduledAt, string(r.Status), r.ExternalCallID, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReminder insert: %v", err)
	}
	return r
}

// SeedCallLog inserts a call log row for reminderID.
func SeedCallLog(t *testing.T, pool *pgxpool.Pool, reminderID uuid.UUID, externalID, label string) domain.CallLog {
	t.Helper()

	l := domain.NewCallLog(reminderID, externalID, label, nil, time.Now())
	_, err := pool.Exec(context.Background(),
		`INSERT INTO call_logs (id, reminder_id, external_call_id, status, transcript, received_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.ReminderID, l.ExternalCallID, l.Status, l.Transcript, l.ReceivedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCallLog insert: %v", err)
	}
	return l
}

// ReminderState reads the current status and external id of a reminder.
func ReminderState(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) (domain.ReminderStatus, *string) {
	t.Helper()

	var (
		status string
		extID  *string
	)
	err := pool.QueryRow(context.Background(),
		`SELECT status, external_call_id FROM reminders WHERE id = $1`, id,
	).Scan(&status, &extID)
	if err != nil {
		t.Fatalf("testhelper: ReminderState: %v", err)
	}
	return domain.ReminderStatus(status), extID
}

// CountCallLogs returns the number of call log rows for a reminder.
func CountCallLogs(t *testing.T, pool *pgxpool.Pool, reminderID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM call_logs WHERE reminder_id = $1`, reminderID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountCallLogs: %v", err)
	}
	return n
}
