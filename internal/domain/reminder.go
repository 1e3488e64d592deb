package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Reminder is a unit of promised future notification work.
type Reminder struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	PhoneNumber    string
	Message        string
	ScheduledAt    time.Time
	Status         ReminderStatus
	ExternalCallID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDue reports whether the reminder is waiting for dispatch at now.
func (r Reminder) IsDue(now time.Time) bool {
	return r.Status == ReminderStatusScheduled && !r.ScheduledAt.After(now)
}

// CorrelationID is the token threaded through an outbound dispatch and
// echoed back by provider callbacks.
func (r Reminder) CorrelationID() string {
	return r.ID.String()
}

// CallLog is an append-only record of one provider status observation.
// (ReminderID, ExternalCallID, Status) is the idempotency key for callbacks.
type CallLog struct {
	ID             uuid.UUID
	ReminderID     uuid.UUID
	ExternalCallID string
	Status         string
	Transcript     *string
	ReceivedAt     time.Time
}

// NewCallLog builds a CallLog stamped with a fresh id and receivedAt in UTC.
func NewCallLog(reminderID uuid.UUID, externalID, label string, transcript *string, receivedAt time.Time) CallLog {
	return CallLog{
		ID:             uuid.New(),
		ReminderID:     reminderID,
		ExternalCallID: externalID,
		Status:         label,
		Transcript:     transcript,
		ReceivedAt:     receivedAt.UTC(),
	}
}

// Callback is a normalized inbound status observation, independent of the
// payload shape it arrived in.
type Callback struct {
	ReminderID  uuid.UUID
	ExternalID  string
	StatusLabel string
	Group       ProviderGroup
	Detail      *string
}

// Column limits of call_logs.
const (
	MaxExternalIDLen  = 255
	MaxStatusLabelLen = 50
)

// Validate checks that the callback fits the call log columns.
func (c Callback) Validate() error {
	var errs []FieldError
	if n := utf8.RuneCountInString(c.ExternalID); n > MaxExternalIDLen {
		errs = append(errs, FieldError{Field: "external_id", Message: fmt.Sprintf("must be at most %d characters (got %d)", MaxExternalIDLen, n)})
	}
	if n := utf8.RuneCountInString(c.StatusLabel); n > MaxStatusLabelLen {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("must be at most %d characters (got %d)", MaxStatusLabelLen, n)})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// SimulatedCompletion is the final outcome picked by the simulated gateway
// for a dispatched reminder.
type SimulatedCompletion struct {
	ReminderID uuid.UUID
	ExternalID string
	Success    bool
	Duration   time.Duration
}
