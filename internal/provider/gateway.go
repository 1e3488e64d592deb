// Package provider defines the outbound delivery contract shared by the real
// and simulated gateways.
package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/reminder-worker/internal/domain"
)

// Delivery is one outbound notification attempt.
type Delivery struct {
	Destination   string
	Message       string
	CorrelationID string
}

// Outcome is the immediate, synchronous result of a delivery attempt.
// Transport and provider errors are folded into Success=false with a
// human-readable ErrorMessage; they never surface as Go errors.
type Outcome struct {
	ExternalID     string
	ProviderStatus string
	Success        bool
	ErrorMessage   string
}

// Failure builds a failed Outcome.
func Failure(msg string) Outcome {
	return Outcome{ProviderStatus: "failed", ErrorMessage: msg}
}

// Gateway sends a notification through an external delivery provider.
type Gateway interface {
	Name() string
	AttemptDelivery(ctx context.Context, d Delivery) Outcome
}

// CompletionScheduler is implemented by gateways that produce their own final
// status instead of waiting for a provider webhook. The dispatcher calls it
// after the "created" log row is committed.
type CompletionScheduler interface {
	ScheduleCompletion(reminderID uuid.UUID, externalID string)
}

// CompletionSink receives final outcomes from a CompletionScheduler.
type CompletionSink interface {
	CompleteSimulated(ctx context.Context, c domain.SimulatedCompletion) error
}
