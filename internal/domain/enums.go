package domain

// ReminderStatus is the lifecycle state of a reminder. Provider status
// vocabulary never appears here; it is kept as free text on CallLog.
type ReminderStatus string

const (
	ReminderStatusScheduled  ReminderStatus = "scheduled"
	ReminderStatusProcessing ReminderStatus = "processing"
	ReminderStatusCalled     ReminderStatus = "called"
	ReminderStatusFailed     ReminderStatus = "failed"
)

func (s ReminderStatus) String() string { return string(s) }

func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusScheduled, ReminderStatusProcessing, ReminderStatusCalled, ReminderStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s ReminderStatus) IsTerminal() bool {
	return s == ReminderStatusCalled || s == ReminderStatusFailed
}

// ProviderGroup is the coarse status class reported by a delivery provider.
// Only DELIVERED and PENDING carry meaning; every other value is a failure class.
type ProviderGroup string

const (
	ProviderGroupDelivered     ProviderGroup = "DELIVERED"
	ProviderGroupPending       ProviderGroup = "PENDING"
	ProviderGroupUndeliverable ProviderGroup = "UNDELIVERABLE"
	ProviderGroupExpired       ProviderGroup = "EXPIRED"
	ProviderGroupRejected      ProviderGroup = "REJECTED"
	ProviderGroupUnknown       ProviderGroup = "UNKNOWN"
)

func (g ProviderGroup) String() string { return string(g) }

// Call log labels written by the worker itself (as opposed to labels echoed
// from provider callbacks).
const (
	CallLogLabelCreated   = "created"
	CallLogLabelFailed    = "failed"
	CallLogLabelCompleted = "completed"

	// ExternalIDDispatchFailed is recorded when the provider rejected a
	// dispatch without returning an id of its own.
	ExternalIDDispatchFailed = "failed-to-create"
)
