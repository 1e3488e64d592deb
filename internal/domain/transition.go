package domain

import "fmt"

// transitions lists every legal status edge. Terminal states have no
// outgoing edges.
var transitions = map[ReminderStatus][]ReminderStatus{
	ReminderStatusScheduled:  {ReminderStatusProcessing},
	ReminderStatusProcessing: {ReminderStatusCalled, ReminderStatusFailed},
}

// CanTransition reports whether from -> to is a legal edge.
// A same-status observation is not an edge and returns false.
func CanTransition(from, to ReminderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error wrapping ErrInvalidTransition when
// from -> to is not a legal edge.
func ValidateTransition(from, to ReminderStatus) error {
	if !from.IsValid() || !to.IsValid() {
		return fmt.Errorf("%s -> %s: unknown status: %w", from, to, ErrInvalidTransition)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	return nil
}
