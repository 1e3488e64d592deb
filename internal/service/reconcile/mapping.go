package reconcile

import (
	"strings"

	"github.com/heartmarshall/reminder-worker/internal/domain"
)

// genericGroups classifies the free-text statuses of the generic and Twilio
// payloads. Anything missing here is a failure class.
var genericGroups = map[string]domain.ProviderGroup{
	"completed": domain.ProviderGroupDelivered,
	"ended":     domain.ProviderGroupDelivered,
	"delivered": domain.ProviderGroupDelivered,

	"queued":      domain.ProviderGroupPending,
	"initiated":   domain.ProviderGroupPending,
	"ringing":     domain.ProviderGroupPending,
	"in-progress": domain.ProviderGroupPending,
	"sent":        domain.ProviderGroupPending,
	"sending":     domain.ProviderGroupPending,
	"accepted":    domain.ProviderGroupPending,
	"pending":     domain.ProviderGroupPending,
}

// GroupForStatus classifies a free-text provider status.
func GroupForStatus(status string) domain.ProviderGroup {
	if g, ok := genericGroups[strings.ToLower(strings.TrimSpace(status))]; ok {
		return g
	}
	return domain.ProviderGroupUnknown
}

// StatusForGroup maps a provider group onto the reminder lifecycle.
// Unknown groups fail closed.
func StatusForGroup(g domain.ProviderGroup) domain.ReminderStatus {
	switch domain.ProviderGroup(strings.ToUpper(string(g))) {
	case domain.ProviderGroupDelivered:
		return domain.ReminderStatusCalled
	case domain.ProviderGroupPending:
		return domain.ReminderStatusProcessing
	default:
		return domain.ReminderStatusFailed
	}
}
