package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/reminder-worker/internal/domain"
)

// ErrNoResults is returned for a native report with an empty results array.
// It is not a client error: the provider is answered 200 and nothing changes.
var ErrNoResults = errors.New("no results to process")

const unknownLabel = "UNKNOWN"

type nativeReport struct {
	Results    []nativeResult `json:"results"`
	CustomData *struct {
		ReminderID *string `json:"reminder_id"`
	} `json:"customData"`
}

type nativeResult struct {
	MessageID    string `json:"messageId"`
	To           string `json:"to"`
	Duration     *int   `json:"duration"`
	CallbackData string `json:"callbackData"`
	Status       struct {
		Name      string `json:"name"`
		GroupName string `json:"groupName"`
	} `json:"status"`
}

type genericReport struct {
	CallID   string `json:"call_id"`
	Status   string `json:"status"`
	Metadata *struct {
		ReminderID string `json:"reminder_id"`
	} `json:"metadata"`
	Transcript *string `json:"transcript"`
}

// ParseCallback normalizes a JSON status callback. A body with a "results"
// key is a native delivery report; anything else is read as the generic
// shape.
func ParseCallback(body []byte) (domain.Callback, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return domain.Callback{}, domain.NewValidationError("body", "invalid JSON payload")
	}

	if _, ok := top["results"]; ok {
		return parseNative(body)
	}
	return parseGeneric(body)
}

func parseNative(body []byte) (domain.Callback, error) {
	var rep nativeReport
	if err := json.Unmarshal(body, &rep); err != nil {
		return domain.Callback{}, domain.NewValidationError("body", fmt.Sprintf("invalid webhook format: %v", err))
	}
	if len(rep.Results) == 0 {
		return domain.Callback{}, ErrNoResults
	}

	res := rep.Results[0]
	if strings.TrimSpace(res.MessageID) == "" {
		return domain.Callback{}, domain.NewValidationError("results[0].messageId", "required")
	}

	var rawID string
	switch {
	case rep.CustomData != nil && rep.CustomData.ReminderID != nil:
		rawID = *rep.CustomData.ReminderID
	case res.CallbackData != "":
		rawID = res.CallbackData
	default:
		return domain.Callback{}, domain.NewValidationError("customData.reminder_id", "required")
	}
	reminderID, err := parseReminderID(rawID)
	if err != nil {
		return domain.Callback{}, err
	}

	name := res.Status.Name
	if name == "" {
		name = unknownLabel
	}
	group := res.Status.GroupName
	if group == "" {
		group = unknownLabel
	}

	detail := "Status: " + name
	if res.Duration != nil && *res.Duration != 0 {
		detail = fmt.Sprintf("Status: %s, Group: %s, Duration: %ds", name, group, *res.Duration)
	}

	return validated(domain.Callback{
		ReminderID:  reminderID,
		ExternalID:  res.MessageID,
		StatusLabel: name,
		Group:       domain.ProviderGroup(strings.ToUpper(group)),
		Detail:      &detail,
	})
}

func parseGeneric(body []byte) (domain.Callback, error) {
	var rep genericReport
	if err := json.Unmarshal(body, &rep); err != nil {
		return domain.Callback{}, domain.NewValidationError("body", fmt.Sprintf("invalid webhook format: %v", err))
	}

	var errs []domain.FieldError
	if strings.TrimSpace(rep.CallID) == "" {
		errs = append(errs, domain.FieldError{Field: "call_id", Message: "required"})
	}
	if strings.TrimSpace(rep.Status) == "" {
		errs = append(errs, domain.FieldError{Field: "status", Message: "required"})
	}
	if rep.Metadata == nil || rep.Metadata.ReminderID == "" {
		errs = append(errs, domain.FieldError{Field: "metadata.reminder_id", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.Callback{}, domain.NewValidationErrors(errs)
	}

	reminderID, err := parseReminderID(rep.Metadata.ReminderID)
	if err != nil {
		return domain.Callback{}, err
	}

	return validated(domain.Callback{
		ReminderID:  reminderID,
		ExternalID:  rep.CallID,
		StatusLabel: rep.Status,
		Group:       GroupForStatus(rep.Status),
		Detail:      rep.Transcript,
	})
}

// ParseForm normalizes a form-encoded status callback as posted by Twilio.
// The reminder id travels in the callback URL's query string, not the form.
func ParseForm(form url.Values, reminderIDParam string) (domain.Callback, error) {
	externalID := firstNonEmpty(form.Get("MessageSid"), form.Get("CallSid"))
	status := firstNonEmpty(form.Get("MessageStatus"), form.Get("CallStatus"))

	var errs []domain.FieldError
	if externalID == "" {
		errs = append(errs, domain.FieldError{Field: "MessageSid", Message: "required"})
	}
	if status == "" {
		errs = append(errs, domain.FieldError{Field: "MessageStatus", Message: "required"})
	}
	if reminderIDParam == "" {
		errs = append(errs, domain.FieldError{Field: "reminder_id", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.Callback{}, domain.NewValidationErrors(errs)
	}

	reminderID, err := parseReminderID(reminderIDParam)
	if err != nil {
		return domain.Callback{}, err
	}

	detail := "Status: " + status
	if code := form.Get("ErrorCode"); code != "" {
		detail += ", ErrorCode: " + code
	}
	if d := form.Get("CallDuration"); d != "" {
		detail += ", Duration: " + d + "s"
	}

	return validated(domain.Callback{
		ReminderID:  reminderID,
		ExternalID:  externalID,
		StatusLabel: status,
		Group:       GroupForStatus(status),
		Detail:      &detail,
	})
}

// validated rejects callbacks that would not fit the call log. A payload
// that can never be stored is the sender's fault, not a retryable failure.
func validated(cb domain.Callback) (domain.Callback, error) {
	if err := cb.Validate(); err != nil {
		return domain.Callback{}, err
	}
	return cb, nil
}

func parseReminderID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError("reminder_id", "invalid reminder_id format")
	}
	return id, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
