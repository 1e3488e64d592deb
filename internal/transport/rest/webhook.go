package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/heartmarshall/reminder-worker/internal/domain"
	"github.com/heartmarshall/reminder-worker/internal/service/reconcile"
)

// reminderIDParam carries the correlation id on form callbacks. It matches
// the query parameter the Twilio gateway appends to its status callback URL.
const reminderIDParam = "reminder_id"

// reconciler defines the minimal interface needed by WebhookHandler.
type reconciler interface {
	Reconcile(ctx context.Context, cb domain.Callback) (reconcile.Result, error)
}

// WebhookHandler receives provider status callbacks.
type WebhookHandler struct {
	svc     reconciler
	maxBody int64
	log     *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(svc reconciler, maxBody int64, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, maxBody: maxBody, log: logger.With("handler", "webhook")}
}

type webhookResponse struct {
	Message    string `json:"message"`
	Idempotent bool   `json:"idempotent,omitempty"`
	ReminderID string `json:"reminder_id,omitempty"`
	NewStatus  string `json:"new_status,omitempty"`
	Applied    *bool  `json:"applied,omitempty"`
}

// CallStatus handles POST /webhooks/call-status.
func (h *WebhookHandler) CallStatus(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	cb, err := h.parse(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, reconcile.ErrNoResults):
			h.log.WarnContext(r.Context(), "callback without results")
			writeJSON(w, http.StatusOK, webhookResponse{Message: "No results to process"})
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		default:
			h.log.WarnContext(r.Context(), "invalid callback", slog.String("error", err.Error()))
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid webhook format: %v", err))
		}
		return
	}

	res, err := h.svc.Reconcile(r.Context(), cb)
	if err != nil {
		h.handleError(w, r, cb, err)
		return
	}

	if res.Duplicate {
		writeJSON(w, http.StatusOK, webhookResponse{Message: "Webhook already processed", Idempotent: true})
		return
	}

	applied := res.Applied
	writeJSON(w, http.StatusOK, webhookResponse{
		Message:    "Webhook processed successfully",
		ReminderID: res.ReminderID.String(),
		NewStatus:  res.NewStatus.String(),
		Applied:    &applied,
	})
}

// Health handles GET /webhooks/health.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "webhook"})
}

func (h *WebhookHandler) parse(r *http.Request) (domain.Callback, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return domain.Callback{}, err
		}
		return reconcile.ParseForm(r.PostForm, r.URL.Query().Get(reminderIDParam))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return domain.Callback{}, err
	}
	return reconcile.ParseCallback(body)
}

func (h *WebhookHandler) handleError(w http.ResponseWriter, r *http.Request, cb domain.Callback, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.log.WarnContext(r.Context(), "callback for unknown reminder", slog.String("reminder_id", cb.ReminderID.String()))
		writeError(w, http.StatusNotFound, fmt.Sprintf("Reminder %s not found", cb.ReminderID))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "reconcile failed",
			slog.String("reminder_id", cb.ReminderID.String()),
			slog.String("external_id", cb.ExternalID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Error processing webhook")
	}
}
