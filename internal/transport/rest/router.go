package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Health   *HealthHandler
	Webhook  *WebhookHandler
	Logger   *slog.Logger
	Webhooks config.WebhookConfig

	// Limiter is optional; without it callbacks are not rate limited.
	Limiter *middleware.RateLimiter
	// Verifier is optional; without it callback signatures are not checked.
	Verifier interface {
		VerifyRequest(r *http.Request) error
	}
}

// NewRouter builds the HTTP surface: health checks plus the provider webhook.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.ClientIP(d.Webhooks.TrustProxy),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
	)

	r.Get("/", d.Health.Root)
	r.Get("/health", d.Health.Health)
	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)

	r.Route("/webhooks", func(r chi.Router) {
		r.Get("/health", d.Webhook.Health)

		var guards []func(http.Handler) http.Handler
		if d.Limiter != nil {
			guards = append(guards, d.Limiter.Limit(d.Webhooks.RateLimitPerMinute))
		}
		if d.Verifier != nil {
			guards = append(guards, middleware.WebhookAuth(d.Verifier, d.Logger))
		}
		r.With(guards...).Post("/call-status", d.Webhook.CallStatus)
	})

	return r
}
