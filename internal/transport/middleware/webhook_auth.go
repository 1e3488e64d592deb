package middleware

import (
	"log/slog"
	"net/http"
)

type requestVerifier interface {
	VerifyRequest(r *http.Request) error
}

// WebhookAuth rejects provider callbacks whose signature does not verify.
func WebhookAuth(verifier requestVerifier, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifier.VerifyRequest(r); err != nil {
				logger.WarnContext(r.Context(), "webhook signature rejected",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				writeJSONError(w, http.StatusForbidden, "invalid webhook signature")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
