package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/reminder-worker/pkg/ctxutil"
)

// RequestIDHeader is read from the request and echoed on the response.
const RequestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds incoming ids before they reach the logs.
const maxRequestIDLen = 128

// RequestID returns middleware that tags each request with an id, reusing
// the caller's X-Request-Id when it is present and reasonably sized.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
