// Package middleware holds the HTTP wrappers mounted in front of the health checks
// and the provider webhook.
package middleware

import "net/http"

// Middleware wraps an http.Handler. It is chi's middleware shape, so values
// pass straight to chi.Router.Use and With.
type Middleware = func(http.Handler) http.Handler
