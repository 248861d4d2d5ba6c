// Package middleware provides the HTTP middleware stack for the portal
// server: structured request logging, CORS for the embedded API routes,
// and request body size limits.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lakbayan/tourism-portal/internal/auth"
)

// NewSlogLogger returns a middleware that logs each request as one
// structured JSON line via the provided slog.Logger: method, path, status,
// duration, the request ID set by chi's RequestID middleware, and the
// signed-in user when the session middleware resolved one.
//
// Wire it after chimiddleware.RequestID and auth.Provider.LoadSession.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// WrapResponseWriter intercepts WriteHeader so the status is
			// readable after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if user, ok := auth.CurrentUser(r.Context()); ok {
				attrs = append(attrs, "user", user.Email)
			}
			log.InfoContext(r.Context(), "request", attrs...)
		})
	}
}
