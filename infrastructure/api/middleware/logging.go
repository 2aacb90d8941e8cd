// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logging returns a middleware that emits one structured record per
// completed request, including the ID assigned by chi's RequestID
// middleware so records can be matched to handler logs.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			wrapped := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			// Deferred so the record is still written when a handler
			// panics and Recoverer takes over.
			defer func() {
				logger.Info("request completed",
					"request_id", chimw.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", wrapped.Status(),
					"bytes", wrapped.BytesWritten(),
					"duration_ms", time.Since(started).Milliseconds(),
					"remote_addr", r.RemoteAddr,
				)
			}()

			next.ServeHTTP(wrapped, r)
		}
		return http.HandlerFunc(fn)
	}
}
