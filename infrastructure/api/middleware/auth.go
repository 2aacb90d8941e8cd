package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// APIKeyAuth returns a middleware that requires a valid API key in the
// X-API-Key header or as an Authorization bearer token. With no keys
// configured, authentication is disabled.
func APIKeyAuth(keys []string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(keys) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			presented := r.Header.Get("X-API-Key")
			if presented == "" {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					presented = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if presented == "" {
				WriteError(w, r, NewAuthenticationError("missing API key"), logger)
				return
			}

			for _, key := range keys {
				if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			WriteError(w, r, NewAuthenticationError("invalid API key"), logger)
		})
	}
}

// CallerID extracts the caller's user id from the X-User-ID header. Empty
// when the request carries no identity.
func CallerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
