package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/infrastructure/provider"
	"github.com/clustertune/reportd/internal/database"
)

// ErrAuthentication is the sentinel for authentication failures.
var ErrAuthentication = errors.New("authentication failed")

// NewAuthenticationError creates an authentication failure wrapping
// ErrAuthentication.
func NewAuthenticationError(message string) error {
	return &authenticationError{message: message}
}

type authenticationError struct {
	message string
}

func (e *authenticationError) Error() string {
	return "authentication failed: " + e.message
}

func (e *authenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps domain errors to HTTP status codes and writes a JSON
// error body. Typed search failures map to actionable statuses so callers
// can distinguish "no matches" from "search failed".
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	WriteJSON(w, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		providerErr *provider.ProviderError
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, search.ErrEmptyContent),
		errors.Is(err, search.ErrInvalidQuery):
		return http.StatusBadRequest
	// Request body decode failures are client errors, not server ones.
	case errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrEmbeddingMissing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, search.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &providerErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
