// Package provider implements the text-embedding provider clients.
package provider

import "fmt"

// ProviderError wraps a failure from the embedding provider. Transient
// failures (rate limits, upstream outages) are retried internally up to the
// configured limit before being surfaced as this type.
type ProviderError struct {
	operation  string
	statusCode int
	message    string
	cause      error
}

// NewProviderError creates a provider error.
func NewProviderError(operation string, statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
		cause:      cause,
	}
}

// Operation returns the provider operation that failed.
func (e *ProviderError) Operation() string { return e.operation }

// StatusCode returns the HTTP status code, 0 if not applicable.
func (e *ProviderError) StatusCode() int { return e.statusCode }

// Message returns the provider's error message.
func (e *ProviderError) Message() string { return e.message }

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.statusCode > 0 {
		return fmt.Sprintf("provider %s failed (status %d): %s", e.operation, e.statusCode, e.message)
	}
	return fmt.Sprintf("provider %s failed: %s", e.operation, e.message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error { return e.cause }
