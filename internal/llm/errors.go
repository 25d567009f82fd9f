package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the messages API, carrying the HTTP
// status and the provider's error type so the transport layer can map it
// to a distinct caller-facing category.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("anthropic API error (%d %s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("anthropic API error (%d): %s", e.StatusCode, e.Message)
}

// IsOverloaded reports whether err indicates upstream overload (HTTP 529
// or the overloaded_error type). Callers should wait and retry.
func IsOverloaded(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 529 || apiErr.Type == "overloaded_error"
}

// IsAuthError reports whether err indicates a misconfigured API key.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.Type == "authentication_error"
}

// IsNotFound reports whether err indicates an unknown model.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err indicates the provider rate limit.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.Type == "rate_limit_error"
}
