package graphql

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is matched by an HTTPError carrying status 401.
	ErrUnauthorized = errors.New("graphql: unauthorized")
	// ErrVerificationRequired is matched by an HTTPError carrying status 409.
	// The caller must complete email verification before using the API.
	ErrVerificationRequired = errors.New("graphql: email verification required")
	// ErrSignatureExpired is returned when the API still rejects the token
	// signature after the session was cleared and the call re-issued.
	ErrSignatureExpired = errors.New("graphql: token signature rejected")
	// ErrTransport wraps failures to reach the API or to read its response.
	ErrTransport = errors.New("graphql: transport failure")
)

const (
	errorPrefix           = "Error: "
	signatureErrorMessage = "Error decoding signature"
)

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphql: unexpected HTTP status %s", e.Status)
}

// Unwrap exposes the sentinel for the statuses callers act on.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrVerificationRequired
	default:
		return nil
	}
}

// Error is the first GraphQL error of a response. Message has the
// server's "Error: " prefix removed.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// normalizeMessage strips the leading "Error: " the API adds to business errors.
func normalizeMessage(msg string) string {
	return strings.TrimPrefix(msg, errorPrefix)
}

// IsSignatureError reports whether err is the API rejecting the token signature.
func IsSignatureError(err error) bool {
	var gqlErr *Error
	return errors.As(err, &gqlErr) && strings.Contains(gqlErr.Message, signatureErrorMessage)
}

// IsBusinessError reports whether err is a GraphQL error returned by the API
// rather than a transport failure.
func IsBusinessError(err error) bool {
	var gqlErr *Error
	return errors.As(err, &gqlErr)
}

// IsRetryable reports whether repeating the call could succeed. Client
// errors, business errors and rejected credentials are final.
func IsRetryable(err error) bool {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrSignatureExpired), IsBusinessError(err):
		return false
	case errors.As(err, &httpErr):
		return httpErr.StatusCode >= http.StatusInternalServerError || httpErr.StatusCode == http.StatusTooManyRequests
	default:
		return true
	}
}
