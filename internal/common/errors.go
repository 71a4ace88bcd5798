package common

import (
	"errors"
	"fmt"
)

// Transient marks errors that are expected to clear on a later attempt.
// Errors that do not implement it are treated as permanent.
type Transient interface {
	IsTransient() bool
}

// IsTransient reports whether any error in the chain is a retryable failure.
func IsTransient(err error) bool {
	var t Transient
	if errors.As(err, &t) {
		return t.IsTransient()
	}
	return false
}

// WrapError wraps an error with additional context information.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NetworkError represents a connectivity or timeout failure while talking to
// a remote endpoint. Always transient: the endpoint may come back.
type NetworkError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *NetworkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("network error for '%s': %s: %v", e.URL, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("network error for '%s': %s", e.URL, e.Reason)
}

func (e *NetworkError) Unwrap() error { return e.Wrapped }

func (e *NetworkError) IsTransient() bool { return true }

// NewNetworkError creates a new network error.
func NewNetworkError(url, reason string, wrapped error) *NetworkError {
	return &NetworkError{URL: url, Reason: reason, Wrapped: wrapped}
}

// HTTPError represents an unexpected HTTP status. Server-side failures (5xx)
// are transient, client-side failures (4xx) are permanent.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d error for '%s': %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d error: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) IsTransient() bool { return e.StatusCode >= 500 }

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, url, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, URL: url, Message: message}
}

// ParseError represents a feed body that could not be parsed. Permanent for
// that body; the feed as a whole is retried on the next cycle.
type ParseError struct {
	URL     string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("parse error for '%s': %v", e.URL, e.Wrapped)
	}
	return fmt.Sprintf("parse error: %v", e.Wrapped)
}

func (e *ParseError) Unwrap() error { return e.Wrapped }

func (e *ParseError) IsTransient() bool { return false }

// NewParseError creates a new parse error.
func NewParseError(url string, wrapped error) *ParseError {
	return &ParseError{URL: url, Wrapped: wrapped}
}

// SinkError represents a failed notification delivery. Always transient and
// always isolated to the delivery that failed.
type SinkError struct {
	Sink    string
	Wrapped error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink '%s' delivery failed: %v", e.Sink, e.Wrapped)
}

func (e *SinkError) Unwrap() error { return e.Wrapped }

func (e *SinkError) IsTransient() bool { return true }

// NewSinkError creates a new sink error.
func NewSinkError(sink string, wrapped error) *SinkError {
	return &SinkError{Sink: sink, Wrapped: wrapped}
}

// ValidationError represents a configuration value that failed validation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}
