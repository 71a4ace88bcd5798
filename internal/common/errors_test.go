package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	original := errors.New("original error")

	wrapped := WrapError(original, "context")
	assert.Equal(t, "context: original error", wrapped.Error())
	assert.ErrorIs(t, wrapped, original)

	assert.NoError(t, WrapError(nil, "context"))
}

func TestWrapErrorf(t *testing.T) {
	original := errors.New("boom")

	wrapped := WrapErrorf(original, "fetching %s", "https://example.com")
	assert.Equal(t, "fetching https://example.com: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, original)

	assert.NoError(t, WrapErrorf(nil, "fetching %s", "https://example.com"))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{
			name:      "network error is transient",
			err:       NewNetworkError("https://example.com/feed", "request failed", errors.New("connection refused")),
			transient: true,
		},
		{
			name:      "http 500 is transient",
			err:       NewHTTPError(500, "https://example.com/feed", "internal server error"),
			transient: true,
		},
		{
			name:      "http 503 is transient",
			err:       NewHTTPError(503, "https://example.com/feed", "service unavailable"),
			transient: true,
		},
		{
			name:      "http 404 is permanent",
			err:       NewHTTPError(404, "https://example.com/feed", "not found"),
			transient: false,
		},
		{
			name:      "http 403 is permanent",
			err:       NewHTTPError(403, "https://example.com/feed", "forbidden"),
			transient: false,
		},
		{
			name:      "parse error is permanent",
			err:       NewParseError("https://example.com/feed", errors.New("bad xml")),
			transient: false,
		},
		{
			name:      "sink error is transient",
			err:       NewSinkError("webhook", errors.New("timeout")),
			transient: true,
		},
		{
			name:      "wrapped transient stays transient",
			err:       fmt.Errorf("cycle failed: %w", NewNetworkError("https://example.com", "dial", nil)),
			transient: true,
		},
		{
			name:      "plain error is permanent",
			err:       errors.New("something"),
			transient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(tt.err))
		})
	}
}

func TestNetworkErrorMessage(t *testing.T) {
	err := NewNetworkError("https://example.com", "request failed", errors.New("timeout"))
	assert.Equal(t, "network error for 'https://example.com': request failed: timeout", err.Error())

	bare := NewNetworkError("https://example.com", "request failed", nil)
	assert.Equal(t, "network error for 'https://example.com': request failed", bare.Error())
}

func TestHTTPErrorMessage(t *testing.T) {
	err := NewHTTPError(502, "https://example.com", "bad gateway")
	assert.Equal(t, "HTTP 502 error for 'https://example.com': bad gateway", err.Error())

	noURL := NewHTTPError(502, "", "bad gateway")
	assert.Equal(t, "HTTP 502 error: bad gateway", noURL.Error())
}

func TestSinkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSinkError("webhook", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "webhook")
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("interval_seconds", -1, "must be positive")
	assert.Equal(t, "validation failed for field 'interval_seconds': must be positive (value: -1)", err.Error())
}
