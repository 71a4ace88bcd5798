package config

import "time"

// HTTPConfig defines configuration for outbound feed requests.
type HTTPConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultHTTPConfig creates default HTTP configuration.
func NewDefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		TimeoutSeconds: DefaultHTTPTimeoutSeconds,
		UserAgent:      DefaultUserAgent,
	}
}

// Timeout returns the request timeout as a duration.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
