package config

import "time"

// NotificationConfig defines configuration for notification sinks.
type NotificationConfig struct {
	Console                bool   `json:"console" yaml:"console"`
	MaxRetryElapsedSeconds int    `json:"max_retry_elapsed_seconds,omitempty" yaml:"max_retry_elapsed_seconds,omitempty" validate:"omitempty,min=1"`
	WebhookTimeoutSeconds  int    `json:"webhook_timeout_seconds,omitempty" yaml:"webhook_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	WebhookURL             string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,http_url"`
}

// NewDefaultNotificationConfig creates default notification configuration.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Console:                DefaultConsoleNotificationsOn,
		MaxRetryElapsedSeconds: DefaultMaxRetryElapsedSeconds,
		WebhookTimeoutSeconds:  DefaultWebhookTimeoutSeconds,
		WebhookURL:             "",
	}
}

// WebhookTimeout returns the webhook delivery timeout as a duration.
func (c NotificationConfig) WebhookTimeout() time.Duration {
	return time.Duration(c.WebhookTimeoutSeconds) * time.Second
}

// MaxRetryElapsed returns the total time budget for webhook retries.
func (c NotificationConfig) MaxRetryElapsed() time.Duration {
	return time.Duration(c.MaxRetryElapsedSeconds) * time.Second
}
