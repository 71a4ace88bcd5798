package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"statuswatch/internal/common"
	"statuswatch/internal/feed"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// webhookPayload is the JSON body posted for each incident change.
type webhookPayload struct {
	Feed       string    `json:"feed"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Components []string  `json:"components,omitempty"`
	Message    string    `json:"message"`
	Link       string    `json:"link"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WebhookSink POSTs incident changes to a configured URL. Network failures,
// 429 and 5xx responses are retried with exponential backoff up to a maximum
// elapsed time; other client errors are permanent and fail immediately.
type WebhookSink struct {
	url             string
	httpClient      *http.Client
	maxElapsed      time.Duration
	initialInterval time.Duration
	logger          zerolog.Logger
}

// NewWebhookSink creates a webhook sink delivering to url.
func NewWebhookSink(url string, client *http.Client, maxElapsed time.Duration, logger zerolog.Logger) *WebhookSink {
	return &WebhookSink{
		url:             url,
		httpClient:      client,
		maxElapsed:      maxElapsed,
		initialInterval: backoff.DefaultInitialInterval,
		logger:          logger.With().Str("component", "WebhookSink").Logger(),
	}
}

// Notify delivers one incident change, retrying transient failures.
func (w *WebhookSink) Notify(ctx context.Context, feedName string, incident feed.Incident) error {
	payload, err := json.Marshal(webhookPayload{
		Feed:       feedName,
		ID:         incident.ID,
		Title:      incident.Title,
		Status:     incident.Status,
		Components: incident.Components,
		Message:    incident.Message,
		Link:       incident.Link,
		UpdatedAt:  incident.UpdatedAt,
	})
	if err != nil {
		return common.NewSinkError("webhook", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = w.initialInterval
	policy.MaxElapsedTime = w.maxElapsed

	operation := func() error {
		return w.post(ctx, payload)
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		w.logger.Warn().Err(err).Str("feed", feedName).Str("incident_id", incident.ID).Msg("Webhook delivery failed")
		return common.NewSinkError("webhook", err)
	}

	w.logger.Debug().Str("feed", feedName).Str("incident_id", incident.ID).Msg("Webhook delivered")
	return nil
}

// post performs one delivery attempt. Errors it returns plainly are retried
// by the backoff policy; permanent failures are wrapped so retrying stops.
func (w *WebhookSink) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	statusErr := common.NewHTTPError(resp.StatusCode, w.url, http.StatusText(resp.StatusCode))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return statusErr
	}
	return backoff.Permanent(statusErr)
}
