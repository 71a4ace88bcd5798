package monitor

import (
	"context"
	"errors"
	"time"

	"statuswatch/internal/common"
	"statuswatch/internal/feed"
	"statuswatch/internal/metrics"
	"statuswatch/internal/notifier"

	"github.com/rs/zerolog"
)

// Parser turns a raw feed body into incidents. *feed.Parser is the production
// implementation.
type Parser interface {
	Parse(body []byte) ([]feed.Incident, error)
}

// Monitor owns one feed: its identity, polling interval, cache validators and
// known-incident state. It runs the poll-parse-diff-notify cycle repeatedly
// until cancelled. Monitors never share state with each other; the notifier
// sink is the only resource they have in common.
type Monitor struct {
	name     string
	url      string
	interval time.Duration

	fetcher  *Fetcher
	parser   Parser
	detector *Detector
	state    StateStore
	sink     notifier.Sink
	logger   zerolog.Logger

	// Cache validators from the last successful fetch. Owned exclusively by
	// the monitor goroutine.
	etag         string
	lastModified string
}

// NewMonitor creates a monitor for one feed.
func NewMonitor(
	name string,
	url string,
	interval time.Duration,
	fetcher *Fetcher,
	parser Parser,
	detector *Detector,
	state StateStore,
	sink notifier.Sink,
	logger zerolog.Logger,
) *Monitor {
	return &Monitor{
		name:     name,
		url:      url,
		interval: interval,
		fetcher:  fetcher,
		parser:   parser,
		detector: detector,
		state:    state,
		sink:     sink,
		logger:   logger.With().Str("component", "Monitor").Str("feed", name).Logger(),
	}
}

// Name returns the feed name this monitor owns.
func (m *Monitor) Name() string {
	return m.name
}

// Run polls until ctx is cancelled. The first cycle starts immediately; each
// following cycle starts one full interval after the previous cycle finished,
// so a slow cycle can never overlap with the next one. Cancellation is
// observed before each fetch and during the inter-cycle sleep; a cycle
// already past the fetch point completes so state is never left inconsistent.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info().Str("url", m.url).Dur("interval", m.interval).Msg("Monitor starting")

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("Monitor stopped")
			return
		default:
		}

		m.runCycle(ctx)

		timer := time.NewTimer(m.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			m.logger.Info().Msg("Monitor stopped")
			return
		case <-timer.C:
		}
	}
}

// runCycle executes one poll-parse-diff-notify pass. Every failure is
// absorbed here: nothing propagates to the scheduler or to other monitors.
func (m *Monitor) runCycle(ctx context.Context) {
	start := time.Now()
	result, err := m.fetcher.Fetch(FetchInput{
		URL:          m.url,
		ETag:         m.etag,
		LastModified: m.lastModified,
	})
	metrics.ObserveFetchDuration(m.name, time.Since(start))

	if errors.Is(err, ErrNotModified) {
		metrics.RecordPollCycle(m.name, metrics.ResultNotModified)
		m.logger.Debug().Msg("No changes (304 Not Modified)")
		return
	}
	if err != nil {
		metrics.RecordPollCycle(m.name, metrics.ResultError)
		if common.IsTransient(err) {
			m.logger.Warn().Err(err).Msg("Transient fetch failure, retrying next cycle")
		} else {
			m.logger.Error().Err(err).Msg("Permanent fetch failure, feed stays under watch")
		}
		return
	}

	incidents, err := m.parser.Parse(result.Body)
	if err != nil {
		// State and validators stay untouched so the next cycle repeats the
		// same conditional fetch.
		metrics.RecordPollCycle(m.name, metrics.ResultError)
		m.logger.Error().Err(err).Msg("Feed body failed to parse")
		return
	}

	changes, next := m.detector.Detect(m.state.Snapshot(), incidents)
	m.state.Replace(next)
	m.etag = result.ETag
	m.lastModified = result.LastModified

	metrics.RecordPollCycle(m.name, metrics.ResultModified)
	metrics.SetKnownIncidents(m.name, m.state.Len())

	if len(changes) == 0 {
		m.logger.Debug().Int("incidents", len(incidents)).Msg("No new or updated incidents")
		return
	}

	m.notify(ctx, changes)
}

// notify delivers the detected changes in feed order. The cycle is already
// committed at this point, so delivery runs on a context detached from
// cancellation; shutdown waits for it rather than dropping changes that were
// already recorded as seen. Sink failures are transient and never abort the
// remaining deliveries.
func (m *Monitor) notify(ctx context.Context, changes []Change) {
	deliveryCtx := context.WithoutCancel(ctx)

	for _, change := range changes {
		m.logger.Info().
			Str("kind", string(change.Kind)).
			Str("incident_id", change.Incident.ID).
			Str("status", change.Incident.Status).
			Str("title", change.Incident.Title).
			Msg("Incident change detected")
		metrics.RecordIncidentReported(m.name, string(change.Kind))

		if err := m.sink.Notify(deliveryCtx, m.name, change.Incident); err != nil {
			metrics.RecordNotificationFailure(m.name)
			m.logger.Warn().Err(err).Str("incident_id", change.Incident.ID).Msg("Notification delivery failed")
		}
	}
}
