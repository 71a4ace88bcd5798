// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "statuswatch"

// Poll cycle results.
const (
	ResultModified    = "modified"
	ResultNotModified = "not_modified"
	ResultError       = "error"
)

var (
	pollCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "Completed poll cycles by feed and result",
		},
		[]string{"feed", "result"},
	)

	incidentsReported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_reported_total",
			Help:      "Incidents handed to the notification sink by feed and change kind",
		},
		[]string{"feed", "kind"},
	)

	notificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Failed sink deliveries by feed",
		},
		[]string{"feed"},
	)

	knownIncidents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "known_incidents",
			Help:      "Incidents currently tracked per feed",
		},
		[]string{"feed"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Conditional fetch duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"feed"},
	)
)

// RecordPollCycle counts one completed poll cycle.
func RecordPollCycle(feed, result string) {
	pollCycles.WithLabelValues(feed, result).Inc()
}

// RecordIncidentReported counts one incident handed to the sink.
func RecordIncidentReported(feed, kind string) {
	incidentsReported.WithLabelValues(feed, kind).Inc()
}

// RecordNotificationFailure counts one failed sink delivery.
func RecordNotificationFailure(feed string) {
	notificationFailures.WithLabelValues(feed).Inc()
}

// SetKnownIncidents updates the tracked-incident gauge for a feed.
func SetKnownIncidents(feed string, count int) {
	knownIncidents.WithLabelValues(feed).Set(float64(count))
}

// ObserveFetchDuration records the duration of one fetch.
func ObserveFetchDuration(feed string, duration time.Duration) {
	fetchDuration.WithLabelValues(feed).Observe(duration.Seconds())
}
