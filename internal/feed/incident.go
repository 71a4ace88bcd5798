package feed

import "time"

// Status labels as published by incident.io and Statuspage style providers.
const (
	StatusInvestigating = "Investigating"
	StatusIdentified    = "Identified"
	StatusMonitoring    = "Monitoring"
	StatusResolved      = "Resolved"
	StatusDegraded      = "Degraded Performance"
	StatusPartialOutage = "Partial Outage"
	StatusMajorOutage   = "Major Outage"
	StatusUnknown       = "Unknown"
)

// statusLabels maps lowercased provider labels to their canonical form.
var statusLabels = map[string]string{
	"investigating":        StatusInvestigating,
	"identified":           StatusIdentified,
	"monitoring":           StatusMonitoring,
	"resolved":             StatusResolved,
	"degraded performance": StatusDegraded,
	"partial outage":       StatusPartialOutage,
	"major outage":         StatusMajorOutage,
}

// Incident represents one reported event on a status page. The ID is the diff
// key; two records with the same ID and equal UpdatedAt are treated as
// identical regardless of other field differences.
type Incident struct {
	ID         string
	Title      string
	Link       string
	Status     string
	Components []string
	Message    string
	UpdatedAt  time.Time
}
