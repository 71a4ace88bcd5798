package monitor

import (
	"time"

	"statuswatch/internal/feed"
)

// ChangeKind classifies a detected change.
type ChangeKind string

const (
	ChangeNew     ChangeKind = "new"
	ChangeUpdated ChangeKind = "updated"
)

// Change pairs an incident with how it differs from the known state.
type Change struct {
	Incident feed.Incident
	Kind     ChangeKind
}

// Detector computes which parsed incidents are new or updated relative to a
// known-state snapshot.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect classifies the parsed incidents against the known map and returns
// the changes in feed order plus the next known map.
//
// An incident is New when its id is absent from known, Updated when its
// timestamp is strictly greater than the stored one, and Unchanged otherwise.
// Equal timestamps never notify, so each timestamp value fires at most once
// per cycle. Ids present in known but absent from parsed are retained:
// absence from a feed does not imply resolution or deletion.
func (d *Detector) Detect(known map[string]time.Time, parsed []feed.Incident) ([]Change, map[string]time.Time) {
	next := make(map[string]time.Time, len(known)+len(parsed))
	for id, updated := range known {
		next[id] = updated
	}

	var changes []Change
	for _, incident := range parsed {
		previous, seen := known[incident.ID]
		switch {
		case !seen:
			changes = append(changes, Change{Incident: incident, Kind: ChangeNew})
		case incident.UpdatedAt.After(previous):
			changes = append(changes, Change{Incident: incident, Kind: ChangeUpdated})
		}
		next[incident.ID] = incident.UpdatedAt
	}

	return changes, next
}
