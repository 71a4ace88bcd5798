package monitor

import (
	"sync"
	"time"
)

// StateStore holds the known incident timestamps for one feed. The change
// detection algorithm is written against this interface so a persistent
// backend could be substituted without touching it.
type StateStore interface {
	// Snapshot returns a copy of the known id -> updated_at map.
	Snapshot() map[string]time.Time
	// Replace swaps the known map for the given one.
	Replace(known map[string]time.Time)
	// Len reports the number of known incidents.
	Len() int
}

// MemoryStateStore is the default StateStore. State lives for the process
// lifetime only; nothing is persisted across restarts.
type MemoryStateStore struct {
	mu    sync.RWMutex
	known map[string]time.Time
}

// NewMemoryStateStore creates an empty state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		known: make(map[string]time.Time),
	}
}

// Snapshot returns a copy of the known map; callers may mutate it freely.
func (s *MemoryStateStore) Snapshot() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]time.Time, len(s.known))
	for id, updated := range s.known {
		snapshot[id] = updated
	}
	return snapshot
}

// Replace swaps the known map for the given one. The store takes ownership of
// the map.
func (s *MemoryStateStore) Replace(known map[string]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known = known
}

// Len reports the number of known incidents.
func (s *MemoryStateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.known)
}
