// Package notifier contains the notification sink boundary and its built-in
// implementations. Sinks are the only process-wide shared resource; monitors
// in separate goroutines invoke them concurrently.
package notifier

import (
	"context"

	"statuswatch/internal/feed"
)

// Sink delivers one detected incident change. Implementations must be safe
// for concurrent use and must report failures as errors rather than
// panicking; the caller treats every sink error as transient and keeps going.
type Sink interface {
	Notify(ctx context.Context, feedName string, incident feed.Incident) error
}
