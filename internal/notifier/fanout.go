package notifier

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"statuswatch/internal/common"
	"statuswatch/internal/feed"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fanout delivers each incident change to an ordered list of sinks. One
// failing or panicking sink never blocks delivery to the remaining sinks.
type Fanout struct {
	sinks  []Sink
	logger zerolog.Logger
}

// NewFanout creates a fan-out over the given sinks, delivered in order.
func NewFanout(logger zerolog.Logger, sinks ...Sink) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: logger.With().Str("component", "Fanout").Logger(),
	}
}

// Notify delivers to every sink in order and joins their errors.
func (f *Fanout) Notify(ctx context.Context, feedName string, incident feed.Incident) error {
	var errs []error
	for i, sink := range f.sinks {
		if err := f.deliver(ctx, sink, i, feedName, incident); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// deliver invokes one sink with panic recovery. A panic is logged with the
// full stack and a correlation id, and surfaces as a sink error carrying the
// same id so logs can be found from the error message.
func (f *Fanout) deliver(ctx context.Context, sink Sink, index int, feedName string, incident feed.Incident) (err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			f.logger.Error().
				Str("correlation_id", correlationID).
				Int("sink_index", index).
				Str("feed", feedName).
				Str("incident_id", incident.ID).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(debug.Stack())).
				Msg("Sink panicked during delivery")
			err = common.NewSinkError(
				fmt.Sprintf("sink[%d]", index),
				fmt.Errorf("panic (correlation_id=%s): %v", correlationID, r),
			)
		}
	}()
	return sink.Notify(ctx, feedName, incident)
}
