// Package scheduler runs the configured monitors concurrently and owns their
// shared lifecycle.
package scheduler

import (
	"context"
	"sync"
	"time"

	"statuswatch/internal/common"

	"github.com/rs/zerolog"
)

// Runner is one independently schedulable polling loop. *monitor.Monitor is
// the production implementation.
type Runner interface {
	Name() string
	Run(ctx context.Context)
}

// Scheduler starts every runner in its own goroutine under one shared
// context. Runners are expected to spend nearly all their time suspended in
// network waits or sleeps, so adding monitors adds goroutines, not threads.
type Scheduler struct {
	runners     []Runner
	startSpread time.Duration
	logger      zerolog.Logger
}

// New creates a Scheduler. Configuration problems surface here, at
// construction; nothing that happens inside a running monitor ever does.
func New(runners []Runner, startSpread time.Duration, logger zerolog.Logger) (*Scheduler, error) {
	if len(runners) == 0 {
		return nil, common.NewValidationError("monitors", nil, "at least one monitor is required")
	}

	seen := make(map[string]struct{}, len(runners))
	for _, runner := range runners {
		name := runner.Name()
		if name == "" {
			return nil, common.NewValidationError("monitors", name, "monitor names must not be empty")
		}
		if _, dup := seen[name]; dup {
			return nil, common.NewValidationError("monitors", name, "monitor names must be unique")
		}
		seen[name] = struct{}{}
	}

	return &Scheduler{
		runners:     runners,
		startSpread: startSpread,
		logger:      logger.With().Str("component", "Scheduler").Logger(),
	}, nil
}

// Run starts all runners and blocks until every one of them has returned
// after ctx is cancelled. When a start spread is configured, runner i waits
// i*spread before its first poll so feeds do not all fire at the same
// instant.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info().Int("monitors", len(s.runners)).Dur("start_spread", s.startSpread).Msg("Starting monitors")

	var wg sync.WaitGroup
	for i, runner := range s.runners {
		wg.Add(1)
		go func(idx int, r Runner) {
			defer wg.Done()

			if delay := time.Duration(idx) * s.startSpread; delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}
			r.Run(ctx)
		}(i, runner)
	}

	wg.Wait()
	s.logger.Info().Msg("All monitors stopped")
}
