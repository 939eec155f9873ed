package profiler

import (
	"log"
	"time"
)

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a stats line is logged.
//
// Parameters:
//   - interval: time between log lines
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the destination logger. Pass nil to count frames without logging.
//
// Parameters:
//   - logger: the destination logger, or nil
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithClock replaces time.Now as the profiler's time source.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}
