package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/hfsm/pkg/events"
	"github.com/aretw0/hfsm/pkg/ports"
)

// DefaultInterval is the tick period used by Run when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithInterval sets the wall-clock period between ticks in Run.
func WithInterval(interval time.Duration) Option {
	return func(d *Driver) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithDelta sets the delta in seconds passed to every Update.
// By default it matches the interval.
func WithDelta(seconds float64) Option {
	return func(d *Driver) {
		d.delta = seconds
	}
}

// WithTriggers sets the table resolving named triggers.
func WithTriggers(t Triggers) Option {
	return func(d *Driver) {
		d.triggers = t
	}
}

// WithSinks adds event sinks receiving the events drained after each tick.
func WithSinks(sinks ...ports.EventSink) Option {
	return func(d *Driver) {
		d.sinks = append(d.sinks, sinks...)
	}
}

// WithObserver registers a callback invoked after each tick with the drained events.
// It runs on the ticking goroutine, outside the driver lock.
func WithObserver(fn func(tick uint64, entries []events.Entry)) Option {
	return func(d *Driver) {
		d.observer = fn
	}
}
