package runner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
	"github.com/aretw0/hfsm/pkg/ports"
)

// Machine is what a Driver needs from a compiled machine.
type Machine interface {
	ports.Machine
	domain.Lifecycle
}

// Triggers resolves named triggers. A compiler.Result satisfies it.
type Triggers interface {
	Trigger(name string) error
	Triggers() []string
}

// Driver owns a machine and serializes every access to it.
//
// Ticks, queued triggers and inspections all run under one lock, so a Driver can be
// shared between the ticking goroutine and readers such as the debug server.
type Driver struct {
	mu      sync.Mutex
	machine Machine
	pending []string

	triggers Triggers
	interval time.Duration
	delta    float64
	sinks    []ports.EventSink
	observer func(tick uint64, entries []events.Entry)
	logger   *slog.Logger
}

var _ ports.Controller = (*Driver)(nil)

// NewDriver creates a driver for m.
func NewDriver(m Machine, opts ...Option) *Driver {
	d := &Driver{
		machine:  m,
		interval: DefaultInterval,
		delta:    -1,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.delta < 0 {
		d.delta = d.interval.Seconds()
	}
	return d
}

func (d *Driver) ID() string   { return d.machine.ID() }
func (d *Driver) Name() string { return d.machine.Name() }

// Start enables the machine if it is not enabled yet.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.machine.Enabled() {
		return nil
	}
	return d.machine.Enable()
}

// Trigger queues a named trigger applied right before the next Update.
func (d *Driver) Trigger(name string) error {
	if d.triggers == nil || !slices.Contains(d.triggers.Triggers(), name) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTrigger, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, name)
	return nil
}

// Triggers lists the trigger names the machine understands.
func (d *Driver) Triggers() []string {
	if d.triggers == nil {
		return nil
	}
	return d.triggers.Triggers()
}

// Inspect runs fn while the machine is not being ticked.
func (d *Driver) Inspect(fn func(m ports.Machine)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.machine)
}

// Tick applies queued triggers, updates the machine once and forwards the drained
// events to every sink.
func (d *Driver) Tick(ctx context.Context) error {
	d.mu.Lock()
	for _, name := range d.pending {
		if err := d.triggers.Trigger(name); err != nil {
			d.logger.Warn("queued trigger rejected", "machine", d.machine.Name(), "trigger", name, "err", err)
		}
	}
	d.pending = d.pending[:0]

	err := d.machine.Update(d.delta)
	tick := d.machine.Tick()
	entries := d.machine.Events().Drain()
	d.mu.Unlock()

	if err != nil {
		return fmt.Errorf("tick %d: %w", tick, err)
	}

	if d.observer != nil {
		d.observer(tick, entries)
	}
	return d.publish(ctx, entries)
}

func (d *Driver) publish(ctx context.Context, entries []events.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, sink := range d.sinks {
		if err := sink.Publish(ctx, d.machine.ID(), entries); err != nil {
			return fmt.Errorf("failed to publish events: %w", err)
		}
	}
	return nil
}

// Run starts the machine and ticks it every interval until ctx is cancelled.
// Cancellation disables the machine and returns nil.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}

	// Events recorded by Enable are published before the first tick.
	d.mu.Lock()
	initial := d.machine.Events().Drain()
	d.mu.Unlock()
	if d.observer != nil {
		d.observer(0, initial)
	}
	if err := d.publish(ctx, initial); err != nil {
		return err
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("driver started", "machine", d.machine.Name(), "interval", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("driver stopping", "machine", d.machine.Name(), "tick", d.machine.Tick())
			d.mu.Lock()
			defer d.mu.Unlock()
			return d.machine.Disable()
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Close destroys the machine.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.machine.Destroy()
}
