package ports

import (
	"context"

	"github.com/aretw0/hfsm/pkg/events"
)

// EventSink receives the events drained from a machine after each tick.
type EventSink interface {
	// Publish stores entries for the given machine, preserving their order.
	Publish(ctx context.Context, machineID string, entries []events.Entry) error
}

// EventReader reads back published events.
type EventReader interface {
	// Read returns every entry published for machineID, oldest first.
	// An unknown machine yields an empty slice.
	Read(ctx context.Context, machineID string) ([]events.Entry, error)
}
