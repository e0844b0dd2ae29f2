package memory

import (
	"context"
	"sync"

	"github.com/aretw0/hfsm/pkg/events"
)

// Sink implements ports.EventSink and ports.EventReader in memory.
// Safe for concurrent use.
type Sink struct {
	data map[string][]events.Entry
	mu   sync.RWMutex
}

// NewSink creates a new in-memory sink.
func NewSink() *Sink {
	return &Sink{
		data: make(map[string][]events.Entry),
	}
}

// Publish appends copies of entries to the machine history.
func (s *Sink) Publish(ctx context.Context, machineID string, entries []events.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[machineID] = append(s.data[machineID], entries...)
	return nil
}

// Read returns a copy of the machine history.
func (s *Sink) Read(ctx context.Context, machineID string) ([]events.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Entry(nil), s.data[machineID]...), nil
}

// Machines lists the IDs of machines with a recorded history.
func (s *Sink) Machines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids
}
