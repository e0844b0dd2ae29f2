package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/hfsm/pkg/domain"
)

// Registry tracks the live machines of a runtime.
// Machines are added when a builder completes and removed when they are destroyed.
type Registry struct {
	mu       sync.RWMutex
	machines map[string]domain.Inspector
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		machines: make(map[string]domain.Inspector),
	}
}

// Register adds a machine to the registry.
// It fails if a different machine is already registered under the same ID.
func (r *Registry) Register(m domain.Inspector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.machines[m.ID()]; ok && existing != m {
		return fmt.Errorf("machine id already registered: %s", m.ID())
	}
	r.machines[m.ID()] = m
	return nil
}

// Unregister removes the machine with the given ID. Unknown IDs are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, id)
}

// Get looks up a machine by ID.
func (r *Registry) Get(id string) (domain.Inspector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.machines[id]
	return m, ok
}

// List returns the registered machines ordered by name, then ID.
func (r *Registry) List() []domain.Inspector {
	r.mu.RLock()
	out := make([]domain.Inspector, 0, len(r.machines))
	for _, m := range r.machines {
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Len returns the number of live machines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.machines)
}
