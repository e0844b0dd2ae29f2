package runtime

import "github.com/aretw0/hfsm/pkg/domain"

// Destroy releases every state and transition of the machine.
//
// States are destroyed in registration order, each after the transitions of its
// from-specific edges; any-edge transitions follow. Every instance is destroyed once,
// even when shared between edges. Wrapper transitions are traversed rather than
// destroyed themselves. Calling Destroy again is a no-op.
//
// Nested machines reachable through Nester or parallel states share the parent's
// record of destroyed instances, so a transition used across the tree is destroyed once.
func (m *Machine) Destroy() error {
	return m.destroy(make(map[domain.Key]struct{}))
}

func (m *Machine) destroy(seen map[domain.Key]struct{}) error {
	if m.destroyed {
		return nil
	}
	m.destroyed = true
	m.enabled = false
	if m.onDestroy != nil {
		defer m.onDestroy(m)
	}

	for i, s := range m.states {
		for _, e := range m.edges[i] {
			destroyTransition(e.Transition, seen)
		}
		key := domain.KeyOf(s)
		if _, done := seen[key]; done {
			continue
		}
		seen[key] = struct{}{}
		for _, nested := range nestedMachines(s) {
			if err := nested.destroy(seen); err != nil {
				return err
			}
		}
		if err := s.Destroy(); err != nil {
			return err
		}
	}
	for _, e := range m.anyEdges {
		destroyTransition(e.Transition, seen)
	}

	m.logger.Debug("machine destroyed", "machine", m.name, "id", m.id)
	return nil
}

func destroyTransition(t domain.Transition, seen map[domain.Key]struct{}) {
	key := domain.KeyOf(t)
	if _, done := seen[key]; done {
		return
	}
	seen[key] = struct{}{}

	if w, ok := t.(domain.Wrapper); ok {
		for _, inner := range w.Unwrap() {
			destroyTransition(inner, seen)
		}
		return
	}
	t.Destroy()
}

type parallel interface {
	Substates() []domain.State
}

// nestedMachines returns the machines driven by s, looking through parallel states.
func nestedMachines(s domain.State) []*Machine {
	switch v := s.(type) {
	case domain.Nester:
		if m, ok := v.Nested().(*Machine); ok {
			return []*Machine{m}
		}
	case parallel:
		var out []*Machine
		for _, sub := range v.Substates() {
			out = append(out, nestedMachines(sub)...)
		}
		return out
	}
	return nil
}
