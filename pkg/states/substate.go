package states

import "github.com/aretw0/hfsm/pkg/domain"

// Substate drives a nested machine as a single state of its parent.
//
// Enter enables the nested machine, Exit disables it, Update forwards the delta and
// Destroy destroys it. The nested machine keeps its own default state and graph.
type Substate struct {
	machine domain.Lifecycle
}

// NewSubstate wraps m.
func NewSubstate(m domain.Lifecycle) *Substate {
	return &Substate{machine: m}
}

// Nested returns the wrapped machine.
func (s *Substate) Nested() domain.Lifecycle {
	return s.machine
}

func (s *Substate) Enter() error               { return s.machine.Enable() }
func (s *Substate) Update(delta float64) error { return s.machine.Update(delta) }
func (s *Substate) Exit() error                { return s.machine.Disable() }
func (s *Substate) Destroy() error             { return s.machine.Destroy() }
