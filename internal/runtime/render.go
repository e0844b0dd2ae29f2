package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// ID returns the identifier assigned at construction.
func (m *Machine) ID() string { return m.id }

// Name returns the display name of the machine.
func (m *Machine) Name() string { return m.name }

// Tick returns the number of Update calls processed while enabled.
func (m *Machine) Tick() uint64 { return m.tick }

// Enabled reports whether the machine is enabled.
func (m *Machine) Enabled() bool { return m.enabled }

// Destroyed reports whether Destroy was called.
func (m *Machine) Destroyed() bool { return m.destroyed }

// Params returns the behaviour parameters the machine was compiled with.
func (m *Machine) Params() domain.BehaviourParameters { return m.params }

// Events returns the machine event log. It only fills up when debug logging is on.
func (m *Machine) Events() *events.Log { return m.log }

// States returns every registered state in registration order.
func (m *Machine) States() []domain.State {
	return append([]domain.State(nil), m.states...)
}

// DefaultState returns the state entered on the first Enable.
func (m *Machine) DefaultState() domain.State {
	return m.states[m.defaultIdx]
}

// Current returns the active state, or nil before the first Enable.
func (m *Machine) Current() domain.State {
	if m.current < 0 {
		return nil
	}
	return m.states[m.current]
}

// TransitionsFrom returns the from-specific edges of s in evaluation order.
func (m *Machine) TransitionsFrom(s domain.State) []domain.TransitionMapping {
	idx, ok := m.index[domain.KeyOf(s)]
	if !ok {
		return nil
	}
	return m.mappings(m.edges[idx])
}

// AnyTransitions returns the any-edges in evaluation order.
func (m *Machine) AnyTransitions() []domain.TransitionMapping {
	return m.mappings(m.anyEdges)
}

func (m *Machine) mappings(list []Edge) []domain.TransitionMapping {
	out := make([]domain.TransitionMapping, len(list))
	for i, e := range list {
		out[i] = domain.TransitionMapping{
			Transition: e.Transition,
			To:         m.states[e.To],
			Name:       e.Name,
		}
	}
	return out
}

// StateName returns the label given to s at build time, or a positional fallback.
func (m *Machine) StateName(s domain.State) string {
	idx, ok := m.index[domain.KeyOf(s)]
	if !ok {
		return fmt.Sprintf("%T", s)
	}
	return m.nameOf(idx)
}

// TransitionName returns the first label given to t at build time.
func (m *Machine) TransitionName(t domain.Transition) string {
	return m.edgeNames[domain.KeyOf(t)]
}

func (m *Machine) nameOf(idx int) string {
	if idx < 0 {
		return ""
	}
	if idx < len(m.stateNames) && m.stateNames[idx] != "" {
		return m.stateNames[idx]
	}
	return fmt.Sprintf("state-%d", idx)
}

// String renders the active state path through nested machines, e.g. "patrol/alert/search".
func (m *Machine) String() string {
	if m.current < 0 {
		return "<inactive>"
	}
	var sb strings.Builder
	sb.WriteString(m.nameOf(m.current))
	if n, ok := m.states[m.current].(domain.Nester); ok {
		if nested, ok := n.Nested().(fmt.Stringer); ok {
			sb.WriteString("/")
			sb.WriteString(nested.String())
		}
	}
	return sb.String()
}

var _ domain.Inspector = (*Machine)(nil)
var _ domain.Lifecycle = (*Machine)(nil)
