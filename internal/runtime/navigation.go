package runtime

import "github.com/aretw0/hfsm/pkg/domain"

// evaluate runs transition passes until one takes no edge or the budget is spent.
func (m *Machine) evaluate(budget *int) error {
	for *budget > 0 {
		moved, err := m.pass()
		if err != nil || !moved {
			return err
		}
		*budget--
	}
	return nil
}

// ready reports whether the next pass would take an edge. It only queries predicates.
func (m *Machine) ready() bool {
	for _, e := range m.edges[m.current] {
		if e.Transition.ShouldTransition() {
			return true
		}
	}
	for _, e := range m.anyEdges {
		if e.To != m.current && e.Transition.ShouldTransition() {
			return true
		}
	}
	return false
}

// pass takes at most one edge.
// Priority 1: from-specific edges of the active state, in registration order.
// Priority 2: any-edges not pointing at the active state, in registration order.
func (m *Machine) pass() (bool, error) {
	from := m.current

	for _, e := range m.edges[from] {
		if e.Transition.ShouldTransition() {
			return true, m.traverse(from, e)
		}
	}

	for _, e := range m.anyEdges {
		if e.To == from {
			continue
		}
		if e.Transition.ShouldTransition() {
			return true, m.traverse(from, e)
		}
	}

	return false, nil
}

// traverse exits from, switches to the destination, notifies the transition and enters.
func (m *Machine) traverse(from int, e Edge) error {
	if err := m.exitState(from); err != nil {
		return err
	}

	m.current = e.To
	m.emitTransition(from, e)
	e.Transition.PassThrough()

	return m.enterState(e.To, e.Transition, e.Name)
}

func (m *Machine) enterState(idx int, t domain.Transition, tName string) error {
	m.record(domain.EventEnter, idx, t, tName)
	m.notify(m.hooks.OnEnter, domain.EventEnter, idx)
	return m.states[idx].Enter()
}

func (m *Machine) exitState(idx int) error {
	m.record(domain.EventExit, idx, nil, "")
	m.notify(m.hooks.OnExit, domain.EventExit, idx)
	return m.states[idx].Exit()
}
