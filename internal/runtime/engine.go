package runtime

import (
	"log/slog"

	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// Edge is a compiled transition mapping. To indexes Definition.States.
type Edge struct {
	Transition domain.Transition
	To         int
	Name       string
}

// Definition is the compiled graph handed over by the builder.
type Definition struct {
	ID   string
	Name string

	States     []domain.State
	StateNames []string
	Default    int

	// Edges holds the from-specific edges of each state, indexed like States.
	Edges [][]Edge
	Any   []Edge

	Params        domain.BehaviourParameters
	Logger        *slog.Logger
	Hooks         domain.Hooks
	EventCapacity int

	// OnDestroy runs once when the machine is destroyed.
	OnDestroy func(*Machine)
}

// Machine is the state machine execution engine.
//
// The graph is immutable after construction; only Enable, Disable, Update and
// Destroy change the active state. A Machine is not safe for concurrent use.
type Machine struct {
	id     string
	name   string
	logger *slog.Logger
	hooks  domain.Hooks
	params domain.BehaviourParameters

	states     []domain.State
	stateNames []string
	index      map[domain.Key]int
	defaultIdx int
	edges      [][]Edge
	anyEdges   []Edge
	edgeNames  map[domain.Key]string

	current   int
	enabled   bool
	destroyed bool
	tick      uint64

	log       *events.Log
	onDestroy func(*Machine)
}

// New creates a machine from a compiled definition.
func New(def Definition) *Machine {
	logger := def.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	m := &Machine{
		id:         def.ID,
		name:       def.Name,
		logger:     logger,
		hooks:      def.Hooks,
		params:     def.Params,
		states:     def.States,
		stateNames: def.StateNames,
		index:      make(map[domain.Key]int, len(def.States)),
		defaultIdx: def.Default,
		edges:      def.Edges,
		anyEdges:   def.Any,
		edgeNames:  make(map[domain.Key]string),
		current:    -1,
		log:        events.NewLog(def.EventCapacity),
		onDestroy:  def.OnDestroy,
	}
	if len(m.edges) < len(m.states) {
		edges := make([][]Edge, len(m.states))
		copy(edges, m.edges)
		m.edges = edges
	}
	for i, s := range m.states {
		m.index[domain.KeyOf(s)] = i
	}
	for _, list := range m.edges {
		m.nameEdges(list)
	}
	m.nameEdges(m.anyEdges)
	return m
}

func (m *Machine) nameEdges(list []Edge) {
	for _, e := range list {
		if e.Name == "" {
			continue
		}
		key := domain.KeyOf(e.Transition)
		if _, ok := m.edgeNames[key]; !ok {
			m.edgeNames[key] = e.Name
		}
	}
}

// Enable activates the machine and enters the active state.
//
// On an enabled machine it does nothing unless RedundantEnableIsReset is set, in which
// case the active state is exited first. The active state becomes the default state
// when none was active yet or ResetToDefaultOnEnable is set.
func (m *Machine) Enable() error {
	if m.destroyed {
		return domain.ErrMachineDestroyed
	}
	if m.enabled {
		if !m.params.RedundantEnableIsReset {
			return nil
		}
		m.enabled = false
		if err := m.exitState(m.current); err != nil {
			return err
		}
	}
	if m.current < 0 || m.params.ResetToDefaultOnEnable {
		m.current = m.defaultIdx
	}
	m.enabled = true
	return m.enterState(m.current, nil, "")
}

// Disable exits the active state and suspends the machine.
// The active state is kept, so a later Enable without reset resumes it.
func (m *Machine) Disable() error {
	if m.destroyed {
		return domain.ErrMachineDestroyed
	}
	if !m.enabled {
		return nil
	}
	m.enabled = false
	return m.exitState(m.current)
}

// Update advances the machine by one tick.
//
// Transitions are evaluated before and after the active state's Update. At most
// domain.MaxTransitionPasses transitions are taken within one call.
func (m *Machine) Update(delta float64) error {
	if m.destroyed {
		return domain.ErrMachineDestroyed
	}
	if !m.enabled {
		return nil
	}
	m.tick++

	budget := domain.MaxTransitionPasses
	if err := m.evaluate(&budget); err != nil {
		return err
	}

	m.record(domain.EventUpdate, m.current, nil, "")
	if err := m.states[m.current].Update(delta); err != nil {
		return err
	}

	if err := m.evaluate(&budget); err != nil {
		return err
	}
	if budget == 0 && m.ready() {
		m.logger.Warn("transition budget exhausted with an edge still ready",
			"machine", m.name,
			"state", m.nameOf(m.current),
			"passes", domain.MaxTransitionPasses)
	}
	return nil
}
