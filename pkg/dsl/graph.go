package dsl

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/internal/runtime"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/registry"
	"github.com/aretw0/hfsm/pkg/states"
)

// graph is the pooled storage behind a Graph lease.
type graph struct {
	gen uint64

	name          string
	logger        *slog.Logger
	registry      *registry.Registry
	hooks         domain.Hooks
	eventCapacity int

	states     []domain.State
	stateNames []string
	index      map[domain.Key]int
	defaultIdx int
	edges      [][]runtime.Edge
	anyEdges   []runtime.Edge
}

func newGraph() *graph {
	g := &graph{index: make(map[domain.Key]int)}
	g.reset()
	return g
}

// clear drops the accumulated states and edges but keeps the options.
func (g *graph) clear() {
	clear(g.index)
	g.states = g.states[:0]
	g.stateNames = g.stateNames[:0]
	g.edges = g.edges[:0]
	g.anyEdges = g.anyEdges[:0]
	g.defaultIdx = -1
}

// reset restores the graph to a freshly pooled state.
func (g *graph) reset() {
	g.clear()
	g.name = "machine"
	g.logger = logging.NewNop()
	g.registry = nil
	g.hooks = domain.Hooks{}
	g.eventCapacity = domain.DefaultEventCapacity
}

// Graph is the permissive Builder.
//
// It never rejects a call. Every repair is logged as a warning:
//
//   - a nil state is replaced with an Empty state
//   - a state or transition without reference identity (see domain.Addressable) is
//     wrapped in a pointer; AddState returns the wrapper, which later calls must use
//   - an edge without a source becomes an any-edge
//   - an edge without a destination is dropped
//   - a state referenced by an edge or by SetDefaultState before registration is
//     registered on the fly, unless it has no reference identity, in which case the
//     edge or the default is dropped
//
// A Graph is a lease on pooled storage. Once Complete or Release returns, every method
// fails with domain.ErrBuilderReleased.
type Graph struct {
	g    *graph
	gen  uint64
	pool *Pool
}

var _ Builder = (*Graph)(nil)

// New acquires a Graph from the default pool.
func New(opts ...Option) *Graph {
	return defaultPool.Get(opts...)
}

func (b *Graph) live() (*graph, error) {
	if b == nil || b.g == nil || b.g.gen != b.gen {
		return nil, domain.ErrBuilderReleased
	}
	return b.g, nil
}

func (b *Graph) AddState(name string, s domain.State) (domain.State, error) {
	g, err := b.live()
	if err != nil {
		return nil, err
	}
	return g.addState(name, s), nil
}

func (g *graph) addState(name string, s domain.State) domain.State {
	if domain.IsNil(s) {
		g.logger.Warn("nil state replaced with an empty state", "machine", g.name, "state", name)
		s = states.NewEmpty()
	}
	if !domain.Addressable(s) {
		g.logger.Warn("state without reference identity wrapped in a pointer", "machine", g.name, "state", name)
		s = boxState(s)
	}

	key := domain.KeyOf(s)
	if idx, ok := g.index[key]; ok {
		g.logger.Warn("state registered twice, keeping the first registration",
			"machine", g.name, "state", g.stateNames[idx])
		return s
	}

	g.index[key] = len(g.states)
	g.states = append(g.states, s)
	g.stateNames = append(g.stateNames, name)
	g.edges = append(g.edges, nil)
	if g.defaultIdx < 0 {
		g.defaultIdx = len(g.states) - 1
	}
	return s
}

// lookup returns the index of s, registering it when unknown.
// It fails for states without reference identity since they can never be matched.
func (g *graph) lookup(s domain.State, role string) (int, bool) {
	if !domain.Addressable(s) {
		g.logger.Warn("state without reference identity cannot be referenced, use the state returned by AddState",
			"machine", g.name, "role", role)
		return -1, false
	}
	if idx, ok := g.index[domain.KeyOf(s)]; ok {
		return idx, true
	}
	g.logger.Warn("unregistered state referenced, registering it", "machine", g.name, "role", role)
	g.addState("", s)
	return g.index[domain.KeyOf(s)], true
}

// transition wraps t in a pointer when it has no reference identity.
func (g *graph) transition(t domain.Transition, name string) domain.Transition {
	if domain.Addressable(t) {
		return t
	}
	g.logger.Warn("transition without reference identity wrapped in a pointer", "machine", g.name, "transition", name)
	return boxTransition(t)
}

func (b *Graph) AddTransition(t domain.Transition, from, to domain.State, name string) error {
	g, err := b.live()
	if err != nil {
		return err
	}

	switch {
	case domain.IsNil(t):
		g.logger.Warn("nil transition dropped", "machine", g.name, "transition", name)
		return nil
	case domain.IsNil(to):
		g.logger.Warn("transition without destination dropped", "machine", g.name, "transition", name)
		return nil
	case domain.IsNil(from):
		g.logger.Warn("transition without source registered as an any-edge", "machine", g.name, "transition", name)
		g.addAny(t, to, name)
		return nil
	}

	fromIdx, ok := g.lookup(from, "from")
	if !ok {
		return nil
	}
	toIdx, ok := g.lookup(to, "to")
	if !ok {
		return nil
	}
	t = g.transition(t, name)
	g.edges[fromIdx] = append(g.edges[fromIdx], runtime.Edge{Transition: t, To: toIdx, Name: name})
	return nil
}

func (b *Graph) AddAnyTransition(t domain.Transition, to domain.State, name string) error {
	g, err := b.live()
	if err != nil {
		return err
	}

	switch {
	case domain.IsNil(t):
		g.logger.Warn("nil any-transition dropped", "machine", g.name, "transition", name)
		return nil
	case domain.IsNil(to):
		g.logger.Warn("any-transition without destination dropped", "machine", g.name, "transition", name)
		return nil
	}
	g.addAny(t, to, name)
	return nil
}

func (g *graph) addAny(t domain.Transition, to domain.State, name string) {
	toIdx, ok := g.lookup(to, "to")
	if !ok {
		return
	}
	t = g.transition(t, name)
	g.anyEdges = append(g.anyEdges, runtime.Edge{Transition: t, To: toIdx, Name: name})
}

func (b *Graph) SetDefaultState(s domain.State) error {
	g, err := b.live()
	if err != nil {
		return err
	}
	if domain.IsNil(s) {
		g.logger.Warn("nil default state ignored", "machine", g.name)
		return nil
	}
	if idx, ok := g.lookup(s, "default"); ok {
		g.defaultIdx = idx
	}
	return nil
}

// Complete compiles the machine and returns the graph to its pool.
// An empty graph gets a single Empty state.
func (b *Graph) Complete(params domain.BehaviourParameters) (*runtime.Machine, error) {
	g, err := b.live()
	if err != nil {
		return nil, err
	}
	if len(g.states) == 0 {
		g.logger.Warn("machine has no states, adding an empty one", "machine", g.name)
		g.addState("empty", states.NewEmpty())
	}

	m := runtime.New(g.definition(params))
	if g.registry != nil {
		if err := g.registry.Register(m); err != nil {
			b.release()
			return nil, err
		}
	}

	b.release()
	return m, nil
}

// definition copies the accumulated graph so the storage can be reused.
func (g *graph) definition(params domain.BehaviourParameters) runtime.Definition {
	edges := make([][]runtime.Edge, len(g.edges))
	for i, list := range g.edges {
		edges[i] = append([]runtime.Edge(nil), list...)
	}

	def := runtime.Definition{
		ID:            uuid.NewString(),
		Name:          g.name,
		States:        append([]domain.State(nil), g.states...),
		StateNames:    append([]string(nil), g.stateNames...),
		Default:       g.defaultIdx,
		Edges:         edges,
		Any:           append([]runtime.Edge(nil), g.anyEdges...),
		Params:        params,
		Logger:        g.logger,
		Hooks:         g.hooks,
		EventCapacity: g.eventCapacity,
	}
	if reg := g.registry; reg != nil {
		def.OnDestroy = func(m *runtime.Machine) { reg.Unregister(m.ID()) }
	}
	return def
}

func (b *Graph) Clear() error {
	g, err := b.live()
	if err != nil {
		return err
	}
	g.clear()
	return nil
}

func (b *Graph) Release() error {
	if _, err := b.live(); err != nil {
		return err
	}
	b.release()
	return nil
}

func (b *Graph) release() {
	g := b.g
	g.gen++
	g.reset()
	if b.pool != nil {
		b.pool.put(g)
	}
}
