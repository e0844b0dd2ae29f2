package runtime_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/aretw0/hfsm/internal/runtime"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/states"
	"github.com/aretw0/hfsm/pkg/transitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journal records lifecycle calls across states.
type journal struct {
	calls []string
}

func (j *journal) add(format string, args ...any) {
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

type recState struct {
	name     string
	j        *journal
	enterErr error
	onUpdate func()
}

func (s *recState) Enter() error {
	s.j.add("enter %s", s.name)
	return s.enterErr
}

func (s *recState) Update(delta float64) error {
	s.j.add("update %s", s.name)
	if s.onUpdate != nil {
		s.onUpdate()
	}
	return nil
}

func (s *recState) Exit() error {
	s.j.add("exit %s", s.name)
	return nil
}

func (s *recState) Destroy() error {
	s.j.add("destroy %s", s.name)
	return nil
}

type recTransition struct {
	name string
	j    *journal
	fire bool
}

func (t *recTransition) ShouldTransition() bool { return t.fire }
func (t *recTransition) PassThrough()           { t.j.add("pass %s", t.name) }
func (t *recTransition) Destroy()               { t.j.add("destroy %s", t.name) }

func newStates(j *journal, names ...string) ([]domain.State, []*recState) {
	out := make([]domain.State, len(names))
	recs := make([]*recState, len(names))
	for i, n := range names {
		recs[i] = &recState{name: n, j: j}
		out[i] = recs[i]
	}
	return out, recs
}

func TestMachine_EnableEntersDefault(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "idle", "moving")

	m := runtime.New(runtime.Definition{
		States:     states,
		StateNames: []string{"idle", "moving"},
		Edges:      make([][]runtime.Edge, 2),
		Params:     domain.DefaultBehaviour(),
	})

	assert.Nil(t, m.Current())
	require.NoError(t, m.Update(0.1))
	assert.Empty(t, j.calls, "update before enable must be a no-op")

	require.NoError(t, m.Enable())
	assert.Equal(t, states[0], m.Current())
	assert.Equal(t, []string{"enter idle"}, j.calls)
	assert.Equal(t, "idle", m.String())
}

func TestMachine_UpdateOrder(t *testing.T) {
	j := &journal{}
	states, recs := newStates(j, "idle", "moving")
	go1 := &recTransition{name: "go", j: j}

	m := runtime.New(runtime.Definition{
		States: states,
		Edges: [][]runtime.Edge{
			{{Transition: go1, To: 1}},
			nil,
		},
		Params: domain.DefaultBehaviour(),
	})
	require.NoError(t, m.Enable())

	// The transition fires during idle's Update, so it is taken in the post-update pass.
	recs[0].onUpdate = func() { go1.fire = true }
	require.NoError(t, m.Update(0.1))
	go1.fire = false

	assert.Equal(t, []string{
		"enter idle",
		"update idle",
		"exit idle",
		"pass go",
		"enter moving",
	}, j.calls)
	assert.Equal(t, states[1], m.Current())
	assert.EqualValues(t, 1, m.Tick())
}

func TestMachine_FromEdgesBeatAnyEdges(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b", "c")
	specific := &recTransition{name: "specific", j: j, fire: true}
	anyEdge := &recTransition{name: "any", j: j, fire: true}

	m := runtime.New(runtime.Definition{
		States: states,
		Edges: [][]runtime.Edge{
			{{Transition: specific, To: 1}},
			nil,
			nil,
		},
		Any:    []runtime.Edge{{Transition: anyEdge, To: 2}},
		Params: domain.DefaultBehaviour(),
	})
	require.NoError(t, m.Enable())

	// Both fire on every pass, so the cap applies; the first pass must take the specific edge.
	require.NoError(t, m.Update(0))
	assert.Equal(t, "exit a", j.calls[1])
	assert.Equal(t, "pass specific", j.calls[2])
	assert.Equal(t, "enter b", j.calls[3])
	assert.Equal(t, "pass any", j.calls[5])
}

func TestMachine_AnyEdgeSkipsSelfLoop(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	toA := &recTransition{name: "to-a", j: j, fire: true}

	m := runtime.New(runtime.Definition{
		States: states,
		Edges:  make([][]runtime.Edge, 2),
		Any:    []runtime.Edge{{Transition: toA, To: 0}},
		Params: domain.DefaultBehaviour(),
	})
	require.NoError(t, m.Enable())
	require.NoError(t, m.Update(0))

	assert.Equal(t, []string{"enter a", "update a"}, j.calls)
}

func TestMachine_PassCap(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	always := transitions.Always()

	var taken int
	m := runtime.New(runtime.Definition{
		States: states,
		Edges: [][]runtime.Edge{
			{{Transition: always, To: 1}},
			{{Transition: always, To: 0}},
		},
		Params: domain.DefaultBehaviour(),
		Hooks: domain.Hooks{
			OnTransition: func(*domain.MachineEvent) { taken++ },
		},
	})
	require.NoError(t, m.Enable())
	require.NoError(t, m.Update(0))

	assert.Equal(t, domain.MaxTransitionPasses, taken)
	// Eight passes from a end on a, and the state update still runs once.
	assert.Equal(t, states[0], m.Current())
	assert.Contains(t, j.calls, "update a")
}

func TestMachine_BudgetWarning(t *testing.T) {
	chain := func(n int) (*runtime.Machine, *bytes.Buffer) {
		j := &journal{}
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("s%d", i)
		}
		states, _ := newStates(j, names...)
		edges := make([][]runtime.Edge, n)
		for i := 0; i < n-1; i++ {
			edges[i] = []runtime.Edge{{Transition: transitions.Always(), To: i + 1}}
		}
		var buf bytes.Buffer
		return runtime.New(runtime.Definition{
			Name:   "chain",
			States: states,
			Edges:  edges,
			Params: domain.DefaultBehaviour(),
			Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		}), &buf
	}

	t.Run("exact budget stays quiet", func(t *testing.T) {
		m, buf := chain(domain.MaxTransitionPasses + 1)
		require.NoError(t, m.Enable())
		require.NoError(t, m.Update(0))

		assert.Equal(t, m.States()[domain.MaxTransitionPasses], m.Current())
		assert.NotContains(t, buf.String(), "budget exhausted")
	})

	t.Run("edge left ready warns", func(t *testing.T) {
		m, buf := chain(domain.MaxTransitionPasses + 2)
		require.NoError(t, m.Enable())
		require.NoError(t, m.Update(0))

		assert.Equal(t, m.States()[domain.MaxTransitionPasses], m.Current())
		assert.Contains(t, buf.String(), "budget exhausted")
	})
}

func TestMachine_EnableIdempotency(t *testing.T) {
	tests := []struct {
		name   string
		params domain.BehaviourParameters
		want   []string
	}{
		{
			name:   "redundant enable ignored",
			params: domain.BehaviourParameters{ResetToDefaultOnEnable: true},
			want:   []string{"enter a"},
		},
		{
			name:   "redundant enable resets",
			params: domain.BehaviourParameters{ResetToDefaultOnEnable: true, RedundantEnableIsReset: true},
			want:   []string{"enter a", "exit a", "enter a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &journal{}
			states, _ := newStates(j, "a")
			m := runtime.New(runtime.Definition{
				States: states,
				Edges:  make([][]runtime.Edge, 1),
				Params: tt.params,
			})
			require.NoError(t, m.Enable())
			require.NoError(t, m.Enable())
			assert.Equal(t, tt.want, j.calls)
		})
	}
}

func TestMachine_ResumeWithoutReset(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	trig := transitions.NewTriggered()

	m := runtime.New(runtime.Definition{
		States: states,
		Edges:  [][]runtime.Edge{{{Transition: trig, To: 1}}, nil},
		Params: domain.BehaviourParameters{},
	})
	require.NoError(t, m.Enable())
	trig.Trigger()
	require.NoError(t, m.Update(0))
	require.Equal(t, states[1], m.Current())

	require.NoError(t, m.Disable())
	assert.False(t, m.Enabled())
	assert.Equal(t, states[1], m.Current(), "disable keeps the active state")

	require.NoError(t, m.Enable())
	assert.Equal(t, states[1], m.Current())
	assert.Equal(t, "enter b", j.calls[len(j.calls)-1])
}

func TestMachine_ResetOnEnable(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	trig := transitions.NewTriggered()

	m := runtime.New(runtime.Definition{
		States: states,
		Edges:  [][]runtime.Edge{{{Transition: trig, To: 1}}, nil},
		Params: domain.DefaultBehaviour(),
	})
	require.NoError(t, m.Enable())
	trig.Trigger()
	require.NoError(t, m.Update(0))
	require.NoError(t, m.Disable())
	require.NoError(t, m.Enable())

	assert.Equal(t, states[0], m.Current())
}

func TestMachine_DisableWhenDisabled(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a")
	m := runtime.New(runtime.Definition{States: states, Params: domain.DefaultBehaviour()})

	require.NoError(t, m.Disable())
	assert.Empty(t, j.calls)
}

func TestMachine_ErrorPropagation(t *testing.T) {
	j := &journal{}
	states, recs := newStates(j, "a", "b")
	boom := errors.New("boom")
	recs[1].enterErr = boom
	trig := transitions.NewTriggered()

	m := runtime.New(runtime.Definition{
		States: states,
		Edges:  [][]runtime.Edge{{{Transition: trig, To: 1}}, nil},
		Params: domain.DefaultBehaviour(),
	})
	require.NoError(t, m.Enable())
	trig.Trigger()

	err := m.Update(0)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, states[1], m.Current(), "no rollback after a failed enter")
}

func TestMachine_DestroyOnce(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	shared := &recTransition{name: "shared", j: j}
	inverted := transitions.Invert(shared)
	other := &recTransition{name: "other", j: j}

	var unregistered int
	m := runtime.New(runtime.Definition{
		States: states,
		Edges: [][]runtime.Edge{
			{{Transition: shared, To: 1}},
			{{Transition: inverted, To: 0}, {Transition: shared, To: 0}},
		},
		Any:       []runtime.Edge{{Transition: other, To: 0}, {Transition: inverted, To: 1}},
		Params:    domain.DefaultBehaviour(),
		OnDestroy: func(*runtime.Machine) { unregistered++ },
	})

	require.NoError(t, m.Destroy())
	require.NoError(t, m.Destroy())

	assert.Equal(t, []string{
		"destroy shared",
		"destroy a",
		"destroy b",
		"destroy other",
	}, j.calls)
	assert.Equal(t, 1, unregistered)
	assert.True(t, m.Destroyed())
	assert.ErrorIs(t, m.Enable(), domain.ErrMachineDestroyed)
	assert.ErrorIs(t, m.Update(0), domain.ErrMachineDestroyed)
}

func TestMachine_DestroySharesAcrossNesting(t *testing.T) {
	j := &journal{}
	shared := &recTransition{name: "shared", j: j}

	innerStates, _ := newStates(j, "search", "found")
	inner := runtime.New(runtime.Definition{
		Name:   "inner",
		States: innerStates,
		Edges:  [][]runtime.Edge{{{Transition: shared, To: 1}}, nil},
		Params: domain.DefaultBehaviour(),
	})
	outerStates, _ := newStates(j, "idle")
	outer := runtime.New(runtime.Definition{
		Name:   "outer",
		States: []domain.State{outerStates[0], states.NewParallel(&nested{m: inner})},
		Edges:  [][]runtime.Edge{{{Transition: shared, To: 1}}, nil},
		Params: domain.DefaultBehaviour(),
	})

	require.NoError(t, outer.Destroy())

	assert.Equal(t, []string{
		"destroy shared",
		"destroy idle",
		"destroy search",
		"destroy found",
	}, j.calls)
	assert.True(t, inner.Destroyed())
}

func TestMachine_Hooks(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	trig := transitions.NewTriggered()

	var seen []string
	record := func(e *domain.MachineEvent) {
		seen = append(seen, fmt.Sprintf("%s %s %s", e.Kind, e.StateName, e.TransitionName))
	}
	m := runtime.New(runtime.Definition{
		ID:         "m-1",
		Name:       "door",
		States:     states,
		StateNames: []string{"closed", "open"},
		Edges:      [][]runtime.Edge{{{Transition: trig, To: 1, Name: "push"}}, nil},
		Params:     domain.DefaultBehaviour(),
		Hooks:      domain.Hooks{OnEnter: record, OnExit: record, OnTransition: record},
	})
	require.NoError(t, m.Enable())
	trig.Trigger()
	require.NoError(t, m.Update(0))

	assert.Equal(t, []string{
		"enter closed ",
		"exit closed ",
		"transition open push",
		"enter open ",
	}, seen)
	assert.Equal(t, "push", m.TransitionName(trig))
}

func TestMachine_DebugEvents(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	trig := transitions.NewTriggered()

	params := domain.DefaultBehaviour()
	params.DebugLogging = true
	m := runtime.New(runtime.Definition{
		States:        states,
		StateNames:    []string{"a", "b"},
		Edges:         [][]runtime.Edge{{{Transition: trig, To: 1, Name: "go"}}, nil},
		Params:        params,
		EventCapacity: 10,
	})
	require.NoError(t, m.Enable())
	require.NoError(t, m.Update(0))
	require.NoError(t, m.Update(0))
	trig.Trigger()
	require.NoError(t, m.Update(0))

	entries := m.Events().Snapshot()
	require.Len(t, entries, 5)
	assert.Equal(t, domain.EventEnter, entries[0].Kind)
	assert.Equal(t, domain.EventUpdate, entries[1].Kind)
	assert.Equal(t, 2, entries[1].Repeat, "consecutive identical updates coalesce")
	assert.Equal(t, domain.EventExit, entries[2].Kind)
	assert.Equal(t, domain.EventEnter, entries[3].Kind)
	assert.Equal(t, "b", entries[3].StateName)
	assert.Equal(t, "go", entries[3].TransitionName)
	assert.Equal(t, domain.EventUpdate, entries[4].Kind)
}

func TestMachine_Introspection(t *testing.T) {
	j := &journal{}
	states, _ := newStates(j, "a", "b")
	trig := transitions.NewTriggered()
	always := transitions.Always()

	m := runtime.New(runtime.Definition{
		States:     states,
		StateNames: []string{"a"},
		Default:    1,
		Edges:      [][]runtime.Edge{{{Transition: trig, To: 1}}, nil},
		Any:        []runtime.Edge{{Transition: always, To: 0, Name: "reset"}},
		Params:     domain.DefaultBehaviour(),
	})

	assert.Equal(t, states, m.States())
	assert.Equal(t, states[1], m.DefaultState())
	assert.Equal(t, "state-1", m.StateName(states[1]))

	from := m.TransitionsFrom(states[0])
	require.Len(t, from, 1)
	assert.Equal(t, states[1], from[0].To)
	assert.Empty(t, m.TransitionsFrom(states[1]))

	anyEdges := m.AnyTransitions()
	require.Len(t, anyEdges, 1)
	assert.Equal(t, "reset", anyEdges[0].Name)
}

func TestMachine_StringNested(t *testing.T) {
	j := &journal{}
	innerStates, _ := newStates(j, "search")
	inner := runtime.New(runtime.Definition{
		States:     innerStates,
		StateNames: []string{"search"},
		Params:     domain.DefaultBehaviour(),
	})
	outer := runtime.New(runtime.Definition{
		States:     []domain.State{&nested{m: inner}},
		StateNames: []string{"alert"},
		Params:     domain.DefaultBehaviour(),
	})

	require.NoError(t, outer.Enable())
	assert.Equal(t, "alert/search", outer.String())
}

type nested struct {
	m *runtime.Machine
}

func (n *nested) Enter() error               { return n.m.Enable() }
func (n *nested) Update(delta float64) error { return n.m.Update(delta) }
func (n *nested) Exit() error                { return n.m.Disable() }
func (n *nested) Destroy() error             { return n.m.Destroy() }
func (n *nested) Nested() domain.Lifecycle   { return n.m }
