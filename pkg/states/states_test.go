package states_test

import (
	"errors"
	"testing"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/states"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockState struct {
	mock.Mock
}

func (m *mockState) Enter() error               { return m.Called().Error(0) }
func (m *mockState) Update(delta float64) error { return m.Called(delta).Error(0) }
func (m *mockState) Exit() error                { return m.Called().Error(0) }
func (m *mockState) Destroy() error             { return m.Called().Error(0) }

type mockLifecycle struct {
	mock.Mock
}

func (m *mockLifecycle) Enable() error              { return m.Called().Error(0) }
func (m *mockLifecycle) Disable() error             { return m.Called().Error(0) }
func (m *mockLifecycle) Update(delta float64) error { return m.Called(delta).Error(0) }
func (m *mockLifecycle) Destroy() error             { return m.Called().Error(0) }

func TestEmpty(t *testing.T) {
	e := states.NewEmpty()
	assert.NoError(t, e.Enter())
	assert.NoError(t, e.Update(0.1))
	assert.NoError(t, e.Exit())
	assert.NoError(t, e.Destroy())
	assert.NotEqual(t, domain.KeyOf(e), domain.KeyOf(states.NewEmpty()))
}

func TestLambda(t *testing.T) {
	var calls []string
	var got float64
	l := states.NewLambda(
		states.OnEnter(func() error { calls = append(calls, "enter"); return nil }),
		states.OnUpdate(func(dt float64) error { got = dt; calls = append(calls, "update"); return nil }),
		states.OnExit(func() error { calls = append(calls, "exit"); return nil }),
		states.OnDestroy(func() error { calls = append(calls, "destroy"); return nil }),
	)

	require.NoError(t, l.Enter())
	require.NoError(t, l.Update(0.25))
	require.NoError(t, l.Exit())
	require.NoError(t, l.Destroy())

	assert.Equal(t, []string{"enter", "update", "exit", "destroy"}, calls)
	assert.Equal(t, 0.25, got)

	t.Run("Omitted callbacks are no-ops", func(t *testing.T) {
		bare := states.NewLambda()
		assert.NoError(t, bare.Enter())
		assert.NoError(t, bare.Update(1))
		assert.NoError(t, bare.Exit())
		assert.NoError(t, bare.Destroy())
	})
}

func TestParallel_FansOutInOrder(t *testing.T) {
	var order []string
	mk := func(name string) domain.State {
		return states.NewLambda(
			states.OnEnter(func() error { order = append(order, name+".enter"); return nil }),
			states.OnUpdate(func(float64) error { order = append(order, name+".update"); return nil }),
			states.OnExit(func() error { order = append(order, name+".exit"); return nil }),
		)
	}
	p := states.NewParallel(mk("a"), nil, mk("b"))
	require.Len(t, p.Substates(), 2, "nil substates are dropped")

	require.NoError(t, p.Enter())
	require.NoError(t, p.Update(0.1))
	require.NoError(t, p.Exit())

	assert.Equal(t, []string{
		"a.enter", "b.enter",
		"a.update", "b.update",
		"a.exit", "b.exit",
	}, order)
}

func TestParallel_PropagatesFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	first := &mockState{}
	first.On("Update", 0.5).Return(boom)
	second := &mockState{}

	err := states.NewParallel(first, second).Update(0.5)

	assert.ErrorIs(t, err, boom)
	second.AssertNotCalled(t, "Update", mock.Anything)
}

func TestSubstate_DrivesNestedMachine(t *testing.T) {
	nested := &mockLifecycle{}
	nested.On("Enable").Return(nil).Once()
	nested.On("Update", 0.016).Return(nil).Once()
	nested.On("Disable").Return(nil).Once()
	nested.On("Destroy").Return(nil).Once()

	s := states.NewSubstate(nested)
	require.NoError(t, s.Enter())
	require.NoError(t, s.Update(0.016))
	require.NoError(t, s.Exit())
	require.NoError(t, s.Destroy())

	nested.AssertExpectations(t)
	assert.Same(t, nested, s.Nested())
}

func TestCoroutine_OneStepPerUpdate(t *testing.T) {
	var trace []string
	completed := 0
	c := states.NewCoroutine(func(*states.DeltaCell) states.Routine {
		return states.Steps(
			func() any { trace = append(trace, "s1"); return states.Continue },
			func() any { trace = append(trace, "s2"); return nil },
			func() any { trace = append(trace, "s3"); return states.Continue },
		)
	}, states.WithCompletion(func() { completed++ }))

	require.NoError(t, c.Enter())
	assert.Empty(t, trace, "Enter must not run the routine")

	require.NoError(t, c.Update(0.1))
	assert.Equal(t, []string{"s1"}, trace)
	require.NoError(t, c.Update(0.1))
	assert.Equal(t, []string{"s1", "s2"}, trace)
	assert.False(t, c.Done())

	require.NoError(t, c.Update(0.1))
	assert.Equal(t, []string{"s1", "s2", "s3"}, trace)
	assert.True(t, c.Done())
	assert.Equal(t, 1, completed)

	require.NoError(t, c.Update(0.1))
	assert.Equal(t, 1, completed, "completion fires once")
}

func TestCoroutine_NestedRoutinesResumeDepthFirst(t *testing.T) {
	var trace []string
	c := states.NewCoroutine(func(*states.DeltaCell) states.Routine {
		inner := states.Steps(
			func() any { trace = append(trace, "i1"); return states.Continue },
			func() any { trace = append(trace, "i2"); return states.Continue },
		)
		return states.Steps(
			func() any { trace = append(trace, "o1"); return inner },
			func() any { trace = append(trace, "o2"); return states.Continue },
		)
	})

	require.NoError(t, c.Enter())
	require.NoError(t, c.Update(0))
	assert.Equal(t, 2, c.Pending())

	require.NoError(t, c.Update(0))
	require.NoError(t, c.Update(0))
	assert.Equal(t, []string{"o1", "i1", "i2"}, trace, "outer stays suspended while inner runs")
	assert.False(t, c.Done())

	require.NoError(t, c.Update(0))
	assert.Equal(t, []string{"o1", "i1", "i2", "o2"}, trace)
	assert.True(t, c.Done())
}

func TestCoroutine_DeltaCell(t *testing.T) {
	c := states.NewCoroutine(func(cell *states.DeltaCell) states.Routine {
		return states.Wait(cell, 0.5)
	})
	require.NoError(t, c.Enter())

	require.NoError(t, c.Update(0.2))
	require.NoError(t, c.Update(0.2))
	assert.False(t, c.Done())
	require.NoError(t, c.Update(0.2))
	assert.True(t, c.Done())
}

func TestCoroutine_UnknownYieldFailsFast(t *testing.T) {
	c := states.NewCoroutine(func(*states.DeltaCell) states.Routine {
		return states.Steps(func() any { return 42 }, func() any { return nil })
	})
	require.NoError(t, c.Enter())

	err := c.Update(0.1)

	var yieldErr *domain.YieldError
	require.ErrorAs(t, err, &yieldErr)
	assert.ErrorIs(t, err, domain.ErrUnknownYield)
	assert.Equal(t, "*states.Coroutine", yieldErr.State)
	assert.Contains(t, err.Error(), "int")
	assert.Zero(t, c.Pending())
}

func TestCoroutine_ExitDiscardsInFlightRoutine(t *testing.T) {
	stopped := false
	resumed := 0
	c := states.NewCoroutine(func(*states.DeltaCell) states.Routine {
		return states.FromSeq(func(yield func(any) bool) {
			defer func() { stopped = true }()
			for {
				resumed++
				if !yield(states.Continue) {
					return
				}
			}
		})
	})

	require.NoError(t, c.Enter())
	require.NoError(t, c.Update(0.1))
	require.NoError(t, c.Exit())

	assert.True(t, stopped)
	assert.Equal(t, 1, resumed)
	assert.False(t, c.Done())

	require.NoError(t, c.Update(0.1))
	assert.Equal(t, 1, resumed, "abandoned routine is never resumed")
}

func TestCoroutine_ReenterRestarts(t *testing.T) {
	runs := 0
	c := states.NewCoroutine(func(*states.DeltaCell) states.Routine {
		runs++
		return states.WaitTicks(2)
	})

	require.NoError(t, c.Enter())
	require.NoError(t, c.Update(0))
	require.NoError(t, c.Enter())
	assert.Equal(t, 2, runs)
	assert.False(t, c.Done())

	require.NoError(t, c.Update(0))
	require.NoError(t, c.Update(0))
	assert.True(t, c.Done())
}
