package events_test

import (
	"testing"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
	"github.com/aretw0/hfsm/pkg/states"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_CoalescesConsecutiveEvents(t *testing.T) {
	idle := states.NewEmpty()
	log := events.NewLog(10)

	log.Record(events.Entry{Kind: domain.EventEnter, State: idle, Tick: 0})
	for tick := uint64(1); tick <= 3; tick++ {
		log.Record(events.Entry{Kind: domain.EventUpdate, State: idle, Tick: tick})
	}

	entries := log.Snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EventUpdate, entries[1].Kind)
	assert.Equal(t, 3, entries[1].Repeat)
	assert.Equal(t, uint64(1), entries[1].Tick)
	assert.Equal(t, uint64(3), entries[1].LastTick)
}

func TestLog_DistinctStatesDoNotCoalesce(t *testing.T) {
	log := events.NewLog(10)
	log.Record(events.Entry{Kind: domain.EventUpdate, State: states.NewEmpty()})
	log.Record(events.Entry{Kind: domain.EventUpdate, State: states.NewEmpty()})

	assert.Equal(t, 2, log.Len())
}

func TestLog_BoundedOverwritesOldest(t *testing.T) {
	log := events.NewLog(3)
	s := []domain.State{states.NewEmpty(), states.NewEmpty(), states.NewEmpty(), states.NewEmpty(), states.NewEmpty()}
	for i, st := range s {
		log.Record(events.Entry{Kind: domain.EventEnter, State: st, Tick: uint64(i)})
	}

	assert.Equal(t, 3, log.Len())
	assert.Equal(t, 3, log.Cap())

	drained := log.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, []uint64{2, 3, 4}, []uint64{drained[0].Tick, drained[1].Tick, drained[2].Tick})
	assert.Zero(t, log.Len())

	assert.Len(t, log.Trail(), 5, "trail keeps the full history")
}

func TestLog_PopFront(t *testing.T) {
	log := events.NewLog(0)
	assert.Equal(t, domain.DefaultEventCapacity, log.Cap())

	_, ok := log.Pop()
	assert.False(t, ok)

	a, b := states.NewEmpty(), states.NewEmpty()
	log.Record(events.Entry{Kind: domain.EventEnter, State: a})
	log.Record(events.Entry{Kind: domain.EventExit, State: a})
	log.Record(events.Entry{Kind: domain.EventEnter, State: b})

	first, ok := log.Pop()
	require.True(t, ok)
	assert.Equal(t, domain.EventEnter, first.Kind)
	assert.Same(t, a, first.State)
	assert.Equal(t, 2, log.Len())

	log.Reset()
	assert.Zero(t, log.Len())
	assert.Empty(t, log.Trail())
}
