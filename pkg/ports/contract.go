package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// EventStore is an EventSink that can read back what it stored.
type EventStore interface {
	EventSink
	EventReader
}

// RunEventStoreContract runs a suite of tests to verify that an EventStore implementation
// adheres to the defined interface contract.
func RunEventStoreContract(t *testing.T, store EventStore) {
	ctx := context.Background()
	machineID := "contract-test-machine-" + time.Now().Format("20060102150405")

	t.Run("Publish and Read", func(t *testing.T) {
		entries := []events.Entry{
			{Kind: domain.EventEnter, StateName: "idle", Tick: 0, LastTick: 0, Repeat: 1},
			{Kind: domain.EventUpdate, StateName: "idle", Tick: 1, LastTick: 3, Repeat: 3},
			{Kind: domain.EventEnter, StateName: "moving", TransitionName: "go", Tick: 4, LastTick: 4, Repeat: 1},
		}
		require.NoError(t, store.Publish(ctx, machineID, entries[:2]), "Publish should not return error")
		require.NoError(t, store.Publish(ctx, machineID, entries[2:]), "Publish should not return error")

		got, err := store.Read(ctx, machineID)
		require.NoError(t, err, "Read should not return error")
		require.Len(t, got, len(entries))
		for i := range entries {
			assert.Equal(t, entries[i].Kind, got[i].Kind)
			assert.Equal(t, entries[i].StateName, got[i].StateName)
			assert.Equal(t, entries[i].TransitionName, got[i].TransitionName)
			assert.Equal(t, entries[i].Tick, got[i].Tick)
			assert.Equal(t, entries[i].LastTick, got[i].LastTick)
			assert.Equal(t, entries[i].Repeat, got[i].Repeat)
		}
	})

	t.Run("Publish Nothing", func(t *testing.T) {
		require.NoError(t, store.Publish(ctx, machineID+"-empty", nil))
		got, err := store.Read(ctx, machineID+"-empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Read Unknown", func(t *testing.T) {
		got, err := store.Read(ctx, "non-existent-"+machineID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
