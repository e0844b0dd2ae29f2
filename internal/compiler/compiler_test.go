package compiler_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hfsm/internal/compiler"
	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/dsl"
	"github.com/aretw0/hfsm/pkg/registry"
)

func guard() *dto.Definition {
	return &dto.Definition{
		Name:    "guard",
		Default: "idle",
		States: []dto.StateDef{
			{Name: "idle", Kind: "log", Params: map[string]any{"level": "debug", "message": "resting"}},
			{Name: "wait", Kind: "timer", Params: map[string]any{"ticks": 2, "done": "waited"}},
			{Name: "patrol", Kind: "parallel", Children: []dto.StateDef{{Name: "look"}, {Name: "walk", Kind: "log"}}},
			{Name: "alert", Kind: "machine", Machine: &dto.Definition{
				States: []dto.StateDef{{Name: "search"}, {Name: "chase"}},
				Transitions: []dto.TransitionDef{
					{Name: "spotted", From: "search", To: "chase", When: &dto.Condition{Trigger: "spotted"}},
				},
			}},
		},
		Transitions: []dto.TransitionDef{
			{Name: "start", From: "idle", To: "wait", When: &dto.Condition{Trigger: "start"}},
			{Name: "waited", From: "wait", To: "patrol", When: &dto.Condition{Trigger: "waited"}},
		},
		Any: []dto.TransitionDef{
			{Name: "alarm", To: "alert", When: &dto.Condition{All: []dto.Condition{{Trigger: "seen"}, {Always: ptr(true)}}}},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestCompile_Scenario(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := compiler.New(compiler.WithLogger(logger)).Compile(guard())
	require.NoError(t, err)
	m := res.Machine

	assert.Equal(t, []string{"seen", "spotted", "start", "waited"}, res.Triggers())
	require.Len(t, res.Nested, 1)
	assert.Equal(t, "guard/alert", res.Nested[0].Name())

	require.NoError(t, m.Enable())
	assert.Equal(t, "idle", m.String())
	assert.Contains(t, logs.String(), "state entered: resting")

	require.NoError(t, res.Trigger("start"))
	require.NoError(t, m.Update(0.1))
	assert.Equal(t, "wait", m.String())

	// The timer completes on its second resume and fires "waited" in time for the
	// post-update pass.
	require.NoError(t, m.Update(0.1))
	assert.Equal(t, "patrol", m.String())

	require.NoError(t, res.Trigger("seen"))
	require.NoError(t, m.Update(0.1))
	assert.Equal(t, "alert/search", m.String())

	require.NoError(t, res.Trigger("spotted"))
	require.NoError(t, m.Update(0.1))
	assert.Equal(t, "alert/chase", m.String())

	assert.ErrorIs(t, res.Trigger("nope"), domain.ErrUnknownTrigger)
	require.NoError(t, m.Destroy())
	assert.True(t, res.Nested[0].Destroyed())
}

func TestCompile_Behaviour(t *testing.T) {
	def := &dto.Definition{
		Name:      "door",
		States:    []dto.StateDef{{Name: "closed"}},
		Behaviour: &dto.Behaviour{Debug: ptr(true), ResetOnEnable: ptr(false)},
	}
	res, err := compiler.New().Compile(def)
	require.NoError(t, err)

	params := res.Machine.Params()
	assert.True(t, params.DebugLogging)
	assert.False(t, params.ResetToDefaultOnEnable)
	assert.True(t, params.RedundantEnableIsReset)
}

func TestCompile_Registry(t *testing.T) {
	reg := registry.NewRegistry()
	res, err := compiler.New(compiler.WithBuilderOptions(dsl.WithRegistry(reg))).Compile(guard())
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	require.NoError(t, res.Machine.Destroy())
	assert.Equal(t, 0, reg.Len())
}

func TestCompile_PermissiveAnyEdge(t *testing.T) {
	def := &dto.Definition{
		Name:        "door",
		States:      []dto.StateDef{{Name: "closed"}, {Name: "open"}},
		Transitions: []dto.TransitionDef{{Name: "sourceless", To: "open", When: &dto.Condition{Trigger: "push"}}},
	}
	res, err := compiler.New().Compile(def)
	require.NoError(t, err)

	anyEdges := res.Machine.AnyTransitions()
	require.Len(t, anyEdges, 1)
	assert.Equal(t, "sourceless", anyEdges[0].Name)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  *dto.Definition
		want string
	}{
		{
			name: "unknown kind",
			def:  &dto.Definition{Name: "x", States: []dto.StateDef{{Name: "a", Kind: "teleport"}}},
			want: `unknown kind "teleport"`,
		},
		{
			name: "duplicate state",
			def:  &dto.Definition{Name: "x", States: []dto.StateDef{{Name: "a"}, {Name: "a"}}},
			want: `state "a" declared twice`,
		},
		{
			name: "bad timer params",
			def:  &dto.Definition{Name: "x", States: []dto.StateDef{{Name: "a", Kind: "timer", Params: map[string]any{"sconds": 1}}}},
			want: "invalid params",
		},
		{
			name: "timer without duration",
			def:  &dto.Definition{Name: "x", States: []dto.StateDef{{Name: "a", Kind: "timer"}}},
			want: "timer needs seconds or ticks",
		},
		{
			name: "machine without definition",
			def:  &dto.Definition{Name: "x", States: []dto.StateDef{{Name: "a", Kind: "machine"}}},
			want: "requires a machine definition",
		},
		{
			name: "ambiguous condition",
			def: &dto.Definition{
				Name:        "x",
				States:      []dto.StateDef{{Name: "a"}},
				Transitions: []dto.TransitionDef{{From: "a", To: "a", When: &dto.Condition{Trigger: "t", Always: ptr(true)}}},
			},
			want: "exactly one",
		},
		{
			name: "unknown default",
			def:  &dto.Definition{Name: "x", Default: "ghost", States: []dto.StateDef{{Name: "a"}}},
			want: `unknown state "ghost"`,
		},
		{
			name: "bad log level",
			def:  &dto.Definition{Name: "x", States: []dto.StateDef{{Name: "a", Kind: "log", Params: map[string]any{"level": "loud"}}}},
			want: `state "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.New().Compile(tt.def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
