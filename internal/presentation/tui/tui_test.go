package tui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hfsm/internal/compiler"
	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/internal/presentation/tui"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

func TestEventFormatter_Plain(t *testing.T) {
	f := tui.NewEventFormatter(false)

	line := f.Format(events.Entry{
		Kind:           domain.EventEnter,
		StateName:      "moving",
		TransitionName: "go",
		Tick:           3,
		LastTick:       3,
		Repeat:         1,
	})
	assert.Equal(t, "[3] enter  moving (via go)", line)

	line = f.Format(events.Entry{Kind: domain.EventUpdate, StateName: "idle", Tick: 1, LastTick: 4, Repeat: 4})
	assert.Equal(t, "[1-4] update idle x4", line)
}

func TestDescribe(t *testing.T) {
	res, err := compiler.New().Compile(&dto.Definition{
		Name: "guard",
		States: []dto.StateDef{
			{Name: "idle"},
			{Name: "alert", Kind: "machine", Machine: &dto.Definition{States: []dto.StateDef{{Name: "search"}}}},
		},
		Transitions: []dto.TransitionDef{{Name: "seen", From: "idle", To: "alert"}},
		Any:         []dto.TransitionDef{{To: "idle", When: &dto.Condition{Trigger: "calm"}}},
	})
	require.NoError(t, err)

	md := tui.Describe(res.Machine, "A guard.")
	assert.Contains(t, md, "# guard\n\nA guard.")
	assert.Contains(t, md, "Default state: **idle**")
	assert.Contains(t, md, "| idle | empty | `seen` → alert |")
	assert.Contains(t, md, "| alert | substate |  |")
	assert.Contains(t, md, "- → idle")
	assert.Contains(t, md, "## guard/alert")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
