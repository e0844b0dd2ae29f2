package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// EventFormatter renders event log entries as single lines.
type EventFormatter struct {
	color   bool
	profile termenv.Profile
}

// NewEventFormatter creates a formatter. Colour is used only when color is true.
func NewEventFormatter(color bool) *EventFormatter {
	return &EventFormatter{color: color, profile: termenv.ColorProfile()}
}

var kindColors = map[domain.EventKind]string{
	domain.EventEnter:  "#4ade80",
	domain.EventExit:   "#f87171",
	domain.EventUpdate: "#94a3b8",
}

// Format renders e as "[tick] kind state (via transition) xN".
func (f *EventFormatter) Format(e events.Entry) string {
	var sb strings.Builder

	ticks := fmt.Sprintf("[%d]", e.Tick)
	if e.LastTick != e.Tick {
		ticks = fmt.Sprintf("[%d-%d]", e.Tick, e.LastTick)
	}
	sb.WriteString(ticks)
	sb.WriteString(" ")

	kind := fmt.Sprintf("%-6s", e.Kind)
	state := e.StateName
	if f.color {
		style := termenv.String(kind)
		if c, ok := kindColors[e.Kind]; ok {
			style = style.Foreground(f.profile.Color(c))
		}
		kind = style.String()
		state = termenv.String(state).Bold().String()
	}
	sb.WriteString(kind)
	sb.WriteString(" ")
	sb.WriteString(state)

	if e.TransitionName != "" {
		fmt.Fprintf(&sb, " (via %s)", e.TransitionName)
	}
	if e.Repeat > 1 {
		fmt.Fprintf(&sb, " x%d", e.Repeat)
	}
	return sb.String()
}
