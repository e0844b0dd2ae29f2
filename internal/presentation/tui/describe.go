package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/hfsm/pkg/domain"
)

// Describe renders a markdown summary of a machine and its nested machines.
func Describe(m domain.Inspector, description string) string {
	var sb strings.Builder
	describe(&sb, m, description, 1)
	return sb.String()
}

func describe(sb *strings.Builder, m domain.Inspector, description string, level int) {
	fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", level), m.Name())
	if description != "" {
		sb.WriteString(description + "\n\n")
	}
	fmt.Fprintf(sb, "Default state: **%s**\n\n", m.StateName(m.DefaultState()))

	sb.WriteString("| State | Kind | Transitions |\n|---|---|---|\n")
	var nested []domain.Inspector
	for _, s := range m.States() {
		var edges []string
		for _, t := range m.TransitionsFrom(s) {
			edges = append(edges, edgeLabel(m, t))
		}
		fmt.Fprintf(sb, "| %s | %s | %s |\n", m.StateName(s), kindOf(s), strings.Join(edges, ", "))

		if n, ok := s.(domain.Nester); ok {
			if inner, ok := n.Nested().(domain.Inspector); ok {
				nested = append(nested, inner)
			}
		}
	}

	if anyEdges := m.AnyTransitions(); len(anyEdges) > 0 {
		sb.WriteString("\nFrom any state:\n\n")
		for _, t := range anyEdges {
			fmt.Fprintf(sb, "- %s\n", edgeLabel(m, t))
		}
	}
	sb.WriteString("\n")

	for _, inner := range nested {
		describe(sb, inner, "", level+1)
	}
}

func edgeLabel(m domain.Inspector, t domain.TransitionMapping) string {
	if t.Name != "" {
		return fmt.Sprintf("`%s` → %s", t.Name, m.StateName(t.To))
	}
	return "→ " + m.StateName(t.To)
}

func kindOf(s domain.State) string {
	name := fmt.Sprintf("%T", s)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}
