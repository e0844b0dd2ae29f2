package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/ports"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFrom builds an overlay from the machine trail and active state.
func OverlayFrom(m ports.Machine) *GraphOverlay {
	overlay := &GraphOverlay{}
	for _, e := range m.Events().Trail() {
		if e.Kind == domain.EventEnter {
			overlay.VisitedStates = append(overlay.VisitedStates, e.StateName)
		}
	}
	if cur := m.Current(); cur != nil {
		overlay.CurrentState = m.StateName(cur)
	}
	return overlay
}

type parallel interface {
	Substates() []domain.State
}

type resumable interface {
	Pending() int
}

// GenerateMermaid produces a Mermaid flowchart of a machine.
// It applies semantic styling:
// - Default state: ((Circle))
// - Parallel state: [[Subroutine]]
// - Coroutine state: [/Parallelogram/]
// - Nested machine: subgraph
// - Other states: [Rectangle]
// Any-edges are drawn as dotted arrows from a shared "*" node.
// It also applies overlay styles (Visited/Current) to top-level states if provided.
func GenerateMermaid(m domain.Inspector, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	writeMachine(&sb, m, "", "    ")

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(name)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func writeMachine(sb *strings.Builder, m domain.Inspector, prefix, indent string) {
	id := func(s domain.State) string {
		return sanitizeMermaidID(prefix + m.StateName(s))
	}
	def := m.DefaultState()

	for _, s := range m.States() {
		name := m.StateName(s)
		safeID := id(s)

		if n, ok := s.(domain.Nester); ok {
			if nested, ok := n.Nested().(domain.Inspector); ok {
				fmt.Fprintf(sb, "%ssubgraph %s [\"%s\"]\n", indent, safeID, name)
				writeMachine(sb, nested, prefix+name+"/", indent+"    ")
				fmt.Fprintf(sb, "%send\n", indent)
				continue
			}
		}

		opener, closer := "[", "]"
		switch {
		case domain.KeyOf(s) == domain.KeyOf(def):
			opener, closer = "((", "))" // Circle
		case isParallel(s):
			opener, closer = "[[", "]]" // Subroutine
		case isResumable(s):
			opener, closer = "[/", "/]" // Parallelogram
		}
		fmt.Fprintf(sb, "%s%s%s\"%s\"%s\n", indent, safeID, opener, name, closer)
	}

	for _, s := range m.States() {
		for _, t := range m.TransitionsFrom(s) {
			arrow := "-->"
			if t.Name != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(t.Name, "\"", "'"))
			}
			fmt.Fprintf(sb, "%s%s %s %s\n", indent, id(s), arrow, id(t.To))
		}
	}

	anyEdges := m.AnyTransitions()
	if len(anyEdges) == 0 {
		return
	}
	anyID := sanitizeMermaidID(prefix + "any")
	fmt.Fprintf(sb, "%s%s{{\"*\"}}\n", indent, anyID)
	for _, t := range anyEdges {
		arrow := "-.->"
		if t.Name != "" {
			arrow = fmt.Sprintf("-. ⚡ %s .->", t.Name)
		}
		fmt.Fprintf(sb, "%s%s %s %s\n", indent, anyID, arrow, id(t.To))
	}
}

func isParallel(s domain.State) bool {
	_, ok := s.(parallel)
	return ok
}

func isResumable(s domain.State) bool {
	_, ok := s.(resumable)
	return ok
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "__")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
