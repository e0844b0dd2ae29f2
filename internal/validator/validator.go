package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/hfsm/internal/compiler"
	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/pkg/domain"
)

// Report lists the problems found in one machine of a definition tree.
type Report struct {
	Machine     string
	Unreachable []string
}

// ErrUnreachable is returned when a definition contains states no path can enter.
var ErrUnreachable = errors.New("unreachable states")

// Validate compiles def through the safety-checking builder and crawls every machine
// from its default state. Build errors are returned as is; unreachable states are
// reported and summarized in an error wrapping ErrUnreachable.
func Validate(def *dto.Definition) ([]Report, error) {
	res, err := compiler.New(compiler.WithChecked(true)).Compile(def)
	if err != nil {
		return nil, err
	}
	defer res.Machine.Destroy()

	reports := []Report{crawl(res.Machine)}
	for _, nested := range res.Nested {
		reports = append(reports, crawl(nested))
	}

	var problems []string
	for _, r := range reports {
		for _, s := range r.Unreachable {
			problems = append(problems, fmt.Sprintf("%s: state '%s' is unreachable", r.Machine, s))
		}
	}
	if len(problems) > 0 {
		return reports, fmt.Errorf("%w: found %d:\n- %s", ErrUnreachable, len(problems), strings.Join(problems, "\n- "))
	}
	return reports, nil
}

// crawl walks from-specific and any-edges breadth-first from the default state.
func crawl(m domain.Inspector) Report {
	visited := make(map[domain.Key]bool)
	anyEdges := m.AnyTransitions()

	queue := []domain.State{m.DefaultState()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		key := domain.KeyOf(current)
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, edge := range m.TransitionsFrom(current) {
			if !visited[domain.KeyOf(edge.To)] {
				queue = append(queue, edge.To)
			}
		}
		for _, edge := range anyEdges {
			if !visited[domain.KeyOf(edge.To)] {
				queue = append(queue, edge.To)
			}
		}
	}

	report := Report{Machine: m.Name()}
	for _, s := range m.States() {
		if !visited[domain.KeyOf(s)] {
			report.Unreachable = append(report.Unreachable, m.StateName(s))
		}
	}
	return report
}
