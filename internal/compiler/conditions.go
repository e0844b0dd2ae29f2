package compiler

import (
	"fmt"

	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/transitions"
)

// condition compiles a predicate tree. A nil condition is always true.
func (c *Compiler) condition(cond *dto.Condition, res *Result) (domain.Transition, error) {
	if cond == nil {
		return transitions.Always(), nil
	}

	set := 0
	for _, ok := range []bool{cond.Always != nil, cond.Trigger != "", cond.Not != nil, cond.All != nil, cond.Any != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("condition must set exactly one of always, trigger, not, all, any (got %d)", set)
	}

	switch {
	case cond.Always != nil:
		if *cond.Always {
			return transitions.Always(), nil
		}
		return transitions.NewLambda(nil), nil

	case cond.Trigger != "":
		return res.trigger(cond.Trigger), nil

	case cond.Not != nil:
		inner, err := c.condition(cond.Not, res)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return transitions.Invert(inner), nil

	case cond.All != nil:
		members, err := c.conditions(cond.All, res)
		if err != nil {
			return nil, fmt.Errorf("all: %w", err)
		}
		return transitions.AllPasses(members...), nil

	default:
		members, err := c.conditions(cond.Any, res)
		if err != nil {
			return nil, fmt.Errorf("any: %w", err)
		}
		return transitions.AnyPasses(members...), nil
	}
}

func (c *Compiler) conditions(list []dto.Condition, res *Result) ([]domain.Transition, error) {
	out := make([]domain.Transition, 0, len(list))
	for i := range list {
		t, err := c.condition(&list[i], res)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// trigger returns the shared latch registered under name.
func (r *Result) trigger(name string) *transitions.Triggered {
	t, ok := r.triggers[name]
	if !ok {
		t = transitions.NewTriggered()
		r.triggers[name] = t
	}
	return t
}
