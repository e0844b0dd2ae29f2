package dsl

import "github.com/aretw0/hfsm/pkg/domain"

type boxedState struct {
	domain.State
}

type boxedNester struct {
	domain.State
	domain.Nester
}

// boxState gives a value-typed state an address. Nesting is preserved.
func boxState(s domain.State) domain.State {
	if n, ok := s.(domain.Nester); ok {
		return &boxedNester{State: s, Nester: n}
	}
	return &boxedState{State: s}
}

type boxedTransition struct {
	domain.Transition
}

type boxedWrapper struct {
	domain.Transition
	domain.Wrapper
}

func boxTransition(t domain.Transition) domain.Transition {
	if w, ok := t.(domain.Wrapper); ok {
		return &boxedWrapper{Transition: t, Wrapper: w}
	}
	return &boxedTransition{Transition: t}
}
