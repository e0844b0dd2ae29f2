package dsl

import (
	"github.com/aretw0/hfsm/internal/runtime"
	"github.com/aretw0/hfsm/pkg/domain"
)

// Builder accumulates states and transitions and compiles them into a machine.
type Builder interface {
	// AddState registers s under an optional display name and returns the registered handle.
	// The first state added becomes the default state.
	AddState(name string, s domain.State) (domain.State, error)

	// AddTransition registers a from-specific edge.
	AddTransition(t domain.Transition, from, to domain.State, name string) error

	// AddAnyTransition registers an edge evaluated regardless of the active state.
	AddAnyTransition(t domain.Transition, to domain.State, name string) error

	// SetDefaultState overrides the state entered on the first Enable.
	SetDefaultState(s domain.State) error

	// Complete validates the graph, returns the machine and releases the builder.
	Complete(params domain.BehaviourParameters) (*runtime.Machine, error)

	// Clear discards everything added so far.
	Clear() error

	// Release returns the builder to its pool without compiling.
	Release() error
}
