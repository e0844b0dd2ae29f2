package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNilState is returned when a nil state is passed to a checked builder.
	ErrNilState = errors.New("state is nil")

	// ErrNilTransition is returned when a nil transition is passed to a checked builder.
	ErrNilTransition = errors.New("transition is nil")

	// ErrDuplicateState is returned when the same state instance is registered twice.
	ErrDuplicateState = errors.New("state already registered")

	// ErrUnaddressableState is returned when a state has no reference identity.
	ErrUnaddressableState = errors.New("state has no reference identity")

	// ErrUnaddressableTransition is returned when a transition has no reference identity.
	ErrUnaddressableTransition = errors.New("transition has no reference identity")

	// ErrUnregisteredState is returned when an edge references a state that was never added.
	ErrUnregisteredState = errors.New("state not registered")

	// ErrDuplicateTransition is returned when the same edge is added twice.
	ErrDuplicateTransition = errors.New("transition already registered for this edge")

	// ErrBuilderReleased is returned when a builder is used after Complete or Release.
	ErrBuilderReleased = errors.New("builder already released to the pool")

	// ErrNoStates is returned by Complete when no state was registered.
	ErrNoStates = errors.New("machine has no states")

	// ErrMachineDestroyed is returned when a destroyed machine is driven again.
	ErrMachineDestroyed = errors.New("machine destroyed")

	// ErrUnknownTrigger is returned when a named trigger is not defined by a machine.
	ErrUnknownTrigger = errors.New("unknown trigger")

	// ErrUnknownYield is returned when a routine yields a value the engine does not understand.
	ErrUnknownYield = errors.New("unknown routine yield")
)

// BuildError reports a rejected builder call.
type BuildError struct {
	Op   string
	Name string
	Err  error
}

func (e *BuildError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// YieldError reports a coroutine state yielding an unsupported value.
type YieldError struct {
	State string
	Value any
}

func (e *YieldError) Error() string {
	return fmt.Sprintf("state %s yielded unsupported value of type %T (expected Continue or a nested Routine)", e.State, e.Value)
}

func (e *YieldError) Unwrap() error {
	return ErrUnknownYield
}
