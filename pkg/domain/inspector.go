package domain

import "fmt"

// Inspector is the read-only view of a compiled machine consumed by debugging tools.
type Inspector interface {
	fmt.Stringer

	ID() string
	Name() string
	Tick() uint64
	Enabled() bool

	States() []State
	DefaultState() State
	Current() State
	TransitionsFrom(s State) []TransitionMapping
	AnyTransitions() []TransitionMapping

	StateName(s State) string
}
