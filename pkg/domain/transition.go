package domain

// Transition is a predicate with a side effect invoked when the edge is taken.
//
// A single instance may be attached to several edges. PassThrough side effects are
// then shared between those edges.
type Transition interface {
	// ShouldTransition reports whether the edge may be taken now.
	ShouldTransition() bool
	// PassThrough is invoked exactly once per traversal of the edge.
	PassThrough()
	// Destroy releases resources held by the transition.
	Destroy()
}

// Wrapper is implemented by transitions that only delegate to other transitions
// (inversions and composites). Machines destroy the wrapped transitions instead of
// the wrapper so that shared leaves are released once.
type Wrapper interface {
	Unwrap() []Transition
}

// TransitionMapping is an edge record: the transition to evaluate and the state to enter.
type TransitionMapping struct {
	Transition Transition
	To         State
	Name       string
}
