package domain

const (
	// MaxTransitionPasses bounds the number of transitions a machine may take within one Update call.
	MaxTransitionPasses = 8

	// DefaultEventCapacity is the size of the bounded event log of a machine.
	DefaultEventCapacity = 100
)
