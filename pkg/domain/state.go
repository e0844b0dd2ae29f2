package domain

// State is the lifecycle contract every machine state fulfils.
//
// States are identified by reference, so implementations should be pointer types
// with a non-zero size. Errors returned from any method abort the machine call
// that invoked it and are returned to the host unmodified.
type State interface {
	Enter() error
	Update(delta float64) error
	Exit() error
	Destroy() error
}

// Lifecycle is the driving surface of a machine.
// Substates use it to drive nested machines as a single state.
type Lifecycle interface {
	Enable() error
	Disable() error
	Update(delta float64) error
	Destroy() error
}

// Nester is implemented by states that wrap a nested machine.
type Nester interface {
	Nested() Lifecycle
}
