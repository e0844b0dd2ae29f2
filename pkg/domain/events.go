package domain

// EventKind defines the category of a machine event.
type EventKind string

const (
	EventEnter      EventKind = "enter"
	EventExit       EventKind = "exit"
	EventUpdate     EventKind = "update"
	EventTransition EventKind = "transition"
)

// MachineEvent describes a lifecycle step taken by a machine.
type MachineEvent struct {
	MachineID   string    `json:"machine_id"`
	MachineName string    `json:"machine_name"`
	Kind        EventKind `json:"kind"`
	Tick        uint64    `json:"tick"`

	State     State  `json:"-"`
	StateName string `json:"state"`

	// From is set for EventTransition only.
	From     State  `json:"-"`
	FromName string `json:"from,omitempty"`

	Transition     Transition `json:"-"`
	TransitionName string     `json:"transition,omitempty"`
}

// Hooks defines callbacks for machine observability.
// They run synchronously on the goroutine driving the machine.
type Hooks struct {
	OnEnter      func(*MachineEvent)
	OnExit       func(*MachineEvent)
	OnTransition func(*MachineEvent)
}

// Merge returns hooks invoking h and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnEnter:      chain(h.OnEnter, other.OnEnter),
		OnExit:       chain(h.OnExit, other.OnExit),
		OnTransition: chain(h.OnTransition, other.OnTransition),
	}
}

func chain(a, b func(*MachineEvent)) func(*MachineEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *MachineEvent) {
		a(e)
		b(e)
	}
}
