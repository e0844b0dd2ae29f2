package ports

import (
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// Machine is the read-only view of a machine exposed to debugging tools.
type Machine interface {
	domain.Inspector

	// Events returns the machine event log.
	Events() *events.Log
}

// Controller gives another goroutine safe access to a machine owned by a driver.
type Controller interface {
	ID() string
	Name() string

	// Inspect runs fn while the machine is not being ticked.
	Inspect(fn func(m Machine))

	// Trigger queues a named trigger for the next tick.
	// It returns domain.ErrUnknownTrigger when the machine defines no such trigger.
	Trigger(name string) error

	// Triggers lists the trigger names the machine understands.
	Triggers() []string
}
