package transitions

import "github.com/aretw0/hfsm/pkg/domain"

type composite struct {
	members []domain.Transition
}

// PassThrough notifies every member, whether or not its predicate held.
func (c *composite) PassThrough() {
	for _, t := range c.members {
		t.PassThrough()
	}
}

// Destroy destroys every member.
func (c *composite) Destroy() {
	for _, t := range c.members {
		t.Destroy()
	}
}

// Unwrap returns the members in registration order.
func (c *composite) Unwrap() []domain.Transition {
	return append([]domain.Transition(nil), c.members...)
}

// AllPassesTransition fires when every member fires.
type AllPassesTransition struct {
	composite
}

// AllPasses combines members with AND semantics. An empty composite always fires.
func AllPasses(members ...domain.Transition) *AllPassesTransition {
	return &AllPassesTransition{composite{members: members}}
}

// ShouldTransition stops at the first member that does not fire.
func (a *AllPassesTransition) ShouldTransition() bool {
	for _, t := range a.members {
		if !t.ShouldTransition() {
			return false
		}
	}
	return true
}

// AnyPassesTransition fires when at least one member fires.
type AnyPassesTransition struct {
	composite
}

// AnyPasses combines members with OR semantics. An empty composite never fires.
func AnyPasses(members ...domain.Transition) *AnyPassesTransition {
	return &AnyPassesTransition{composite{members: members}}
}

// ShouldTransition stops at the first member that fires.
func (a *AnyPassesTransition) ShouldTransition() bool {
	for _, t := range a.members {
		if t.ShouldTransition() {
			return true
		}
	}
	return false
}
