package transitions

import "github.com/aretw0/hfsm/pkg/domain"

type always struct {
	_ byte
}

var alwaysInstance = &always{}

// Always returns the shared transition whose predicate is constantly true.
func Always() domain.Transition {
	return alwaysInstance
}

func (*always) ShouldTransition() bool { return true }
func (*always) PassThrough()           {}
func (*always) Destroy()               {}
