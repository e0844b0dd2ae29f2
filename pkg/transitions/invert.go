package transitions

import "github.com/aretw0/hfsm/pkg/domain"

// Inverted negates the predicate of another transition.
// PassThrough and Destroy are forwarded to the wrapped transition.
type Inverted struct {
	inner domain.Transition
}

// Invert wraps t.
func Invert(t domain.Transition) *Inverted {
	return &Inverted{inner: t}
}

func (i *Inverted) ShouldTransition() bool { return !i.inner.ShouldTransition() }
func (i *Inverted) PassThrough()           { i.inner.PassThrough() }
func (i *Inverted) Destroy()               { i.inner.Destroy() }

// Unwrap returns the wrapped transition.
func (i *Inverted) Unwrap() []domain.Transition {
	return []domain.Transition{i.inner}
}
