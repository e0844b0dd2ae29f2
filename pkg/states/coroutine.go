package states

import (
	"fmt"

	"github.com/aretw0/hfsm/pkg/domain"
)

// RoutineFactory creates the routine run by a Coroutine each time it is entered.
// The cell reports the delta of the tick resuming the routine.
type RoutineFactory func(cell *DeltaCell) Routine

// Coroutine is a state whose entry logic runs one step per Update.
//
// Enter creates a fresh routine without running it. Each Update resumes the innermost
// pending routine exactly once. Exit abandons any routine still in flight.
type Coroutine struct {
	factory    RoutineFactory
	onComplete func()
	cell       DeltaCell
	stack      []Routine
	done       bool
}

// CoroutineOption configures a Coroutine.
type CoroutineOption func(*Coroutine)

// WithCompletion sets a callback invoked once when the routine finishes.
// It is commonly a Triggered transition's Trigger method.
func WithCompletion(fn func()) CoroutineOption {
	return func(c *Coroutine) { c.onComplete = fn }
}

// NewCoroutine returns a state running routines produced by factory.
func NewCoroutine(factory RoutineFactory, opts ...CoroutineOption) *Coroutine {
	c := &Coroutine{factory: factory}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Done reports whether the routine started by the last Enter has finished.
func (c *Coroutine) Done() bool {
	return c.done
}

// Pending returns the depth of the routine stack.
func (c *Coroutine) Pending() int {
	return len(c.stack)
}

func (c *Coroutine) Enter() error {
	c.abandon()
	c.done = false
	if c.factory == nil {
		c.finish()
		return nil
	}
	root := c.factory(&c.cell)
	if root == nil {
		c.finish()
		return nil
	}
	c.stack = append(c.stack, root)
	return nil
}

func (c *Coroutine) Update(delta float64) error {
	if len(c.stack) == 0 {
		return nil
	}
	c.cell.set(delta)

	top := c.stack[len(c.stack)-1]
	y, done := top.Resume()
	if done {
		c.stack = c.stack[:len(c.stack)-1]
		if len(c.stack) == 0 {
			c.finish()
		}
		return nil
	}

	switch v := y.(type) {
	case Routine:
		c.stack = append(c.stack, v)
		return nil
	default:
		if isContinue(v) {
			return nil
		}
		c.abandon()
		return &domain.YieldError{State: fmt.Sprintf("%T", c), Value: v}
	}
}

func (c *Coroutine) Exit() error {
	c.abandon()
	return nil
}

func (c *Coroutine) Destroy() error {
	c.abandon()
	return nil
}

func (c *Coroutine) finish() {
	c.done = true
	if c.onComplete != nil {
		c.onComplete()
	}
}

// abandon drops every pending routine, innermost first.
func (c *Coroutine) abandon() {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if s, ok := c.stack[i].(Stopper); ok {
			s.Stop()
		}
	}
	c.stack = c.stack[:0]
}
