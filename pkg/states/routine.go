package states

import "iter"

// Routine is a resumable unit of work advanced one step per machine tick.
//
// Resume performs one step. It returns the value yielded by that step, or done=true
// once the routine has finished. A step may yield Continue (or nil) to suspend until
// the next tick, or another Routine to run it to completion before resuming.
type Routine interface {
	Resume() (yield any, done bool)
}

// Stopper is implemented by routines holding resources that must be released when
// they are abandoned before completion.
type Stopper interface {
	Stop()
}

type continueSignal struct{}

// Continue suspends a routine until the next tick.
var Continue any = continueSignal{}

func isContinue(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(continueSignal)
	return ok
}

// DeltaCell exposes the delta time of the tick currently resuming a routine.
type DeltaCell struct {
	seconds float64
}

// Seconds returns the delta of the current tick.
func (c *DeltaCell) Seconds() float64 {
	return c.seconds
}

func (c *DeltaCell) set(seconds float64) {
	c.seconds = seconds
}

// RoutineFunc adapts a function to the Routine interface.
type RoutineFunc func() (any, bool)

func (f RoutineFunc) Resume() (any, bool) { return f() }

type stepper struct {
	steps []func() any
	pc    int
}

// Steps returns a routine running one step function per resume.
// The routine is done after the last step unless that step yielded a nested Routine.
func Steps(steps ...func() any) Routine {
	return &stepper{steps: steps}
}

func (s *stepper) Resume() (any, bool) {
	if s.pc >= len(s.steps) {
		return nil, true
	}
	y := s.steps[s.pc]()
	s.pc++
	if s.pc == len(s.steps) && isContinue(y) {
		return nil, true
	}
	return y, false
}

// Wait returns a routine that finishes once the accumulated delta read from cell
// reaches seconds.
func Wait(cell *DeltaCell, seconds float64) Routine {
	elapsed := 0.0
	return RoutineFunc(func() (any, bool) {
		elapsed += cell.Seconds()
		if elapsed >= seconds {
			return nil, true
		}
		return Continue, false
	})
}

// WaitTicks returns a routine that finishes on its n-th resume.
func WaitTicks(n int) Routine {
	count := 0
	return RoutineFunc(func() (any, bool) {
		count++
		if count >= n {
			return nil, true
		}
		return Continue, false
	})
}

type seqRoutine struct {
	next func() (any, bool)
	stop func()
}

// FromSeq adapts a push iterator to a Routine. Each value produced by seq is one yield.
func FromSeq(seq iter.Seq[any]) Routine {
	next, stop := iter.Pull(seq)
	return &seqRoutine{next: next, stop: stop}
}

func (r *seqRoutine) Resume() (any, bool) {
	v, ok := r.next()
	if !ok {
		return nil, true
	}
	return v, false
}

func (r *seqRoutine) Stop() {
	r.stop()
}
