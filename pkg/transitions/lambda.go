package transitions

// Lambda evaluates a host-supplied predicate.
type Lambda struct {
	predicate func() bool
}

// NewLambda wraps predicate. A nil predicate never fires.
func NewLambda(predicate func() bool) *Lambda {
	if predicate == nil {
		predicate = func() bool { return false }
	}
	return &Lambda{predicate: predicate}
}

func (l *Lambda) ShouldTransition() bool { return l.predicate() }
func (l *Lambda) PassThrough()           {}
func (l *Lambda) Destroy()               {}
