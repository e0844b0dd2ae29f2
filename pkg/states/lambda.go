package states

// Lambda is a state assembled from callbacks. Omitted callbacks are no-ops.
type Lambda struct {
	enter   func() error
	update  func(delta float64) error
	exit    func() error
	destroy func() error
}

// LambdaOption configures a Lambda state.
type LambdaOption func(*Lambda)

// OnEnter sets the enter callback.
func OnEnter(fn func() error) LambdaOption {
	return func(l *Lambda) { l.enter = fn }
}

// OnUpdate sets the update callback.
func OnUpdate(fn func(delta float64) error) LambdaOption {
	return func(l *Lambda) { l.update = fn }
}

// OnExit sets the exit callback.
func OnExit(fn func() error) LambdaOption {
	return func(l *Lambda) { l.exit = fn }
}

// OnDestroy sets the destroy callback.
func OnDestroy(fn func() error) LambdaOption {
	return func(l *Lambda) { l.destroy = fn }
}

// NewLambda builds a state from the given callbacks.
func NewLambda(opts ...LambdaOption) *Lambda {
	l := &Lambda{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lambda) Enter() error {
	if l.enter == nil {
		return nil
	}
	return l.enter()
}

func (l *Lambda) Update(delta float64) error {
	if l.update == nil {
		return nil
	}
	return l.update(delta)
}

func (l *Lambda) Exit() error {
	if l.exit == nil {
		return nil
	}
	return l.exit()
}

func (l *Lambda) Destroy() error {
	if l.destroy == nil {
		return nil
	}
	return l.destroy()
}
