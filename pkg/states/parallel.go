package states

import "github.com/aretw0/hfsm/pkg/domain"

// Parallel runs several substates side by side.
// Every call visits the substates in registration order and returns the first error.
type Parallel struct {
	substates []domain.State
}

// NewParallel wraps substates. Nil entries are dropped.
func NewParallel(substates ...domain.State) *Parallel {
	p := &Parallel{substates: make([]domain.State, 0, len(substates))}
	for _, s := range substates {
		if domain.IsNil(s) {
			continue
		}
		p.substates = append(p.substates, s)
	}
	return p
}

// Substates returns the wrapped states in order.
func (p *Parallel) Substates() []domain.State {
	return append([]domain.State(nil), p.substates...)
}

func (p *Parallel) Enter() error {
	return p.each(func(s domain.State) error { return s.Enter() })
}

func (p *Parallel) Update(delta float64) error {
	return p.each(func(s domain.State) error { return s.Update(delta) })
}

func (p *Parallel) Exit() error {
	return p.each(func(s domain.State) error { return s.Exit() })
}

func (p *Parallel) Destroy() error {
	return p.each(func(s domain.State) error { return s.Destroy() })
}

func (p *Parallel) each(fn func(domain.State) error) error {
	for _, s := range p.substates {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}
