package dsl

import (
	"github.com/aretw0/hfsm/internal/runtime"
	"github.com/aretw0/hfsm/pkg/domain"
)

type edgeKey struct {
	t, from, to domain.Key
}

// CheckedBuilder rejects malformed calls with a *domain.BuildError before they reach
// the wrapped builder. Errors are raised by the offending call, never deferred to Complete.
// States and transitions must be addressable (see domain.Addressable); value types
// are rejected because two equal values could not be told apart.
type CheckedBuilder struct {
	inner   Builder
	states  map[domain.Key]string
	edges   map[edgeKey]struct{}
	anyEdge map[edgeKey]struct{}
}

var _ Builder = (*CheckedBuilder)(nil)

// Checked wraps b with referential-integrity checks.
func Checked(b Builder) *CheckedBuilder {
	c := &CheckedBuilder{inner: b}
	c.reset()
	return c
}

func (c *CheckedBuilder) reset() {
	c.states = make(map[domain.Key]string)
	c.edges = make(map[edgeKey]struct{})
	c.anyEdge = make(map[edgeKey]struct{})
}

func (c *CheckedBuilder) AddState(name string, s domain.State) (domain.State, error) {
	if domain.IsNil(s) {
		return nil, &domain.BuildError{Op: "add state", Name: name, Err: domain.ErrNilState}
	}
	if !domain.Addressable(s) {
		return nil, &domain.BuildError{Op: "add state", Name: name, Err: domain.ErrUnaddressableState}
	}
	key := domain.KeyOf(s)
	if _, ok := c.states[key]; ok {
		return nil, &domain.BuildError{Op: "add state", Name: name, Err: domain.ErrDuplicateState}
	}

	registered, err := c.inner.AddState(name, s)
	if err != nil {
		return nil, err
	}
	c.states[key] = name
	return registered, nil
}

func (c *CheckedBuilder) AddTransition(t domain.Transition, from, to domain.State, name string) error {
	const op = "add transition"
	if domain.IsNil(t) {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrNilTransition}
	}
	if !domain.Addressable(t) {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrUnaddressableTransition}
	}
	if domain.IsNil(from) || domain.IsNil(to) {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrNilState}
	}
	if err := c.registered(op, name, from, to); err != nil {
		return err
	}

	key := edgeKey{t: domain.KeyOf(t), from: domain.KeyOf(from), to: domain.KeyOf(to)}
	if _, ok := c.edges[key]; ok {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrDuplicateTransition}
	}

	if err := c.inner.AddTransition(t, from, to, name); err != nil {
		return err
	}
	c.edges[key] = struct{}{}
	return nil
}

func (c *CheckedBuilder) AddAnyTransition(t domain.Transition, to domain.State, name string) error {
	const op = "add any-transition"
	if domain.IsNil(t) {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrNilTransition}
	}
	if !domain.Addressable(t) {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrUnaddressableTransition}
	}
	if domain.IsNil(to) {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrNilState}
	}
	if err := c.registered(op, name, to); err != nil {
		return err
	}

	key := edgeKey{t: domain.KeyOf(t), to: domain.KeyOf(to)}
	if _, ok := c.anyEdge[key]; ok {
		return &domain.BuildError{Op: op, Name: name, Err: domain.ErrDuplicateTransition}
	}

	if err := c.inner.AddAnyTransition(t, to, name); err != nil {
		return err
	}
	c.anyEdge[key] = struct{}{}
	return nil
}

func (c *CheckedBuilder) SetDefaultState(s domain.State) error {
	const op = "set default state"
	if domain.IsNil(s) {
		return &domain.BuildError{Op: op, Err: domain.ErrNilState}
	}
	if err := c.registered(op, "", s); err != nil {
		return err
	}
	return c.inner.SetDefaultState(s)
}

func (c *CheckedBuilder) registered(op, name string, list ...domain.State) error {
	for _, s := range list {
		if _, ok := c.states[domain.KeyOf(s)]; !ok {
			return &domain.BuildError{Op: op, Name: name, Err: domain.ErrUnregisteredState}
		}
	}
	return nil
}

// Complete always hands the wrapped builder back to its pool, including when it
// rejects an empty graph.
func (c *CheckedBuilder) Complete(params domain.BehaviourParameters) (*runtime.Machine, error) {
	defer c.reset()
	if len(c.states) == 0 {
		if err := c.inner.Release(); err != nil {
			return nil, err
		}
		return nil, &domain.BuildError{Op: "complete", Err: domain.ErrNoStates}
	}
	return c.inner.Complete(params)
}

func (c *CheckedBuilder) Clear() error {
	if err := c.inner.Clear(); err != nil {
		return err
	}
	c.reset()
	return nil
}

func (c *CheckedBuilder) Release() error {
	if err := c.inner.Release(); err != nil {
		return err
	}
	c.reset()
	return nil
}
