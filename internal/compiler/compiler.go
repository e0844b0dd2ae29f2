package compiler

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/internal/runtime"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/dsl"
	"github.com/aretw0/hfsm/pkg/transitions"
)

// Compiler turns definitions into machines through a builder.
type Compiler struct {
	logger  *slog.Logger
	pool    *dsl.Pool
	checked bool
	opts    []dsl.Option
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used by the builder, the machines and "log" states.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// WithPool sets the builder pool.
func WithPool(p *dsl.Pool) Option {
	return func(c *Compiler) { c.pool = p }
}

// WithChecked routes every definition through the safety-checking builder.
func WithChecked(checked bool) Option {
	return func(c *Compiler) { c.checked = checked }
}

// WithBuilderOptions adds options applied to every builder, such as a registry or hooks.
func WithBuilderOptions(opts ...dsl.Option) Option {
	return func(c *Compiler) { c.opts = append(c.opts, opts...) }
}

// New creates a compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger: logging.NewNop(),
		pool:   dsl.NewPool(4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a compiled definition.
type Result struct {
	Machine *runtime.Machine

	// Nested holds the machines of "machine" states, outermost first.
	Nested []*runtime.Machine

	triggers map[string]*transitions.Triggered
}

// Trigger arms the named trigger.
func (r *Result) Trigger(name string) error {
	t, ok := r.triggers[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTrigger, name)
	}
	t.Trigger()
	return nil
}

// Triggers returns the trigger names used by the definition, sorted.
func (r *Result) Triggers() []string {
	names := make([]string, 0, len(r.triggers))
	for name := range r.triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile builds the machine described by def.
// Trigger names are shared by the whole tree, nested machines included.
func (c *Compiler) Compile(def *dto.Definition) (*Result, error) {
	res := &Result{triggers: make(map[string]*transitions.Triggered)}
	m, err := c.compile(def, "", res)
	if err != nil {
		for _, nested := range res.Nested {
			_ = nested.Destroy()
		}
		return nil, err
	}
	res.Machine = m
	return res, nil
}

func (c *Compiler) builder(name string) dsl.Builder {
	opts := append([]dsl.Option{dsl.WithLogger(c.logger), dsl.WithName(name)}, c.opts...)
	g := c.pool.Get(opts...)
	if c.checked {
		return dsl.Checked(g)
	}
	return g
}

func (c *Compiler) compile(def *dto.Definition, parent string, res *Result) (*runtime.Machine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is nil")
	}
	name := def.Name
	if parent != "" {
		name = parent + "/" + name
	}

	b := c.builder(name)
	m, err := c.build(b, def, name, res)
	if err != nil {
		_ = b.Release()
		return nil, fmt.Errorf("machine %q: %w", name, err)
	}
	return m, nil
}

func (c *Compiler) build(b dsl.Builder, def *dto.Definition, name string, res *Result) (*runtime.Machine, error) {
	byName := make(map[string]domain.State, len(def.States))
	for _, sd := range def.States {
		if _, dup := byName[sd.Name]; dup && sd.Name != "" {
			return nil, fmt.Errorf("state %q declared twice", sd.Name)
		}
		s, err := c.state(sd, name, res)
		if err != nil {
			return nil, err
		}
		registered, err := b.AddState(sd.Name, s)
		if err != nil {
			return nil, err
		}
		byName[sd.Name] = registered
	}

	resolve := func(stateName string) (domain.State, error) {
		if stateName == "" {
			return nil, nil
		}
		s, ok := byName[stateName]
		if !ok {
			return nil, fmt.Errorf("unknown state %q", stateName)
		}
		return s, nil
	}

	for _, td := range def.Transitions {
		from, err := resolve(td.From)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", label(td), err)
		}
		to, err := resolve(td.To)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", label(td), err)
		}
		t, err := c.condition(td.When, res)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", label(td), err)
		}
		if err := b.AddTransition(t, from, to, td.Name); err != nil {
			return nil, err
		}
	}

	for _, td := range def.Any {
		to, err := resolve(td.To)
		if err != nil {
			return nil, fmt.Errorf("any-transition %s: %w", label(td), err)
		}
		t, err := c.condition(td.When, res)
		if err != nil {
			return nil, fmt.Errorf("any-transition %s: %w", label(td), err)
		}
		if err := b.AddAnyTransition(t, to, td.Name); err != nil {
			return nil, err
		}
	}

	if def.Default != "" {
		s, err := resolve(def.Default)
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		if err := b.SetDefaultState(s); err != nil {
			return nil, err
		}
	}

	return b.Complete(def.Behaviour.Params())
}

func label(td dto.TransitionDef) string {
	if td.Name != "" {
		return fmt.Sprintf("%q", td.Name)
	}
	return fmt.Sprintf("%s->%s", td.From, td.To)
}
