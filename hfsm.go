package hfsm

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/hfsm/internal/compiler"
	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/internal/runtime"
	"github.com/aretw0/hfsm/pkg/adapters/file"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/dsl"
	"github.com/aretw0/hfsm/pkg/ports"
	"github.com/aretw0/hfsm/pkg/registry"
	"github.com/aretw0/hfsm/pkg/runner"
)

// Version is the library release.
const Version = "0.1.0"

type (
	State               = domain.State
	Transition          = domain.Transition
	Hooks               = domain.Hooks
	MachineEvent        = domain.MachineEvent
	BehaviourParameters = domain.BehaviourParameters
	Inspector           = domain.Inspector

	// Machine is a completed state machine.
	Machine = runtime.Machine

	// Definition is the declarative form of a machine.
	Definition    = dto.Definition
	StateDef      = dto.StateDef
	TransitionDef = dto.TransitionDef
	Condition     = dto.Condition

	// Compiled is a machine built from a Definition along with its named triggers.
	Compiled = compiler.Result
)

// DefaultBehaviour returns the default machine behaviour parameters.
func DefaultBehaviour() BehaviourParameters {
	return domain.DefaultBehaviour()
}

// Engine is the high-level entry point of the library.
// It owns a builder pool and a registry of live machines.
type Engine struct {
	logger   *slog.Logger
	pool     *dsl.Pool
	registry *registry.Registry
	loader   ports.DefinitionLoader
	hooks    domain.Hooks
	checked  bool
	capacity int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the logger handed to builders and machines.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithLoader sets the source of definitions used by Load.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithRegistry shares a registry between engines.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithLifecycleHooks registers observability hooks on every machine built by the engine.
func WithLifecycleHooks(h domain.Hooks) Option {
	return func(e *Engine) { e.hooks = e.hooks.Merge(h) }
}

// WithPoolSize bounds the number of idle builders kept for reuse.
func WithPoolSize(n int) Option {
	return func(e *Engine) { e.pool = dsl.NewPool(n) }
}

// WithStrictDefinitions compiles definitions through the checked builder.
func WithStrictDefinitions(strict bool) Option {
	return func(e *Engine) { e.checked = strict }
}

// WithEventCapacity sets the event buffer capacity of every machine.
func WithEventCapacity(n int) Option {
	return func(e *Engine) { e.capacity = n }
}

// New creates an Engine. Definitions are loaded from the working directory unless
// WithLoader is given.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   logging.NewNop(),
		pool:     dsl.NewPool(dsl.DefaultPoolSize),
		registry: registry.NewRegistry(),
		loader:   file.NewLoader("."),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) builderOptions(extra []dsl.Option) []dsl.Option {
	opts := []dsl.Option{
		dsl.WithLogger(e.logger),
		dsl.WithRegistry(e.registry),
		dsl.WithHooks(e.hooks),
		dsl.WithEventCapacity(e.capacity),
	}
	return append(opts, extra...)
}

// Builder leases a permissive builder from the pool.
func (e *Engine) Builder(opts ...dsl.Option) *dsl.Graph {
	return e.pool.Get(e.builderOptions(opts)...)
}

// CheckedBuilder leases a safety-checking builder from the pool.
func (e *Engine) CheckedBuilder(opts ...dsl.Option) *dsl.CheckedBuilder {
	return e.pool.Checked(e.builderOptions(opts)...)
}

// Compile builds a machine from a definition.
func (e *Engine) Compile(def *Definition) (*Compiled, error) {
	c := compiler.New(
		compiler.WithLogger(e.logger),
		compiler.WithPool(e.pool),
		compiler.WithChecked(e.checked),
		compiler.WithBuilderOptions(dsl.WithRegistry(e.registry), dsl.WithHooks(e.hooks), dsl.WithEventCapacity(e.capacity)),
	)
	return c.Compile(def)
}

// Load reads a named definition through the engine loader and compiles it.
func (e *Engine) Load(name string) (*Compiled, error) {
	def, err := e.loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition %q: %w", name, err)
	}
	return e.Compile(def)
}

// Drive wraps a compiled machine in a driver that ticks it on an interval.
func (e *Engine) Drive(c *Compiled, opts ...runner.Option) *runner.Driver {
	opts = append([]runner.Option{runner.WithLogger(e.logger), runner.WithTriggers(c)}, opts...)
	return runner.NewDriver(c.Machine, opts...)
}

// Machines lists the live machines built by the engine, nested ones included.
func (e *Engine) Machines() []Inspector {
	return e.registry.List()
}

// Registry exposes the registry of live machines.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}
