package dsl

import (
	"log/slog"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/registry"
)

// Option configures a Graph acquired from a pool.
type Option func(*graph)

// WithName sets the machine display name.
func WithName(name string) Option {
	return func(g *graph) {
		if name != "" {
			g.name = name
		}
	}
}

// WithLogger sets the logger used for build warnings and by the compiled machine.
func WithLogger(logger *slog.Logger) Option {
	return func(g *graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRegistry registers the compiled machine and unregisters it on Destroy.
func WithRegistry(r *registry.Registry) Option {
	return func(g *graph) { g.registry = r }
}

// WithHooks adds lifecycle hooks to the compiled machine.
func WithHooks(h domain.Hooks) Option {
	return func(g *graph) { g.hooks = g.hooks.Merge(h) }
}

// WithEventCapacity sets the capacity of the machine event buffer.
func WithEventCapacity(n int) Option {
	return func(g *graph) {
		if n > 0 {
			g.eventCapacity = n
		}
	}
}
