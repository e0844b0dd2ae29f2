package dsl

import "sync"

// Pool recycles graph storage between builds.
// The mutex guards the free-list only; a Graph itself is not safe for concurrent use.
type Pool struct {
	mu   sync.Mutex
	free []*graph
	size int
}

// DefaultPoolSize is the idle capacity of the package-level pool used by New.
const DefaultPoolSize = 16

var defaultPool = NewPool(DefaultPoolSize)

// NewPool creates a pool keeping at most size idle graphs.
func NewPool(size int) *Pool {
	return &Pool{size: size}
}

// Get leases a graph configured with opts.
func (p *Pool) Get(opts ...Option) *Graph {
	p.mu.Lock()
	var g *graph
	if n := len(p.free); n > 0 {
		g = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	}
	p.mu.Unlock()

	if g == nil {
		g = newGraph()
	}
	for _, opt := range opts {
		opt(g)
	}
	return &Graph{g: g, gen: g.gen, pool: p}
}

// Checked leases a graph wrapped in the safety-checking decorator.
func (p *Pool) Checked(opts ...Option) *CheckedBuilder {
	return Checked(p.Get(opts...))
}

// Idle returns the number of graphs waiting for reuse.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

func (p *Pool) put(g *graph) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) < p.size {
		p.free = append(p.free, g)
	}
}
