package main

import (
	"github.com/aretw0/hfsm/pkg/ports"
	"github.com/aretw0/hfsm/pkg/runner"
)

func pathOf(d *runner.Driver) string {
	var path string
	d.Inspect(func(m ports.Machine) { path = m.String() })
	return path
}

func tickOf(d *runner.Driver) uint64 {
	var tick uint64
	d.Inspect(func(m ports.Machine) { tick = m.Tick() })
	return tick
}
