/*
Package hfsm is a hierarchical finite state machine library for tick-driven hosts such as game loops, simulations and controllers.

A machine is a set of states joined by transitions. Each Update first evaluates the transitions leaving the active state, then updates it, then evaluates again. A state may itself be a machine (Substate), a group of states driven together (Parallel) or a resumable routine (Coroutine).

# Concept

Machines are assembled through a builder and are immutable once completed. Transitions are small predicates with a side effect invoked when the edge is taken; they compose with Invert, AllPasses and AnyPasses. Triggered transitions are latches armed by the host and cleared when the edge is crossed.

# Key Features

  - Priority Rules: edges leaving the active state are checked before "any state" edges, in registration order.
  - Bounded Chains: a single Update takes at most MaxTransitionPasses edges.
  - Safe Building: the checked builder reports nil, duplicate and unregistered states instead of repairing them.
  - Introspection: every machine exposes its states, edges, active path and a coalescing event log.
  - Declarative Definitions: machines can be loaded from YAML or JSON files.

# Usage

	package main

	import (
		"log"

		"github.com/aretw0/hfsm"
		"github.com/aretw0/hfsm/pkg/states"
		"github.com/aretw0/hfsm/pkg/transitions"
	)

	func main() {
		eng := hfsm.New()

		b := eng.CheckedBuilder()
		idle, _ := b.AddState("idle", states.NewEmpty())
		moving, _ := b.AddState("moving", states.NewEmpty())

		start := transitions.NewTriggered()
		if err := b.AddTransition(start, idle, moving, "start"); err != nil {
			log.Fatal(err)
		}

		m, err := b.Complete(hfsm.DefaultBehaviour())
		if err != nil {
			log.Fatal(err)
		}
		defer m.Destroy()

		_ = m.Enable()
		start.Trigger()
		_ = m.Update(1.0 / 60)
		log.Println(m) // moving
	}
*/
package hfsm
