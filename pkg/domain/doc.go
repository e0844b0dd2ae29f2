/*
Package domain contains the core contracts of the hfsm runtime.

It defines the lifecycle of states, the predicate-plus-effect contract of transitions,
and the read-only introspection surface consumed by debugging tools. This package is
kept pure and free of I/O, following the same hexagonal layout as the rest of the module.

# Key Entities

  - State: host-supplied behaviour with Enter, Update, Exit and Destroy.
  - Transition: a predicate (ShouldTransition) with a side effect (PassThrough).
  - TransitionMapping: an edge record pairing a transition with its destination.
  - Lifecycle: the Enable/Disable/Update/Destroy surface of a machine.
  - Inspector: read-only view of a compiled machine.
*/
package domain
