/*
Package transitions provides the stock Transition implementations.

  - Always: constant true, shared singleton.
  - Lambda: wraps a host predicate.
  - Triggered: an event-driven latch set by Trigger and cleared by PassThrough.
  - Invert: negates another transition while delegating its side effects.
  - AllPasses / AnyPasses: AND / OR composites.

Composites short-circuit predicate evaluation but always forward PassThrough and
Destroy to every member. Inversions and composites share state with the transitions
they wrap: inverting a Triggered and using both directions shares one latch.
*/
package transitions
