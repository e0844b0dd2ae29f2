/*
Package dsl builds hierarchical state machines.

A Graph accumulates states and transition edges and compiles them into an
immutable machine with Complete. Graphs are permissive: malformed calls are
logged and repaired with safe defaults. Wrap a graph with Checked to turn every
such call into a *domain.BuildError instead.

Example usage:

	b := dsl.New(dsl.WithName("door"))
	closed, _ := b.AddState("closed", states.NewEmpty())
	open, _ := b.AddState("open", states.NewEmpty())

	push := transitions.NewTriggered()
	_ = b.AddTransition(push, closed, open, "push")
	_ = b.AddTransition(transitions.Invert(push), open, closed, "release")

	m, err := b.Complete(domain.DefaultBehaviour())

Graphs come from a Pool and return to it on Complete or Release. A graph used
after that point fails with domain.ErrBuilderReleased.
*/
package dsl
