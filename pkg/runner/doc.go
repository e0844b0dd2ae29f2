/*
Package runner drives HFSM machines from a goroutine.

A Driver owns one machine: it ticks it at a fixed interval, applies named triggers
queued from other goroutines and forwards the drained debug events to event sinks.
Everything that touches the machine runs under the driver lock, which makes the
Driver the only safe way to share a machine with readers such as the debug server.

# Usage

	res, _ := compiler.New().Compile(def)
	d := runner.NewDriver(res.Machine,
		runner.WithTriggers(res),
		runner.WithInterval(50*time.Millisecond),
		runner.WithSinks(redis.NewFromClient(client)),
	)

	if err := d.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
