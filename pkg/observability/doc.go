/*
Package observability provides lifecycle hooks for monitoring HFSM machines.

Metrics binds Prometheus counters to machine hooks, and LoggingHooks writes every
enter, exit and transition to a structured logger. Both return domain.Hooks that
can be merged and handed to a builder with dsl.WithHooks.
*/
package observability
