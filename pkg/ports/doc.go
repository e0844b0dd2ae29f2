/*
Package ports defines the driven ports (interfaces) around HFSM machines.

These interfaces decouple the machine runtime from the processes that host it,
allowing drivers, debug servers and event stores to be swapped independently.

# Key Interfaces

  - Machine: read-only view of a compiled machine, including its event log.
  - Controller: serialized access to a machine ticked by another goroutine.
  - EventSink / EventReader: publishing and reading back drained machine events.
  - DefinitionLoader: responsible for loading machine definitions (e.g., from files).
*/
package ports
