package ports

import "github.com/aretw0/hfsm/internal/dto"

// DefinitionLoader defines how machine definitions are retrieved.
// This allows the storage layer (files, memory) to be decoupled from the compiler.
type DefinitionLoader interface {
	// Load parses the definition stored under name.
	Load(name string) (*dto.Definition, error)
}
