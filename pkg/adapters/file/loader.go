package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/hfsm/internal/dto"
)

// Loader implements ports.DefinitionLoader on the local filesystem.
// Relative names are resolved against BasePath.
type Loader struct {
	BasePath string
}

// NewLoader creates a loader rooted at basePath.
func NewLoader(basePath string) *Loader {
	return &Loader{BasePath: basePath}
}

// Load reads and decodes a definition. The format is chosen by extension:
// ".json" is decoded as JSON, anything else as YAML.
func (l *Loader) Load(name string) (*dto.Definition, error) {
	path := name
	if !filepath.IsAbs(path) && l.BasePath != "" {
		path = filepath.Join(l.BasePath, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	def, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Decode parses a definition document. ext selects JSON when it is ".json".
func Decode(data []byte, ext string) (*dto.Definition, error) {
	var raw map[string]any
	if strings.ToLower(ext) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json definition: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("definition is empty")
	}

	var def dto.Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &def, nil
}
