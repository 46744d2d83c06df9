package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// columnFile mirrors one schema entry on disk.
type columnFile struct {
	Name    string         `yaml:"name" json:"name"`
	Type    string         `yaml:"type" json:"type"`
	Options map[string]any `yaml:"options" json:"options"`
}

// Load reads a schema file and returns the ordered, normalized column specs.
// The extension selects the decoder: ".json" is parsed as JSON, anything
// else as YAML.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes schema bytes in the format selected by ext.
func Parse(data []byte, ext string) (Schema, error) {
	var cols []columnFile
	if ext == ".json" {
		if err := json.Unmarshal(data, &cols); err != nil {
			return nil, fmt.Errorf("failed to parse schema: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cols); err != nil {
			return nil, fmt.Errorf("failed to parse schema: %w", err)
		}
	}

	schema := make(Schema, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d: name is required", i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("column %q: %w", c.Name, ErrDuplicateColumn)
		}
		seen[c.Name] = true

		typ, err := ParseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		opts, err := normalizeOptions(typ, c.Options)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		schema = append(schema, Column{Name: c.Name, Type: typ, Options: opts})
	}
	return schema, nil
}
