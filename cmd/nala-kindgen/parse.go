package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultModel is used for kinds without an explicit model.
const defaultModel = "Generic"

// RawKinds is the root of a kinds YAML file.
type RawKinds struct {
	Kinds []RawKind `yaml:"kinds"`
}

// RawKind describes one hardware type.
type RawKind struct {
	Type        string   `yaml:"type"`
	Class       string   `yaml:"class"`
	Model       string   `yaml:"model"`
	Aliases     []string `yaml:"aliases"`
	Description string   `yaml:"description"`
}

// ParseKinds parses and validates a kinds definition from YAML bytes.
func ParseKinds(data []byte) (*RawKinds, error) {
	var def RawKinds
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing kinds: %w", err)
	}
	if len(def.Kinds) == 0 {
		return nil, fmt.Errorf("kinds definition is empty")
	}

	seen := make(map[string]string)
	for i := range def.Kinds {
		k := &def.Kinds[i]
		if k.Type == "" {
			return nil, fmt.Errorf("kind %d: missing type", i+1)
		}
		if k.Class == "" {
			return nil, fmt.Errorf("kind %s: missing class", k.Type)
		}
		if k.Model == "" {
			k.Model = defaultModel
		}
		for _, name := range append([]string{k.Type}, k.Aliases...) {
			key := strings.ToLower(name)
			if prev, ok := seen[key]; ok {
				return nil, fmt.Errorf("kind %s: name %q already used by %s", k.Type, name, prev)
			}
			seen[key] = k.Type
		}
	}
	return &def, nil
}

// LoadKinds loads and parses a kinds definition from a file.
func LoadKinds(path string) (*RawKinds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseKinds(data)
}

// Classes returns the distinct classes in order of first use.
func (d *RawKinds) Classes() []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range d.Kinds {
		if !seen[k.Class] {
			seen[k.Class] = true
			out = append(out, k.Class)
		}
	}
	return out
}
