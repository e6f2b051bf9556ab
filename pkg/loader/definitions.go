package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// ParseSections parses a sections document, keeping mapping order.
func ParseSections(data []byte) (lattice.SectionDefinitions, error) {
	doc, err := document(data)
	if err != nil {
		return nil, err
	}
	_, value := mappingValue(doc, "sections")
	if value == nil {
		return nil, missingKey(doc, "sections")
	}
	if value.Kind != yaml.MappingNode {
		return nil, &LoadError{Line: value.Line, Message: "sections must be a mapping of name to members"}
	}

	defs := make(lattice.SectionDefinitions, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, members := value.Content[i], value.Content[i+1]
		names, err := nameList(members, fmt.Sprintf("section %q", key.Value))
		if err != nil {
			return nil, err
		}
		defs = append(defs, lattice.SectionDefinition{Name: key.Value, Members: names})
	}
	return defs, nil
}

// ParseLayouts parses a layouts document, keeping mapping order.
func ParseLayouts(data []byte) (lattice.LayoutDefinitions, error) {
	var defs lattice.LayoutDefinitions
	doc, err := document(data)
	if err != nil {
		return defs, err
	}
	_, value := mappingValue(doc, "layouts")
	if value == nil {
		return defs, missingKey(doc, "layouts")
	}
	if value.Kind != yaml.MappingNode {
		return defs, &LoadError{Line: value.Line, Message: "layouts must be a mapping of name to sections"}
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, sections := value.Content[i], value.Content[i+1]
		names, err := nameList(sections, fmt.Sprintf("layout %q", key.Value))
		if err != nil {
			return defs, err
		}
		defs.Layouts = append(defs.Layouts, lattice.LayoutDefinition{Name: key.Value, Sections: names})
	}

	if _, d := mappingValue(doc, "default_layout"); d != nil {
		if d.Kind != yaml.ScalarNode {
			return defs, &LoadError{Line: d.Line, Message: "default_layout must be a layout name"}
		}
		defs.Default = d.Value
	}
	return defs, nil
}

func missingKey(doc *yaml.Node, key string) error {
	line := 1
	if doc != nil {
		line = doc.Line
	}
	return &LoadError{
		Line:    line,
		Message: fmt.Sprintf("missing %q key", key),
		Cause:   &lattice.ConfigurationError{Reason: key + " not defined"},
	}
}

// LoadSections loads a sections file.
func LoadSections(path string) (lattice.SectionDefinitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	defs, err := ParseSections(data)
	if err != nil {
		return nil, withFile(err, path)
	}
	return defs, nil
}

// LoadLayouts loads a layouts file.
func LoadLayouts(path string) (lattice.LayoutDefinitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lattice.LayoutDefinitions{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	defs, err := ParseLayouts(data)
	if err != nil {
		return lattice.LayoutDefinitions{}, withFile(err, path)
	}
	return defs, nil
}
