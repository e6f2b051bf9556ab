package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nala-lattice/nala-go/pkg/element"
)

// ParseElements parses an element document. A top-level hardware_type key
// marks a single record, which must then carry a name; anything else is read
// as a name -> record mapping in document order.
func ParseElements(data []byte) ([]*element.Element, error) {
	doc, err := document(data)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &LoadError{Line: doc.Line, Message: "element document must be a mapping"}
	}

	if k, _ := mappingValue(doc, "hardware_type"); k != nil {
		e, err := decodeRecord(doc, "", doc.Line)
		if err != nil {
			return nil, err
		}
		return []*element.Element{e}, nil
	}

	seen := make(map[string]int)
	out := make([]*element.Element, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if first, dup := seen[key.Value]; dup {
			return nil, &LoadError{
				Line:    key.Line,
				Message: fmt.Sprintf("duplicate element %q (first defined on line %d)", key.Value, first),
			}
		}
		seen[key.Value] = key.Line

		e, err := decodeRecord(value, key.Value, key.Line)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeRecord(n *yaml.Node, name string, line int) (*element.Element, error) {
	if n.Kind != yaml.MappingNode {
		return nil, &LoadError{Line: line, Message: fmt.Sprintf("element %q must be a mapping", name)}
	}
	var rec element.Record
	if err := n.Decode(&rec); err != nil {
		return nil, &LoadError{Line: line, Message: fmt.Sprintf("element %q", name), Cause: err}
	}
	switch {
	case rec.Name == "":
		rec.Name = name
	case name != "" && rec.Name != name:
		return nil, &LoadError{
			Line:    line,
			Message: fmt.Sprintf("element key %q does not match name %q", name, rec.Name),
		}
	}
	e, err := rec.Element()
	if err != nil {
		return nil, &LoadError{Line: line, Message: fmt.Sprintf("element %q", rec.Name), Cause: err}
	}
	return e, nil
}

// LoadElements loads the elements of one file.
func LoadElements(path string) ([]*element.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	elems, err := ParseElements(data)
	if err != nil {
		return nil, withFile(err, path)
	}
	return elems, nil
}
