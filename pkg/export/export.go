package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Machine directory names.
const (
	ElementsDir  = "elements"
	SectionsName = "sections"
	LayoutsName  = "layouts"
)

// SectionsDocument is the serialised form of section definitions.
type SectionsDocument struct {
	Sections ordered[[]string] `yaml:"sections" json:"sections" cbor:"sections" msgpack:"sections"`
}

// LayoutsDocument is the serialised form of beam path definitions.
type LayoutsDocument struct {
	Layouts ordered[[]string] `yaml:"layouts" json:"layouts" cbor:"layouts" msgpack:"layouts"`
	Default string            `yaml:"default_layout,omitempty" json:"default_layout,omitempty" cbor:"default_layout,omitempty" msgpack:"default_layout,omitempty"`
}

// NewSectionsDocument converts definitions, keeping their order.
func NewSectionsDocument(defs lattice.SectionDefinitions) SectionsDocument {
	doc := SectionsDocument{Sections: make(ordered[[]string], 0, len(defs))}
	for _, d := range defs {
		doc.Sections = append(doc.Sections, entry[[]string]{Key: d.Name, Value: nonNil(d.Members)})
	}
	return doc
}

// NewLayoutsDocument converts definitions, keeping their order.
func NewLayoutsDocument(defs lattice.LayoutDefinitions) LayoutsDocument {
	doc := LayoutsDocument{
		Layouts: make(ordered[[]string], 0, len(defs.Layouts)),
		Default: defs.Default,
	}
	for _, d := range defs.Layouts {
		doc.Layouts = append(doc.Layouts, entry[[]string]{Key: d.Name, Value: nonNil(d.Sections)})
	}
	return doc
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// WriteElement writes one element as a single record with its name.
func WriteElement(w io.Writer, e *element.Element, enc Encoder) error {
	return enc.Encode(w, element.ToRecord(e))
}

// WriteElements writes elements as one name -> record document in order.
func WriteElements(w io.Writer, elems []*element.Element, enc Encoder) error {
	doc := make(ordered[element.Record], 0, len(elems))
	for _, e := range elems {
		rec := element.ToRecord(e)
		rec.Name = ""
		doc = append(doc, entry[element.Record]{Key: e.Name, Value: rec})
	}
	return enc.Encode(w, doc)
}

// ElementPath is the file of an element below root: class/type/name.ext.
func ElementPath(root string, e *element.Element, enc Encoder) string {
	return filepath.Join(root, safeName(e.Class), safeName(e.Type), safeName(e.Name)+"."+enc.Extension())
}

func safeName(s string) string {
	if s == "" {
		return "_"
	}
	return strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(s)
}

// WriteElementFiles writes one file per element below root and returns the
// paths in element order.
func WriteElementFiles(root string, elems []*element.Element, enc Encoder) ([]string, error) {
	paths := make([]string, 0, len(elems))
	for _, e := range elems {
		p := ElementPath(root, e, enc)
		if err := writeFile(p, func(w io.Writer) error { return WriteElement(w, e, enc) }); err != nil {
			return paths, fmt.Errorf("export element %s: %w", e.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// WriteMachine writes the model as a machine directory: one file per element
// under ElementsDir plus the section and beam path definitions. Inferred
// sections are written explicitly.
func WriteMachine(dir string, m *lattice.Model, enc Encoder) ([]string, error) {
	paths, err := WriteElementFiles(filepath.Join(dir, ElementsDir), m.Elements(), enc)
	if err != nil {
		return paths, err
	}

	sections, layouts := m.Definitions()
	p := filepath.Join(dir, SectionsName+"."+enc.Extension())
	if err := writeFile(p, func(w io.Writer) error { return enc.Encode(w, NewSectionsDocument(sections)) }); err != nil {
		return paths, fmt.Errorf("export sections: %w", err)
	}
	paths = append(paths, p)

	p = filepath.Join(dir, LayoutsName+"."+enc.Extension())
	if err := writeFile(p, func(w io.Writer) error { return enc.Encode(w, NewLayoutsDocument(layouts)) }); err != nil {
		return paths, fmt.Errorf("export layouts: %w", err)
	}
	return append(paths, p), nil
}

// WriteSummary writes the model snapshot returned by Model.Info.
func WriteSummary(w io.Writer, m *lattice.Model, enc Encoder) error {
	return enc.Encode(w, m.Info())
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
