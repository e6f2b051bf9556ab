package export

import (
	"io"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Row is one element of a drift-filled beam path.
type Row struct {
	Name   string         `yaml:"name" json:"name" cbor:"1,keyasint" msgpack:"name"`
	Class  string         `yaml:"class" json:"class" cbor:"2,keyasint" msgpack:"class"`
	Type   string         `yaml:"type" json:"type" cbor:"3,keyasint" msgpack:"type"`
	S      float64        `yaml:"s" json:"s" cbor:"4,keyasint" msgpack:"s"`
	Length float64        `yaml:"length" json:"length" cbor:"5,keyasint" msgpack:"length"`
	Angle  float64        `yaml:"angle,omitempty" json:"angle,omitempty" cbor:"6,keyasint,omitempty" msgpack:"angle,omitempty"`
	Middle element.Vector `yaml:"middle,flow" json:"middle" cbor:"7,keyasint" msgpack:"middle"`
	Area   string         `yaml:"machine_area,omitempty" json:"machine_area,omitempty" cbor:"8,keyasint,omitempty" msgpack:"machine_area,omitempty"`
}

// Table is a drift-filled beam path with exit s-positions.
type Table struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty" cbor:"1,keyasint,omitempty" msgpack:"path,omitempty"`
	Rows []Row  `yaml:"rows" json:"rows" cbor:"2,keyasint" msgpack:"rows"`
}

// BuildTable resolves q on the model, fills drifts and attaches s-positions.
// Path is the resolved beam path.
func BuildTable(m *lattice.Model, q lattice.Query, opts lattice.SOptions) (Table, error) {
	span, err := m.Span(q, opts)
	if err != nil {
		return Table{}, err
	}

	t := Table{Path: span.Path, Rows: make([]Row, 0, span.Elements.Len())}
	for i, e := range span.Elements.Elements() {
		t.Rows = append(t.Rows, Row{
			Name:   e.Name,
			Class:  e.Class,
			Type:   e.Type,
			S:      span.SValues[i].S,
			Length: e.Geometry.Length,
			Angle:  e.Geometry.Angle,
			Middle: e.Geometry.Middle.Slice(),
			Area:   e.MachineArea,
		})
	}
	return t, nil
}

// WriteTable builds the table for q and encodes it.
func WriteTable(w io.Writer, m *lattice.Model, q lattice.Query, opts lattice.SOptions, enc Encoder) error {
	t, err := BuildTable(m, q, opts)
	if err != nil {
		return err
	}
	return enc.Encode(w, t)
}
