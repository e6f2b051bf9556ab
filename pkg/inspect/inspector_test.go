package inspect

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

func place(name, hwType, area string, z, length float64) *element.Element {
	e := element.New(name, hwType)
	e.MachineArea = area
	e.Geometry.Middle = geometry.Position{Z: z}
	e.Geometry.Length = length
	return e
}

func newTestInspector(t *testing.T) *Inspector {
	t.Helper()
	bpm := place("INJ-BPM-01", element.TypeBeamPositionMonitor, "INJ", 2, 0.1)
	bpm.Subelement = "INJ-QUAD-01"

	m, err := lattice.New([]*element.Element{
		place("INJ-CAV-01", element.TypeRFCavity, "INJ", 0.5, 1),
		place("INJ-QUAD-01", element.TypeQuadrupole, "INJ", 2, 0.2),
		bpm,
		place("L01-QUAD-01", element.TypeQuadrupole, "L01", 5, 0.2),
		place("SP1-DIP-01", element.TypeDipole, "SP1", 10, 0.4),
	}, lattice.WithLayouts(lattice.LayoutDefinitions{
		Layouts: []lattice.LayoutDefinition{
			{Name: "line", Sections: []string{"INJ", "L01"}},
			{Name: "SP1", Sections: []string{"INJ", "SP1"}},
		},
		Default: "line",
	}))
	if err != nil {
		t.Fatalf("lattice.New() error = %v", err)
	}
	return NewInspector(m)
}

func mustParse(t *testing.T, s string) *Path {
	t.Helper()
	p, err := ParsePath(s)
	if err != nil {
		t.Fatalf("ParsePath(%q) error = %v", s, err)
	}
	return p
}

func TestInspectCollections(t *testing.T) {
	insp := newTestInspector(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"layouts", "sections", "elements"}},
		{"layouts", []string{"line", "SP1"}},
		{"sections", []string{"INJ", "L01", "SP1"}},
		{"elements", []string{"INJ-CAV-01", "INJ-QUAD-01", "INJ-BPM-01", "L01-QUAD-01", "SP1-DIP-01"}},
		{"layouts/SP1", []string{"INJ", "SP1"}},
		{"layouts/line/L01", []string{"L01-QUAD-01"}},
		{"sections/INJ", []string{"INJ-CAV-01", "INJ-QUAD-01", "INJ-BPM-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := insp.Children(mustParse(t, tt.path))
			if err != nil {
				t.Fatalf("Children() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Children(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestInspectNodes(t *testing.T) {
	insp := newTestInspector(t)

	n, err := insp.Inspect(mustParse(t, "/"))
	if err != nil {
		t.Fatalf("Inspect(/) error = %v", err)
	}
	if n.Model == nil || n.Model.DefaultPath != "line" {
		t.Errorf("Inspect(/) model = %+v", n.Model)
	}

	n, err = insp.Inspect(mustParse(t, "layouts/line"))
	if err != nil {
		t.Fatalf("Inspect(layout) error = %v", err)
	}
	if n.Layout == nil || n.Layout.Elements != 4 {
		t.Errorf("Inspect(layout) = %+v", n.Layout)
	}

	n, err = insp.Inspect(mustParse(t, "layouts/line/INJ/INJ-QUAD-01"))
	if err != nil {
		t.Fatalf("Inspect(element) error = %v", err)
	}
	if n.Element == nil || n.Element.Type != element.TypeQuadrupole {
		t.Errorf("Inspect(element) = %+v", n.Element)
	}

	// Returned elements are copies.
	n.Element.Geometry.Length = 99
	e, _ := insp.Model().GetElement("INJ-QUAD-01")
	if e.Geometry.Length != 0.2 {
		t.Errorf("stored length changed to %v", e.Geometry.Length)
	}

	if _, err := insp.Inspect(nil); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Inspect(nil) error = %v", err)
	}
}

func TestInspectNotFound(t *testing.T) {
	insp := newTestInspector(t)

	tests := []struct {
		path string
		want error
	}{
		{"layouts/ring", ErrLayoutNotFound},
		{"layouts/line/SP1", ErrSectionNotFound},
		{"sections/XYZ", ErrSectionNotFound},
		{"layouts/line/INJ/L01-QUAD-01", ErrElementNotFound},
		{"sections/INJ/SP1-DIP-01", ErrElementNotFound},
		{"elements/missing", ErrElementNotFound},
		{"elements/missing/length", ErrElementNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := insp.Inspect(mustParse(t, tt.path))
			if !errors.Is(err, tt.want) {
				t.Errorf("Inspect(%s) error = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
}

func TestReadAttribute(t *testing.T) {
	insp := newTestInspector(t)

	tests := []struct {
		path string
		want any
	}{
		{"elements/INJ-QUAD-01/type", element.TypeQuadrupole},
		{"elements/INJ-QUAD-01/class", element.ClassMagnet},
		{"elements/INJ-QUAD-01/area", "INJ"},
		{"elements/INJ-QUAD-01/length", 0.2},
		{"elements/INJ-QUAD-01/middle", geometry.Position{Z: 2}},
		{"elements/INJ-QUAD-01/start", geometry.Position{Z: 1.9}},
		{"elements/INJ-QUAD-01/subelement", false},
		{"elements/INJ-BPM-01/subelement", "INJ-QUAD-01"},
		{"elements/INJ-QUAD-01/s", 2.1},
		{"layouts/SP1/SP1/SP1-DIP-01/s", 10.2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, err := insp.ReadAttribute(mustParse(t, tt.path))
			if err != nil {
				t.Fatalf("ReadAttribute() error = %v", err)
			}
			if f, ok := tt.want.(float64); ok {
				got, _ := v.Value.(float64)
				if diff := got - f; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("ReadAttribute(%s) = %v, want %v", tt.path, v.Value, f)
				}
				return
			}
			if p, ok := tt.want.(geometry.Position); ok {
				got, _ := v.Value.(geometry.Position)
				if got.DistanceTo(p) > 1e-9 {
					t.Errorf("ReadAttribute(%s) = %v, want %v", tt.path, v.Value, p)
				}
				return
			}
			if !reflect.DeepEqual(v.Value, tt.want) {
				t.Errorf("ReadAttribute(%s) = %#v, want %#v", tt.path, v.Value, tt.want)
			}
		})
	}

	if _, err := insp.ReadAttribute(mustParse(t, "elements/INJ-BPM-01/s")); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("subelement s error = %v, want ErrAttributeNotFound", err)
	}
	if _, err := insp.ReadAttribute(mustParse(t, "elements/INJ-BPM-01")); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("non-attribute path error = %v, want ErrInvalidPath", err)
	}
}

func TestWriteAttribute(t *testing.T) {
	insp := newTestInspector(t)
	before := insp.Model().BuildID()

	if err := insp.WriteAttribute(mustParse(t, "elements/L01-QUAD-01/length"), "0.5"); err != nil {
		t.Fatalf("WriteAttribute(length) error = %v", err)
	}
	e, _ := insp.Model().GetElement("L01-QUAD-01")
	if e.Geometry.Length != 0.5 {
		t.Errorf("length = %v, want 0.5", e.Geometry.Length)
	}
	if insp.Model().BuildID() == before {
		t.Error("model was not rebuilt")
	}

	if err := insp.WriteAttribute(mustParse(t, "sections/L01/L01-QUAD-01/middle"), "[0.1, 0, 5.5]"); err != nil {
		t.Fatalf("WriteAttribute(middle) error = %v", err)
	}
	e, _ = insp.Model().GetElement("L01-QUAD-01")
	if e.Geometry.Middle != (geometry.Position{X: 0.1, Z: 5.5}) {
		t.Errorf("middle = %v", e.Geometry.Middle)
	}

	if err := insp.WriteAttribute(mustParse(t, "elements/L01-QUAD-01/rotation"), "0.25"); err != nil {
		t.Fatalf("WriteAttribute(rotation) error = %v", err)
	}
	e, _ = insp.Model().GetElement("L01-QUAD-01")
	if e.Geometry.Rotation.Theta != 0.25 {
		t.Errorf("rotation = %v", e.Geometry.Rotation)
	}

	if err := insp.WriteAttribute(mustParse(t, "elements/INJ-BPM-01/subelement"), "false"); err != nil {
		t.Fatalf("WriteAttribute(subelement) error = %v", err)
	}
	e, _ = insp.Model().GetElement("INJ-BPM-01")
	if e.IsSubelement() {
		t.Error("INJ-BPM-01 still a subelement")
	}
}

func TestWriteAttributeErrors(t *testing.T) {
	insp := newTestInspector(t)

	tests := []struct {
		path  string
		value string
		want  error
	}{
		{"elements/L01-QUAD-01/class", "Laser", ErrNotWritable},
		{"elements/L01-QUAD-01/s", "1", ErrNotWritable},
		{"elements/L01-QUAD-01/length", "long", ErrInvalidValue},
		{"elements/L01-QUAD-01/length", "-1", ErrInvalidValue},
		{"elements/L01-QUAD-01/rotation", "[0, 0, 4]", ErrInvalidValue},
		{"elements/L01-QUAD-01/middle", "[1, 2, 3, 4]", ErrInvalidValue},
		{"elements/missing/length", "1", ErrElementNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path+"="+tt.value, func(t *testing.T) {
			err := insp.WriteAttribute(mustParse(t, tt.path), tt.value)
			if !errors.Is(err, tt.want) {
				t.Errorf("WriteAttribute() error = %v, want %v", err, tt.want)
			}
		})
	}

	e, _ := insp.Model().GetElement("L01-QUAD-01")
	if e.Geometry.Length != 0.2 {
		t.Errorf("failed writes changed length to %v", e.Geometry.Length)
	}
}

func TestFormatNode(t *testing.T) {
	insp := newTestInspector(t)
	f := NewFormatter()

	tests := []struct {
		path     string
		contains []string
	}{
		{"/", []string{"Model ", "default path: line", "line: INJ > L01"}},
		{"layouts", []string{"  line\n", "  SP1\n"}},
		{"layouts/line", []string{"Layout line: 4 elements"}},
		{"sections/INJ", []string{"Section INJ: 3 elements", "(inferred)"}},
		{"elements/INJ-QUAD-01", []string{"INJ-QUAD-01 (Magnet/Quadrupole/Generic)", "length: 0.2 m (200.0 mm) [rw]"}},
		{"elements/INJ-QUAD-01/length", []string{"INJ-QUAD-01.length = 0.2 m"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, err := insp.Inspect(mustParse(t, tt.path))
			if err != nil {
				t.Fatalf("Inspect() error = %v", err)
			}
			out := f.FormatNode(n)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("FormatNode(%s) = %q, missing %q", tt.path, out, want)
				}
			}
		})
	}
}
