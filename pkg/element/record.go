package element

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nala-lattice/nala-go/pkg/geometry"
)

// Record is the serialised form of an element shared by the loader, the
// exporters, the snapshot store and the HTTP service.
type Record struct {
	Name          string        `yaml:"name,omitempty" json:"name" cbor:"1,keyasint" msgpack:"name"`
	HardwareClass string        `yaml:"hardware_class,omitempty" json:"hardware_class" cbor:"2,keyasint" msgpack:"hardware_class"`
	HardwareType  string        `yaml:"hardware_type" json:"hardware_type" cbor:"3,keyasint" msgpack:"hardware_type"`
	HardwareModel string        `yaml:"hardware_model,omitempty" json:"hardware_model" cbor:"4,keyasint" msgpack:"hardware_model"`
	MachineArea   string        `yaml:"machine_area,omitempty" json:"machine_area" cbor:"5,keyasint" msgpack:"machine_area"`
	Subelement    SubelementRef `yaml:"subelement" json:"subelement" cbor:"6,keyasint" msgpack:"subelement"`
	Physical      Physical      `yaml:"physical" json:"physical" cbor:"7,keyasint" msgpack:"physical"`
}

// Physical is the serialised geometry of an element.
type Physical struct {
	Middle         Vector  `yaml:"middle,flow" json:"middle" cbor:"1,keyasint" msgpack:"middle"`
	Rotation       Vector  `yaml:"rotation,flow" json:"rotation" cbor:"2,keyasint" msgpack:"rotation"`
	GlobalRotation Vector  `yaml:"global_rotation,flow" json:"global_rotation" cbor:"3,keyasint" msgpack:"global_rotation"`
	Length         float64 `yaml:"length" json:"length" cbor:"4,keyasint" msgpack:"length"`
	Angle          float64 `yaml:"angle" json:"angle" cbor:"5,keyasint" msgpack:"angle"`
}

// Vector is a list of floats that also accepts a bare scalar in YAML.
type Vector []float64

// UnmarshalYAML accepts either a sequence or a single number.
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Vector{f}
		return nil
	}
	var fs []float64
	if err := node.Decode(&fs); err != nil {
		return err
	}
	*v = fs
	return nil
}

// SubelementRef is the serialised subelement marker: false, true, or the
// name of the parent element.
type SubelementRef string

// MarshalYAML writes a boolean unless a parent is named.
func (s SubelementRef) MarshalYAML() (any, error) {
	switch s {
	case "":
		return false, nil
	case SubelementUnnamed:
		return true, nil
	default:
		return string(s), nil
	}
}

// UnmarshalYAML accepts a boolean or a parent name.
func (s *SubelementRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: subelement must be a boolean or a name", node.Line)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*s = subelementFromBool(b)
		return nil
	}
	*s = normaliseSubelement(node.Value)
	return nil
}

// MarshalJSON writes a boolean unless a parent is named.
func (s SubelementRef) MarshalJSON() ([]byte, error) {
	v, _ := s.MarshalYAML()
	return json.Marshal(v)
}

// UnmarshalJSON accepts a boolean, null or a parent name.
func (s *SubelementRef) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = ""
	case bool:
		*s = subelementFromBool(t)
	case string:
		*s = normaliseSubelement(t)
	default:
		return fmt.Errorf("subelement must be a boolean or a name, got %T", v)
	}
	return nil
}

func subelementFromBool(b bool) SubelementRef {
	if b {
		return SubelementUnnamed
	}
	return ""
}

func normaliseSubelement(v string) SubelementRef {
	switch v {
	case "", "false", "False", "None":
		return ""
	case "True":
		return SubelementUnnamed
	}
	return SubelementRef(v)
}

// ToRecord converts an element to its serialised form.
func ToRecord(e *Element) Record {
	g := e.Geometry
	return Record{
		Name:          e.Name,
		HardwareClass: e.Class,
		HardwareType:  e.Type,
		HardwareModel: e.Model,
		MachineArea:   e.MachineArea,
		Subelement:    SubelementRef(e.Subelement),
		Physical: Physical{
			Middle:         g.Middle.Slice(),
			Rotation:       g.Rotation.Slice(),
			GlobalRotation: g.GlobalRotation.Slice(),
			Length:         g.Length,
			Angle:          g.Angle,
		},
	}
}

// Element converts the record to a validated element. Class and model are
// defaulted from the kind table when empty.
func (r Record) Element() (*Element, error) {
	e := &Element{
		Name:        r.Name,
		Class:       r.HardwareClass,
		Type:        r.HardwareType,
		Model:       r.HardwareModel,
		MachineArea: r.MachineArea,
		Subelement:  string(r.Subelement),
	}
	e.ApplyKind()

	var err error
	if len(r.Physical.Middle) > 0 {
		if e.Geometry.Middle, err = geometry.PositionFromSlice(r.Physical.Middle); err != nil {
			return nil, fmt.Errorf("element %q middle: %w", r.Name, err)
		}
	}
	if len(r.Physical.Rotation) > 0 {
		if e.Geometry.Rotation, err = geometry.RotationFromSlice(r.Physical.Rotation); err != nil {
			return nil, fmt.Errorf("element %q rotation: %w", r.Name, err)
		}
	}
	if len(r.Physical.GlobalRotation) > 0 {
		if e.Geometry.GlobalRotation, err = geometry.RotationFromSlice(r.Physical.GlobalRotation); err != nil {
			return nil, fmt.Errorf("element %q global rotation: %w", r.Name, err)
		}
	}
	e.Geometry.Length = r.Physical.Length
	e.Geometry.Angle = r.Physical.Angle

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
