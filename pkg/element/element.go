package element

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nala-lattice/nala-go/pkg/geometry"
)

// SubelementUnnamed marks a subelement whose parent is not named.
const SubelementUnnamed = "true"

// Element errors.
var (
	ErrMissingName    = errors.New("element name is empty")
	ErrNegativeLength = errors.New("element length is negative")
	ErrMissingClass   = errors.New("element has no hardware class")
)

// Geometry is the placement sub-record of an element.
type Geometry struct {
	// Middle is the centre of the element.
	Middle geometry.Position

	// Rotation is the local rotation of the element.
	Rotation geometry.Rotation

	// GlobalRotation is accumulated from the placement context.
	GlobalRotation geometry.Rotation

	// Length is the magnetic or physical length in metres.
	Length float64

	// Angle is the signed bend angle in radians, 0 for straight elements.
	Angle float64
}

// Element is a single beamline component.
type Element struct {
	Name        string
	Class       string
	Type        string
	Model       string
	MachineArea string

	// Subelement is empty for regular elements, SubelementUnnamed for a
	// subelement without a named parent, or the parent element name.
	Subelement string

	Geometry Geometry
}

// New creates an element of the given hardware type, filling class and model
// from the kind table.
func New(name, hardwareType string) *Element {
	e := &Element{Name: name, Type: hardwareType}
	e.ApplyKind()
	return e
}

// ApplyKind canonicalises the hardware type and fills an empty class or model
// from the kind table. It reports whether the type is known.
func (e *Element) ApplyKind() bool {
	k, ok := LookupKind(e.Type)
	if !ok {
		if e.Model == "" {
			e.Model = DefaultModel
		}
		return false
	}
	e.Type = k.Type
	if e.Class == "" {
		e.Class = k.Class
	}
	if e.Model == "" {
		e.Model = k.Model
	}
	return true
}

// Validate checks the identity and geometry of the element.
func (e *Element) Validate() error {
	if e.Name == "" {
		return ErrMissingName
	}
	if e.Class == "" {
		return fmt.Errorf("element %q: %w", e.Name, ErrMissingClass)
	}
	if e.Geometry.Length < 0 {
		return fmt.Errorf("element %q: length %g: %w", e.Name, e.Geometry.Length, ErrNegativeLength)
	}
	if err := e.Geometry.Rotation.Validate(); err != nil {
		return fmt.Errorf("element %q rotation: %w", e.Name, err)
	}
	if err := e.Geometry.GlobalRotation.Validate(); err != nil {
		return fmt.Errorf("element %q global rotation: %w", e.Name, err)
	}
	return nil
}

// Clone returns an independent copy of the element.
func (e *Element) Clone() *Element {
	c := *e
	return &c
}

// IsSubelement reports whether the element overlaps another one.
func (e *Element) IsSubelement() bool {
	return e.Subelement != ""
}

// Parent returns the declared parent of a subelement, or "" if none is named.
func (e *Element) Parent() string {
	if e.Subelement == SubelementUnnamed {
		return ""
	}
	return e.Subelement
}

// IsDiagnostic reports whether the element belongs to the diagnostic class.
func (e *Element) IsDiagnostic() bool {
	return strings.EqualFold(e.Class, ClassDiagnostic)
}

// IsDrift reports whether the element is a drift.
func (e *Element) IsDrift() bool {
	return strings.EqualFold(e.Class, ClassDrift)
}

// CombinedRotation returns the local rotation plus the global rotation.
func (e *Element) CombinedRotation() geometry.Rotation {
	return e.Geometry.Rotation.Add(e.Geometry.GlobalRotation)
}

// RotationMatrix returns the matrix of the combined rotation.
func (e *Element) RotationMatrix() geometry.Matrix {
	return e.CombinedRotation().Matrix()
}

// Start returns the entrance position of the element.
func (e *Element) Start() geometry.Position {
	g := e.Geometry
	return geometry.Start(g.Middle, e.CombinedRotation(), g.Length, g.Angle)
}

// End returns the exit position of the element.
func (e *Element) End() geometry.Position {
	g := e.Geometry
	return geometry.End(g.Middle, e.CombinedRotation(), g.Length, g.Angle)
}

// String returns "name (class/type/model)".
func (e *Element) String() string {
	return fmt.Sprintf("%s (%s/%s/%s)", e.Name, e.Class, e.Type, e.Model)
}
