package inspect

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Inspector errors.
var (
	ErrLayoutNotFound    = errors.New("beam path not found")
	ErrSectionNotFound   = errors.New("section not found")
	ErrElementNotFound   = errors.New("element not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrNotWritable       = errors.New("attribute is not writable")
	ErrInvalidValue      = errors.New("invalid attribute value")
)

// Inspector provides inspection and mutation capabilities for a model.
type Inspector struct {
	model *lattice.Model
}

// NewInspector creates a new Inspector for the given model.
func NewInspector(m *lattice.Model) *Inspector {
	return &Inspector{model: m}
}

// Model returns the underlying model.
func (i *Inspector) Model() *lattice.Model {
	return i.model
}

// Node is what a path points at. Exactly one of the detail fields is set
// for single-object paths; collections only fill Children.
type Node struct {
	Path      *Path
	Model     *lattice.ModelInfo
	Layout    *lattice.LayoutInfo
	Section   *lattice.SectionInfo
	Element   *element.Element
	Attribute *AttributeValue
	Children  []string
}

// AttributeValue is a resolved attribute of one element.
type AttributeValue struct {
	Element string
	Attribute
	Value any
}

// Inspect resolves p against the model.
func (i *Inspector) Inspect(p *Path) (*Node, error) {
	if p == nil {
		return nil, ErrEmptyPath
	}
	n := &Node{Path: p}

	switch p.Kind {
	case KindRoot:
		info := i.model.Info()
		n.Model = &info
		n.Children = []string{CollectionLayouts, CollectionSections, CollectionElements}
	case KindLayouts:
		n.Children = i.model.Layouts()
	case KindSections:
		n.Children = i.model.Sections()
	case KindElements:
		n.Children = i.model.Names()
	case KindLayout:
		l, err := i.layout(p.Layout)
		if err != nil {
			return nil, err
		}
		info := l.Info()
		n.Layout = &info
		n.Children = info.Sections
	case KindSection:
		s, err := i.section(p)
		if err != nil {
			return nil, err
		}
		info := s.Info()
		info.Inferred = i.inferred(info.Name)
		n.Section = &info
		n.Children = info.Elements
	case KindElement:
		e, err := i.element(p)
		if err != nil {
			return nil, err
		}
		n.Element = e
		n.Children = AttributeNames()
	case KindAttribute:
		v, err := i.ReadAttribute(p)
		if err != nil {
			return nil, err
		}
		n.Attribute = v
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, p.Kind)
	}
	return n, nil
}

// Children lists the names below p, for listing and completion.
func (i *Inspector) Children(p *Path) ([]string, error) {
	n, err := i.Inspect(p)
	if err != nil {
		return nil, err
	}
	return n.Children, nil
}

func (i *Inspector) inferred(section string) bool {
	for _, s := range i.model.Info().Sections {
		if s.Name == section {
			return s.Inferred
		}
	}
	return false
}

func (i *Inspector) layout(name string) (*lattice.Layout, error) {
	l, err := i.model.Layout(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	return l, nil
}

func (i *Inspector) section(p *Path) (*lattice.Section, error) {
	if p.Layout != "" {
		l, err := i.layout(p.Layout)
		if err != nil {
			return nil, err
		}
		s, ok := l.Section(p.Section)
		if !ok {
			return nil, fmt.Errorf("%w: %s in beam path %s", ErrSectionNotFound, p.Section, p.Layout)
		}
		return s, nil
	}
	s, err := i.model.Section(p.Section)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, p.Section)
	}
	return s, nil
}

// element returns a copy of the element p names, checking that it belongs to
// the section on the path, if any.
func (i *Inspector) element(p *Path) (*element.Element, error) {
	if p.Section != "" {
		s, err := i.section(p)
		if err != nil {
			return nil, err
		}
		e, ok := s.Get(p.Element)
		if !ok {
			return nil, fmt.Errorf("%w: %s in section %s", ErrElementNotFound, p.Element, p.Section)
		}
		return e.Clone(), nil
	}
	e, err := i.model.GetElement(p.Element)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, p.Element)
	}
	return e, nil
}

// ReadAttribute reads one attribute of an element.
func (i *Inspector) ReadAttribute(p *Path) (*AttributeValue, error) {
	if p == nil || p.Kind != KindAttribute {
		return nil, fmt.Errorf("%w: not an attribute path", ErrInvalidPath)
	}
	attr, ok := LookupAttribute(p.Attribute)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, p.Attribute)
	}
	e, err := i.element(p)
	if err != nil {
		return nil, err
	}

	v := &AttributeValue{Element: e.Name, Attribute: attr}
	g := e.Geometry
	switch attr.Name {
	case "name":
		v.Value = e.Name
	case "class":
		v.Value = e.Class
	case "type":
		v.Value = e.Type
	case "model":
		v.Value = e.Model
	case "machine_area":
		v.Value = e.MachineArea
	case "subelement":
		v.Value = subelementValue(e)
	case "middle":
		v.Value = g.Middle
	case "start":
		v.Value = e.Start()
	case "end":
		v.Value = e.End()
	case "rotation":
		v.Value = g.Rotation
	case "global_rotation":
		v.Value = g.GlobalRotation
	case "length":
		v.Value = g.Length
	case "angle":
		v.Value = g.Angle
	case "s":
		s, err := i.sPosition(p.Layout, e)
		if err != nil {
			return nil, err
		}
		v.Value = s
	default:
		return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, attr.Name)
	}
	return v, nil
}

func subelementValue(e *element.Element) any {
	switch e.Subelement {
	case "":
		return false
	case element.SubelementUnnamed:
		return true
	default:
		return e.Subelement
	}
}

func (i *Inspector) sPosition(path string, e *element.Element) (float64, error) {
	if e.IsSubelement() {
		return 0, fmt.Errorf("%w: subelement %s has no s-position", ErrAttributeNotFound, e.Name)
	}
	values, err := i.model.SValues(lattice.Query{Path: path, End: e.Name}, lattice.SOptions{})
	if err != nil {
		return 0, err
	}
	s, ok := values.Map()[e.Name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not on the beam path", ErrAttributeNotFound, e.Name)
	}
	return s, nil
}

// WriteAttribute parses value as YAML and stores it in the element's
// attribute, rebuilding the model.
func (i *Inspector) WriteAttribute(p *Path, value string) error {
	if p == nil || p.Kind != KindAttribute {
		return fmt.Errorf("%w: not an attribute path", ErrInvalidPath)
	}
	attr, ok := LookupAttribute(p.Attribute)
	if !ok {
		return fmt.Errorf("%w: %s", ErrAttributeNotFound, p.Attribute)
	}
	if !attr.Writable {
		return fmt.Errorf("%w: %s", ErrNotWritable, attr.Name)
	}
	e, err := i.element(p)
	if err != nil {
		return err
	}
	if err := setAttribute(e, attr.Name, value); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return i.model.Update(e)
}

func setAttribute(e *element.Element, name, value string) error {
	invalid := func(err error) error {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, name, value, err)
	}

	switch name {
	case "model":
		e.Model = value
	case "machine_area":
		e.MachineArea = value
	case "subelement":
		var ref element.SubelementRef
		if err := yaml.Unmarshal([]byte(value), &ref); err != nil {
			return invalid(err)
		}
		e.Subelement = string(ref)
	case "middle", "rotation", "global_rotation":
		var vec element.Vector
		if err := yaml.Unmarshal([]byte(value), &vec); err != nil {
			return invalid(err)
		}
		var err error
		switch name {
		case "middle":
			e.Geometry.Middle, err = geometry.PositionFromSlice(vec)
		case "rotation":
			e.Geometry.Rotation, err = geometry.RotationFromSlice(vec)
		default:
			e.Geometry.GlobalRotation, err = geometry.RotationFromSlice(vec)
		}
		if err != nil {
			return invalid(err)
		}
	case "length", "angle":
		var f float64
		if err := yaml.Unmarshal([]byte(value), &f); err != nil {
			return invalid(err)
		}
		if name == "length" {
			e.Geometry.Length = f
		} else {
			e.Geometry.Angle = f
		}
	default:
		return fmt.Errorf("%w: %s", ErrNotWritable, name)
	}
	return nil
}
