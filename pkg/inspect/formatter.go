package inspect

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes units and writability
	ShowMetadata bool

	// Precision is the number of decimals for floats (0 means 6)
	Precision int

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		Precision:    6,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatFloat formats a float with the formatter's precision and no
// trailing zeros.
func (f *Formatter) FormatFloat(v float64) string {
	p := f.Precision
	if p == 0 {
		p = 6
	}
	s := strconv.FormatFloat(v, 'f', p, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatValue formats a value for display, including unit conversions.
func (f *Formatter) FormatValue(value any, unit string) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"

	case string:
		return fmt.Sprintf("%q", v)

	case int:
		return withUnit(strconv.Itoa(v), unit)

	case float64:
		return f.formatFloatWithUnit(v, unit)

	case geometry.Position:
		return withUnit(fmt.Sprintf("(%s, %s, %s)", f.FormatFloat(v.X), f.FormatFloat(v.Y), f.FormatFloat(v.Z)), unit)

	case geometry.Rotation:
		return withUnit(fmt.Sprintf("(phi=%s, psi=%s, theta=%s)",
			f.FormatFloat(v.Phi), f.FormatFloat(v.Psi), f.FormatFloat(v.Theta)), unit)

	case []string:
		return "[" + strings.Join(v, ", ") + "]"

	default:
		return fmt.Sprintf("%v", v)
	}
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// formatFloatWithUnit formats a float with optional unit and human-readable
// conversion.
func (f *Formatter) formatFloatWithUnit(v float64, unit string) string {
	base := withUnit(f.FormatFloat(v), unit)

	switch unit {
	case "m":
		if v != 0 && math.Abs(v) < 1 {
			return fmt.Sprintf("%s (%s)", base, FormatLengthHumanReadable(v))
		}
	case "rad":
		if v != 0 {
			return fmt.Sprintf("%s (%.2f deg)", base, v*180/math.Pi)
		}
	}
	return base
}

// FormatLengthHumanReadable formats a length in metres.
func FormatLengthHumanReadable(m float64) string {
	if m == 0 {
		return "0 m"
	}
	abs := math.Abs(m)
	switch {
	case abs < 1e-3:
		return fmt.Sprintf("%.1f um", m*1e6)
	case abs < 1:
		return fmt.Sprintf("%.1f mm", m*1e3)
	case abs >= 1000:
		return fmt.Sprintf("%.3f km", m/1000)
	default:
		return fmt.Sprintf("%.3f m", m)
	}
}

// AttributeRow represents a formatted attribute for display.
type AttributeRow struct {
	Name     string
	Value    string
	Unit     string
	Writable bool
}

// FormatAttributeTable formats a list of attributes as a table.
func (f *Formatter) FormatAttributeTable(rows []AttributeRow) string {
	if len(rows) == 0 {
		return "  (no attributes)"
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %s: %s", row.Name, row.Value))
		if f.ShowMetadata && row.Writable {
			sb.WriteString(" [rw]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ElementRows returns the attribute rows of an element. The s attribute is
// path-dependent and left out.
func (f *Formatter) ElementRows(e *element.Element) []AttributeRow {
	values := map[string]any{
		"name":            e.Name,
		"class":           e.Class,
		"type":            e.Type,
		"model":           e.Model,
		"machine_area":    e.MachineArea,
		"subelement":      subelementValue(e),
		"middle":          e.Geometry.Middle,
		"start":           e.Start(),
		"end":             e.End(),
		"rotation":        e.Geometry.Rotation,
		"global_rotation": e.Geometry.GlobalRotation,
		"length":          e.Geometry.Length,
		"angle":           e.Geometry.Angle,
	}

	rows := make([]AttributeRow, 0, len(values))
	for _, a := range attributes {
		v, ok := values[a.Name]
		if !ok {
			continue
		}
		rows = append(rows, AttributeRow{
			Name:     a.Name,
			Value:    f.FormatValue(v, a.Unit),
			Unit:     a.Unit,
			Writable: a.Writable,
		})
	}
	return rows
}

// FormatElement formats an element as a header and attribute table.
func (f *Formatter) FormatElement(e *element.Element) string {
	return e.String() + "\n" + f.FormatAttributeTable(f.ElementRows(e))
}

// FormatModel formats a model snapshot.
func (f *Formatter) FormatModel(info lattice.ModelInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Model %s\n", info.BuildID)
	sb.WriteString(f.Indent(1, fmt.Sprintf("elements: %d\n", info.Elements)))
	if info.DefaultPath != "" {
		sb.WriteString(f.Indent(1, fmt.Sprintf("default path: %s\n", info.DefaultPath)))
	}
	sb.WriteString(f.Indent(1, fmt.Sprintf("sections: %d\n", len(info.Sections))))
	for _, s := range info.Sections {
		sb.WriteString(f.Indent(2, f.sectionLine(s)+"\n"))
	}
	sb.WriteString(f.Indent(1, fmt.Sprintf("layouts: %d\n", len(info.Layouts))))
	for _, l := range info.Layouts {
		sb.WriteString(f.Indent(2, fmt.Sprintf("%s: %s\n", l.Name, strings.Join(l.Sections, " > "))))
	}
	return sb.String()
}

func (f *Formatter) sectionLine(s lattice.SectionInfo) string {
	line := fmt.Sprintf("%s: %d elements, %s m", s.Name, len(s.Elements), f.FormatFloat(s.Length))
	if s.Inferred {
		line += " (inferred)"
	}
	return line
}

// FormatLayout formats a beam path snapshot, including any reversals.
func (f *Formatter) FormatLayout(info lattice.LayoutInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Layout %s: %d elements\n", info.Name, info.Elements)
	sb.WriteString(f.Indent(1, "sections: "+strings.Join(info.Sections, " > ")+"\n"))
	for _, r := range info.Reversals {
		sb.WriteString(f.Indent(1, fmt.Sprintf("reversal: %s overlaps %s by %s m\n",
			r.Element, r.Next, f.FormatFloat(r.Overshoot))))
	}
	return sb.String()
}

// FormatSection formats a section snapshot.
func (f *Formatter) FormatSection(info lattice.SectionInfo) string {
	var sb strings.Builder
	sb.WriteString("Section " + f.sectionLine(info) + "\n")
	for _, name := range info.Elements {
		sb.WriteString(f.Indent(1, name+"\n"))
	}
	if f.ShowMetadata && len(info.Dropped) > 0 {
		sb.WriteString(f.Indent(1, "undefined: "+strings.Join(info.Dropped, ", ")+"\n"))
	}
	return sb.String()
}

// FormatList formats names one per line.
func (f *Formatter) FormatList(names []string) string {
	if len(names) == 0 {
		return "  (none)\n"
	}
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(f.Indent(1, n+"\n"))
	}
	return sb.String()
}

// FormatSValues formats s-positions as an aligned two-column table.
func (f *Formatter) FormatSValues(values lattice.SPositions) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tS [m]")
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%s\n", v.Name, f.FormatFloat(v.S))
	}
	tw.Flush()
	return sb.String()
}

// FormatAttribute formats a single attribute value.
func (f *Formatter) FormatAttribute(v *AttributeValue) string {
	s := fmt.Sprintf("%s.%s = %s", v.Element, v.Name, f.FormatValue(v.Value, v.Unit))
	if f.ShowMetadata && v.Writable {
		s += " [rw]"
	}
	return s
}

// FormatNode formats whatever a path resolved to.
func (f *Formatter) FormatNode(n *Node) string {
	switch {
	case n.Model != nil:
		return f.FormatModel(*n.Model)
	case n.Layout != nil:
		return f.FormatLayout(*n.Layout)
	case n.Section != nil:
		return f.FormatSection(*n.Section)
	case n.Element != nil:
		return f.FormatElement(n.Element)
	case n.Attribute != nil:
		return f.FormatAttribute(n.Attribute) + "\n"
	default:
		return f.FormatList(n.Children)
	}
}
