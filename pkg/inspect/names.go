package inspect

import (
	"sort"
	"strings"
)

// Attribute describes an element attribute reachable by path.
type Attribute struct {
	Name        string
	Unit        string
	Writable    bool
	Description string
}

var attributes = []Attribute{
	{Name: "name", Description: "unique element name"},
	{Name: "class", Description: "hardware class"},
	{Name: "type", Description: "hardware type"},
	{Name: "model", Writable: true, Description: "hardware model"},
	{Name: "machine_area", Writable: true, Description: "machine area"},
	{Name: "subelement", Writable: true, Description: "false, true or the parent element"},
	{Name: "middle", Unit: "m", Writable: true, Description: "centre position"},
	{Name: "start", Unit: "m", Description: "entrance position"},
	{Name: "end", Unit: "m", Description: "exit position"},
	{Name: "rotation", Unit: "rad", Writable: true, Description: "local rotation"},
	{Name: "global_rotation", Unit: "rad", Writable: true, Description: "global rotation"},
	{Name: "length", Unit: "m", Writable: true, Description: "path length"},
	{Name: "angle", Unit: "rad", Writable: true, Description: "bend angle"},
	{Name: "s", Unit: "m", Description: "exit s-position on the beam path"},
}

// Aliases not matching an attribute name.
var attributeAliases = map[string]string{
	"hardware_class": "class",
	"hardware_type":  "type",
	"hardware_model": "model",
	"area":           "machine_area",
	"sub":            "subelement",
	"parent":         "subelement",
	"position":       "middle",
	"pos":            "middle",
	"entrance":       "start",
	"exit":           "end",
	"rot":            "rotation",
	"global":         "global_rotation",
	"l":              "length",
	"theta":          "angle",
}

var attributeIndex = func() map[string]Attribute {
	idx := make(map[string]Attribute, len(attributes))
	for _, a := range attributes {
		idx[a.Name] = a
	}
	return idx
}()

// ResolveAttributeName resolves an attribute name or alias to its canonical
// name (case-insensitive).
func ResolveAttributeName(name string) (string, bool) {
	lname := strings.ToLower(strings.TrimSpace(name))
	if _, ok := attributeIndex[lname]; ok {
		return lname, true
	}
	if canonical, ok := attributeAliases[lname]; ok {
		return canonical, true
	}
	return "", false
}

// LookupAttribute returns the attribute for a name or alias.
func LookupAttribute(name string) (Attribute, bool) {
	canonical, ok := ResolveAttributeName(name)
	if !ok {
		return Attribute{}, false
	}
	return attributeIndex[canonical], true
}

// Attributes returns every attribute in display order.
func Attributes() []Attribute {
	return append([]Attribute(nil), attributes...)
}

// AttributeNames returns the canonical attribute names sorted.
func AttributeNames() []string {
	out := make([]string, 0, len(attributes))
	for _, a := range attributes {
		out = append(out, a.Name)
	}
	sort.Strings(out)
	return out
}
