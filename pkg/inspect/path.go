// Package inspect navigates a lattice model as a tree of paths and formats
// what it finds.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "layouts/line/INJ/INJ-QUAD-01/length")
//   - Resolving attribute names and aliases
//   - Reading and writing element attributes
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	pathpkg "path"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath        = errors.New("empty path")
	ErrInvalidPath      = errors.New("invalid path format")
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Kind is the level of the tree a path points at.
type Kind uint8

const (
	KindRoot Kind = iota
	KindLayouts
	KindLayout
	KindSections
	KindSection
	KindElements
	KindElement
	KindAttribute
)

var kindNames = map[Kind]string{
	KindRoot:      "model",
	KindLayouts:   "layouts",
	KindLayout:    "layout",
	KindSections:  "sections",
	KindSection:   "section",
	KindElements:  "elements",
	KindElement:   "element",
	KindAttribute: "attribute",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Collection names at the top of the tree.
const (
	CollectionLayouts  = "layouts"
	CollectionSections = "sections"
	CollectionElements = "elements"
)

var collectionAliases = map[string]string{
	"layouts":  CollectionLayouts,
	"layout":   CollectionLayouts,
	"paths":    CollectionLayouts,
	"sections": CollectionSections,
	"section":  CollectionSections,
	"elements": CollectionElements,
	"element":  CollectionElements,
}

// Path represents a parsed inspection path.
// Format: layouts[/layout[/section[/element[/attribute]]]],
// sections[/section[/element[/attribute]]] or
// elements[/element[/attribute]].
type Path struct {
	// Kind is the level the path points at.
	Kind Kind

	// Collection is the top-level collection ("" for the root).
	Collection string

	Layout    string
	Section   string
	Element   string
	Attribute string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "/" or "." - the model itself
//   - "layouts/line/INJ/INJ-QUAD-01" - element in a section of a beam path
//   - "sections/INJ/INJ-QUAD-01" - element in a section
//   - "elements/INJ-QUAD-01/length" - attribute of an element
//
// Leading and trailing slashes are ignored. Collection and attribute names
// are case-insensitive; layout, section and element names are not.
func ParsePath(input string) (*Path, error) {
	raw := input
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	trimmed := strings.Trim(input, "/")
	if trimmed == "" || trimmed == "." {
		return &Path{Kind: KindRoot, Raw: raw}, nil
	}
	if strings.Contains(trimmed, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(trimmed, "/")
	collection, ok := collectionAliases[strings.ToLower(parts[0])]
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrInvalidPath, parts[0])
	}
	p := &Path{Collection: collection, Raw: raw}
	rest := parts[1:]

	// Named levels below each collection, outermost first.
	var levels []*string
	var kinds []Kind
	switch collection {
	case CollectionLayouts:
		levels = []*string{&p.Layout, &p.Section, &p.Element}
		kinds = []Kind{KindLayouts, KindLayout, KindSection, KindElement}
	case CollectionSections:
		levels = []*string{&p.Section, &p.Element}
		kinds = []Kind{KindSections, KindSection, KindElement}
	default:
		levels = []*string{&p.Element}
		kinds = []Kind{KindElements, KindElement}
	}

	switch {
	case len(rest) <= len(levels):
		for i, name := range rest {
			*levels[i] = name
		}
		p.Kind = kinds[len(rest)]
	case len(rest) == len(levels)+1:
		for i, name := range rest[:len(levels)] {
			*levels[i] = name
		}
		attr, ok := ResolveAttributeName(rest[len(levels)])
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, rest[len(levels)])
		}
		p.Attribute = attr
		p.Kind = KindAttribute
	default:
		return nil, fmt.Errorf("%w: too many segments", ErrInvalidPath)
	}
	return p, nil
}

// Resolve parses input relative to cwd. Absolute inputs start with "/";
// ".." moves up one level.
func Resolve(cwd *Path, input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		if cwd == nil {
			return nil, ErrEmptyPath
		}
		return cwd, nil
	}
	if strings.HasPrefix(input, "/") || cwd == nil {
		return ParsePath(pathpkg.Clean("/" + input))
	}
	return ParsePath(pathpkg.Clean(cwd.String() + "/" + input))
}

// Parent returns the path one level up. The root is its own parent.
func (p *Path) Parent() *Path {
	if p.Kind == KindRoot {
		return p
	}
	parent, err := ParsePath(pathpkg.Dir(p.String()))
	if err != nil {
		return &Path{Kind: KindRoot}
	}
	return parent
}

// String returns the canonical absolute form of the path.
func (p *Path) String() string {
	if p.Kind == KindRoot {
		return "/"
	}
	parts := []string{p.Collection}
	for _, s := range []string{p.Layout, p.Section, p.Element, p.Attribute} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return "/" + strings.Join(parts, "/")
}
