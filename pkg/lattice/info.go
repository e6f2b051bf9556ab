package lattice

import (
	"time"

	"github.com/nala-lattice/nala-go/pkg/element"
)

// SectionInfo is a snapshot of a section.
type SectionInfo struct {
	Name     string   `cbor:"1,keyasint" json:"name" yaml:"name" msgpack:"name"`
	Elements []string `cbor:"2,keyasint" json:"elements" yaml:"elements" msgpack:"elements"`
	Dropped  []string `cbor:"3,keyasint,omitempty" json:"dropped,omitempty" yaml:"dropped,omitempty" msgpack:"dropped,omitempty"`
	Length   float64  `cbor:"4,keyasint" json:"length" yaml:"length" msgpack:"length"`
	Inferred bool     `cbor:"5,keyasint,omitempty" json:"inferred,omitempty" yaml:"inferred,omitempty" msgpack:"inferred,omitempty"`
}

// Info returns a snapshot of the section.
func (s *Section) Info() SectionInfo {
	return SectionInfo{
		Name:     s.name,
		Elements: s.Names(),
		Dropped:  s.Dropped(),
		Length:   s.Length(),
	}
}

// LayoutInfo is a snapshot of a beam path.
type LayoutInfo struct {
	Name      string     `cbor:"1,keyasint" json:"name" yaml:"name" msgpack:"name"`
	Sections  []string   `cbor:"2,keyasint" json:"sections" yaml:"sections" msgpack:"sections"`
	Elements  int        `cbor:"3,keyasint" json:"elements" yaml:"elements" msgpack:"elements"`
	Reversals []Reversal `cbor:"4,keyasint,omitempty" json:"reversals,omitempty" yaml:"reversals,omitempty" msgpack:"reversals,omitempty"`
}

// Info returns a snapshot of the beam path.
func (l *Layout) Info() LayoutInfo {
	return LayoutInfo{
		Name:      l.name,
		Sections:  l.SectionNames(),
		Elements:  len(l.all),
		Reversals: l.Reversals(),
	}
}

// ModelInfo is a snapshot of the whole model.
type ModelInfo struct {
	BuildID     string        `cbor:"1,keyasint" json:"build_id" yaml:"build_id" msgpack:"build_id"`
	BuiltAt     time.Time     `cbor:"2,keyasint" json:"built_at" yaml:"built_at" msgpack:"built_at"`
	DefaultPath string        `cbor:"3,keyasint,omitempty" json:"default_path,omitempty" yaml:"default_path,omitempty" msgpack:"default_path,omitempty"`
	Elements    int           `cbor:"4,keyasint" json:"elements" yaml:"elements" msgpack:"elements"`
	Sections    []SectionInfo `cbor:"5,keyasint" json:"sections" yaml:"sections" msgpack:"sections"`
	Layouts     []LayoutInfo  `cbor:"6,keyasint" json:"layouts" yaml:"layouts" msgpack:"layouts"`
}

// Info returns a snapshot of the current generation.
func (m *Model) Info() ModelInfo {
	return m.current().info()
}

func (g *generation) info() ModelInfo {
	inferred := make(map[string]bool, len(g.inferred))
	for _, n := range g.inferred {
		inferred[n] = true
	}

	info := ModelInfo{
		BuildID:     g.id,
		BuiltAt:     g.builtAt,
		DefaultPath: g.defaultPath,
		Elements:    g.elements.Len(),
		Sections:    make([]SectionInfo, 0, len(g.sections)),
		Layouts:     make([]LayoutInfo, 0, len(g.layouts)),
	}
	for _, s := range g.sections {
		si := s.Info()
		si.Inferred = inferred[s.name]
		info.Sections = append(info.Sections, si)
	}
	for _, l := range g.layouts {
		info.Layouts = append(info.Layouts, l.Info())
	}
	return info
}

// Definitions returns the section and layout definitions that reproduce the
// current generation, with inferred sections made explicit.
func (m *Model) Definitions() (SectionDefinitions, LayoutDefinitions) {
	return m.current().definitions()
}

func (g *generation) definitions() (SectionDefinitions, LayoutDefinitions) {
	secs := make(SectionDefinitions, 0, len(g.sections))
	for _, s := range g.sections {
		secs = append(secs, SectionDefinition{Name: s.name, Members: s.Names()})
	}
	lays := LayoutDefinitions{Default: g.defaultPath}
	for _, l := range g.layouts {
		lays.Layouts = append(lays.Layouts, LayoutDefinition{Name: l.name, Sections: l.SectionNames()})
	}
	return secs, lays
}

// Elements returns copies of every element in insertion order.
func (m *Model) Elements() []*element.Element {
	return m.current().elementCopies()
}

func (g *generation) elementCopies() []*element.Element {
	src := g.elements.Elements()
	out := make([]*element.Element, len(src))
	for i, e := range src {
		out[i] = e.Clone()
	}
	return out
}

// Snapshot is a consistent view of one generation: its summary, the
// definitions that rebuild it and copies of its elements.
type Snapshot struct {
	Info     ModelInfo
	Sections SectionDefinitions
	Layouts  LayoutDefinitions
	Elements []*element.Element
}

// Snapshot returns Info, Definitions and Elements read from the same
// generation.
func (m *Model) Snapshot() Snapshot {
	g := m.current()
	secs, lays := g.definitions()
	return Snapshot{
		Info:     g.info(),
		Sections: secs,
		Layouts:  lays,
		Elements: g.elementCopies(),
	}
}
