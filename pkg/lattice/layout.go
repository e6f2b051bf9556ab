package lattice

import (
	"strings"
	"time"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/log"
)

// ReversalTolerance is how far, in metres, an element's exit may lie
// downstream of the next element's entrance before a reversal is recorded.
const ReversalTolerance = 5e-6

// upstream is the direction the reverse pass walks in.
var upstream = geometry.Position{Z: -1}

// Reversal records an element whose exit lies downstream of the entrance of
// the next non-subelement on the path.
type Reversal struct {
	Element   string  `cbor:"1,keyasint" json:"element" yaml:"element" msgpack:"element"`
	Next      string  `cbor:"2,keyasint" json:"next" yaml:"next" msgpack:"next"`
	Overshoot float64 `cbor:"3,keyasint" json:"overshoot" yaml:"overshoot" msgpack:"overshoot"`
}

// Filter restricts query results by hardware taxonomy. Each non-empty list is
// a case-insensitive set of accepted values; lists combine with AND.
type Filter struct {
	Types   []string `json:"types,omitempty" query:"type"`
	Models  []string `json:"models,omitempty" query:"model"`
	Classes []string `json:"classes,omitempty" query:"class"`
}

// IsZero reports whether the filter accepts everything.
func (f Filter) IsZero() bool {
	return len(f.Types) == 0 && len(f.Models) == 0 && len(f.Classes) == 0
}

func (f Filter) apply(elems []*element.Element) []*element.Element {
	elems = filterBy(elems, f.Types, func(e *element.Element) string { return e.Type })
	elems = filterBy(elems, f.Models, func(e *element.Element) string { return e.Model })
	elems = filterBy(elems, f.Classes, func(e *element.Element) string { return e.Class })
	return elems
}

func filterBy(elems []*element.Element, accepted []string, attr func(*element.Element) string) []*element.Element {
	if len(accepted) == 0 {
		return elems
	}
	set := make(map[string]struct{}, len(accepted))
	for _, a := range accepted {
		set[strings.ToLower(a)] = struct{}{}
	}
	var out []*element.Element
	for _, e := range elems {
		if _, ok := set[strings.ToLower(attr(e))]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Layout is a beam path: an ordered composition of sections.
//
// On construction the sections are flattened and walked in reverse to
// associate subelements with their physical parent, record entrance
// boundaries and collect reversal diagnostics. Reversals never remove
// elements from the path.
type Layout struct {
	name      string
	sections  []*Section
	all       []*element.Element
	position  map[string]int
	parents   map[string]string
	starts    map[string]geometry.Position
	reversals []Reversal

	logger  log.Logger
	buildID string
}

// NewLayout creates a layout from sections in travel order.
func NewLayout(name string, sections ...*Section) *Layout {
	l := &Layout{
		name:     name,
		sections: append([]*Section(nil), sections...),
		position: make(map[string]int),
		parents:  make(map[string]string),
		starts:   make(map[string]geometry.Position),
		logger:   log.NoopLogger{},
	}

	var flat []*element.Element
	for _, s := range sections {
		flat = append(flat, s.Elements()...)
	}
	l.all = flat
	for i, e := range flat {
		if _, seen := l.position[e.Name]; !seen {
			l.position[e.Name] = i
		}
	}
	l.reversePass()
	return l
}

func (l *Layout) reversePass() {
	if len(l.all) == 0 {
		return
	}

	var (
		super     string
		next      *element.Element
		nextStart geometry.Position
	)
	for i := len(l.all) - 1; i >= 0; i-- {
		e := l.all[i]
		start := e.Start()
		l.starts[e.Name] = start

		if e.IsSubelement() {
			parent := e.Parent()
			if _, onPath := l.position[parent]; parent == "" || !onPath {
				parent = super
			}
			if parent != "" {
				l.parents[e.Name] = parent
			}
			continue
		}

		if next != nil {
			if d := e.End().VectorAngle(nextStart, upstream); d < -ReversalTolerance {
				l.reversals = append(l.reversals, Reversal{Element: e.Name, Next: next.Name, Overshoot: -d})
			}
		}
		super = e.Name
		next = e
		nextStart = start
	}

	// Collected upstream; report in travel order.
	for i, j := 0, len(l.reversals)-1; i < j; i, j = i+1, j-1 {
		l.reversals[i], l.reversals[j] = l.reversals[j], l.reversals[i]
	}
}

func (l *Layout) attach(logger log.Logger, buildID string) {
	l.logger = logger
	l.buildID = buildID
}

// Name returns the beam path name.
func (l *Layout) Name() string {
	return l.name
}

// Sections returns the sections in travel order.
func (l *Layout) Sections() []*Section {
	return append([]*Section(nil), l.sections...)
}

// SectionNames returns the section names in travel order.
func (l *Layout) SectionNames() []string {
	out := make([]string, len(l.sections))
	for i, s := range l.sections {
		out[i] = s.Name()
	}
	return out
}

// Section returns a member section by name.
func (l *Layout) Section(name string) (*Section, bool) {
	for _, s := range l.sections {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Names returns the authoritative ordered element names of the path.
func (l *Layout) Names() []string {
	out := make([]string, len(l.all))
	for i, e := range l.all {
		out[i] = e.Name
	}
	return out
}

// Elements returns the authoritative ordered elements of the path.
func (l *Layout) Elements() []*element.Element {
	return append([]*element.Element(nil), l.all...)
}

// Len returns the number of elements on the path.
func (l *Layout) Len() int {
	return len(l.all)
}

// Contains reports whether the named element lies on the path.
func (l *Layout) Contains(name string) bool {
	_, ok := l.position[name]
	return ok
}

// Parent returns the physical parent of a subelement on this path.
func (l *Layout) Parent(name string) (string, bool) {
	p, ok := l.parents[name]
	return p, ok
}

// Start returns the entrance boundary of an element on this path.
func (l *Layout) Start(name string) (geometry.Position, bool) {
	p, ok := l.starts[name]
	return p, ok
}

// Reversals returns the reversal diagnostics in travel order.
func (l *Layout) Reversals() []Reversal {
	return append([]Reversal(nil), l.reversals...)
}

func (l *Layout) lookup(name string) (int, error) {
	i, ok := l.position[name]
	if !ok {
		return 0, &LookupError{Name: name, Path: l.name}
	}
	return i, nil
}

// span returns the elements from start to end inclusive. Empty names default
// to the first and last element of the path.
func (l *Layout) span(start, end string) ([]*element.Element, error) {
	if len(l.all) == 0 {
		for _, n := range []string{start, end} {
			if n != "" {
				return nil, &LookupError{Name: n, Path: l.name}
			}
		}
		return nil, nil
	}
	if start == "" {
		start = l.all[0].Name
	}
	if end == "" {
		end = l.all[len(l.all)-1].Name
	}
	first, err := l.lookup(start)
	if err != nil {
		return nil, err
	}
	last, err := l.lookup(end)
	if err != nil {
		return nil, err
	}
	if first > last {
		return nil, nil
	}
	return l.all[first : last+1], nil
}

// ElementsBetween returns the names of the elements from start to end
// inclusive that pass the filter. Empty start or end default to the ends of
// the path.
func (l *Layout) ElementsBetween(start, end string, f Filter) ([]string, error) {
	elems, err := l.span(start, end)
	if err != nil {
		return nil, err
	}
	elems = f.apply(elems)
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = e.Name
	}
	return out, nil
}

// CreateDrifts returns the elements from start to end interleaved with
// synthesized drifts named <layout>_drift_<n>.
func (l *Layout) CreateDrifts(start, end string) (*element.Index, error) {
	elems, err := l.span(start, end)
	if err != nil {
		return nil, err
	}
	res := synthesizeDrifts(l.name, elems)
	l.logger.Log(log.Event{
		Timestamp: time.Now(),
		BuildID:   l.buildID,
		Source:    log.SourceLayout,
		Category:  log.CategoryDrift,
		Subject:   l.name,
		Drift:     res.event(),
	})
	return res.index, nil
}

// SValues returns the cumulative path length from start to end after drift
// expansion.
func (l *Layout) SValues(start, end string, opts SOptions) (SPositions, error) {
	idx, err := l.CreateDrifts(start, end)
	if err != nil {
		return nil, err
	}
	return accumulate(idx, opts), nil
}
