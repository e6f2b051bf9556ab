package lattice

import (
	"time"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/log"
)

// Section is a named, explicitly ordered run of elements.
//
// Only names present both in the order and in the supplied elements are
// kept; the others are reported by Dropped. Elements returned by a Section
// are shared with the model and must be treated as read-only.
type Section struct {
	name     string
	order    []string
	elements *element.Index
	dropped  []string

	logger  log.Logger
	buildID string
}

// NewSection creates a section from an ordered list of member names,
// resolving them against elems.
func NewSection(name string, order []string, elems *element.Index) *Section {
	s := &Section{
		name:     name,
		order:    append([]string(nil), order...),
		elements: element.NewIndex(),
		logger:   log.NoopLogger{},
	}
	for _, n := range order {
		e, ok := elems.Get(n)
		if !ok {
			s.dropped = append(s.dropped, n)
			continue
		}
		s.elements.Put(e)
	}
	return s
}

// attach wires the section to the event log of a model generation.
func (s *Section) attach(logger log.Logger, buildID string) {
	s.logger = logger
	s.buildID = buildID
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Order returns the declared member order, including dropped names.
func (s *Section) Order() []string {
	return append([]string(nil), s.order...)
}

// Names returns the names of the resolved elements in order.
func (s *Section) Names() []string {
	return s.elements.Names()
}

// Elements returns the resolved elements in order.
func (s *Section) Elements() []*element.Element {
	return s.elements.Elements()
}

// Get returns a member element by name.
func (s *Section) Get(name string) (*element.Element, bool) {
	return s.elements.Get(name)
}

// Len returns the number of resolved elements.
func (s *Section) Len() int {
	return s.elements.Len()
}

// Dropped returns declared member names with no matching element.
func (s *Section) Dropped() []string {
	return append([]string(nil), s.dropped...)
}

// CreateDrifts returns the section's elements interleaved with synthesized
// drifts, in travel order. Subelements are omitted. Stored elements are not
// modified, so repeated calls give identical results.
func (s *Section) CreateDrifts() *element.Index {
	res := synthesizeDrifts(s.name, s.elements.Elements())
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		BuildID:   s.buildID,
		Source:    log.SourceSection,
		Category:  log.CategoryDrift,
		Subject:   s.name,
		Drift:     res.event(),
	})
	return res.index
}

// SValues returns the cumulative path length at every element after drift
// expansion.
func (s *Section) SValues(opts SOptions) SPositions {
	return accumulate(s.CreateDrifts(), opts)
}

// Length returns the path length of the section, drifts included.
func (s *Section) Length() float64 {
	var total float64
	for _, e := range synthesizeDrifts(s.name, s.elements.Elements()).index.Elements() {
		total += e.Geometry.Length
	}
	return total
}
