package lattice

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/log"
)

// Query selects a range of a beam path.
type Query struct {
	// Start and End bound the range inclusively. Empty values default to
	// the ends of the beam path.
	Start string `json:"start,omitempty" query:"start"`
	End   string `json:"end,omitempty" query:"end"`

	// Path names the beam path. When empty it is resolved from the machine
	// area of End or Start, then the default path.
	Path string `json:"path,omitempty" query:"path"`

	Filter
}

// generation is one immutable build of the model.
type generation struct {
	id          string
	builtAt     time.Time
	elements    *element.Index
	sections    []*Section
	sectionIdx  map[string]*Section
	layouts     []*Layout
	layoutIdx   map[string]*Layout
	defaultPath string
	inferred    []string
}

// Model owns the flat element index, the sections and the beam paths.
// It is safe for concurrent use: queries read the current generation while
// Append, Update and SetDefaultPath swap in a complete new one.
type Model struct {
	mu     sync.RWMutex
	gen    *generation
	cfg    config
	logger log.Logger
}

// New builds a model from elements in order. Duplicate names keep the first
// position and the last record.
func New(elems []*element.Element, opts ...Option) (*Model, error) {
	cfg := config{logger: log.NoopLogger{}}
	for _, o := range opts {
		o(&cfg)
	}

	idx := element.NewIndex()
	for _, e := range elems {
		if err := e.Validate(); err != nil {
			return nil, &ConfigurationError{Reason: "invalid element", Cause: err}
		}
		idx.Put(e.Clone())
	}

	m := &Model{cfg: cfg, logger: cfg.logger}
	gen, err := m.build(idx, cfg.layouts.Default)
	if err != nil {
		m.emitError(uuid.NewString(), "build", err)
		return nil, err
	}
	m.gen = gen
	return m, nil
}

// build constructs a complete generation from the flat element index.
func (m *Model) build(idx *element.Index, defaultPath string) (*generation, error) {
	began := time.Now()
	g := &generation{
		id:         uuid.NewString(),
		builtAt:    began,
		elements:   idx,
		sectionIdx: make(map[string]*Section),
		layoutIdx:  make(map[string]*Layout),
	}

	// Explicit sections first, then one per uncovered machine area.
	claimed := make(map[string]bool)
	for _, def := range m.cfg.sections {
		if def.Name == "" {
			return nil, configErrorf("section definition without a name")
		}
		if _, dup := g.sectionIdx[def.Name]; dup {
			return nil, configErrorf("section %s defined twice", def.Name)
		}
		s := NewSection(def.Name, def.Members, idx)
		g.addSection(s)
		for _, n := range s.Names() {
			claimed[n] = true
		}
	}

	var areas []string
	members := make(map[string][]string)
	for _, e := range idx.Elements() {
		if e.MachineArea == "" || claimed[e.Name] {
			continue
		}
		if _, explicit := g.sectionIdx[e.MachineArea]; explicit {
			continue
		}
		if _, seen := members[e.MachineArea]; !seen {
			areas = append(areas, e.MachineArea)
		}
		members[e.MachineArea] = append(members[e.MachineArea], e.Name)
	}
	for _, area := range areas {
		g.addSection(NewSection(area, members[area], idx))
		g.inferred = append(g.inferred, area)
	}

	for _, def := range m.cfg.layouts.Layouts {
		if _, dup := g.layoutIdx[def.Name]; dup {
			return nil, configErrorf("beam path %s defined twice", def.Name)
		}
		sections := make([]*Section, 0, len(def.Sections))
		for _, name := range def.Sections {
			s, ok := g.sectionIdx[name]
			if !ok {
				return nil, configErrorf("beam path %s names undefined section %s", def.Name, name)
			}
			sections = append(sections, s)
		}
		l := NewLayout(def.Name, sections...)
		g.layouts = append(g.layouts, l)
		g.layoutIdx[def.Name] = l
	}

	switch {
	case defaultPath != "":
		if _, ok := g.layoutIdx[defaultPath]; !ok {
			return nil, configErrorf("default beam path %s is not defined", defaultPath)
		}
		g.defaultPath = defaultPath
	case len(g.layouts) == 1:
		g.defaultPath = g.layouts[0].Name()
	}

	for _, s := range g.sections {
		s.attach(m.logger, g.id)
	}
	for _, l := range g.layouts {
		l.attach(m.logger, g.id)
	}

	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		BuildID:   g.id,
		Source:    log.SourceModel,
		Category:  log.CategoryBuild,
		Build:     g.buildEvent(time.Since(began)),
	})
	return g, nil
}

func (g *generation) addSection(s *Section) {
	g.sections = append(g.sections, s)
	g.sectionIdx[s.Name()] = s
}

func (g *generation) buildEvent(d time.Duration) *log.BuildEvent {
	b := &log.BuildEvent{
		Elements:    g.elements.Len(),
		Sections:    len(g.sections),
		Layouts:     len(g.layouts),
		DefaultPath: g.defaultPath,
		Inferred:    append([]string(nil), g.inferred...),
		Duration:    d,
	}
	for _, s := range g.sections {
		for _, n := range s.Dropped() {
			b.Dropped = append(b.Dropped, s.Name()+"/"+n)
		}
	}
	for _, l := range g.layouts {
		b.Reversals += len(l.Reversals())
	}
	return b
}

func (m *Model) current() *generation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// Append merges elements into the model and rebuilds every section and beam
// path. Existing names are replaced in place. On error the model is left
// unchanged.
func (m *Model) Append(elems ...*element.Element) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := element.NewIndex(m.gen.elements.Elements()...)
	for _, e := range elems {
		if err := e.Validate(); err != nil {
			return &ConfigurationError{Reason: "invalid element", Cause: err}
		}
		idx.Put(e.Clone())
	}
	gen, err := m.build(idx, m.gen.defaultPath)
	if err != nil {
		m.emitError(m.gen.id, "append", err)
		return err
	}
	m.gen = gen
	return nil
}

// Update is an alias of Append.
func (m *Model) Update(elems ...*element.Element) error {
	return m.Append(elems...)
}

// SetDefaultPath changes the default beam path.
func (m *Model) SetDefaultPath(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.gen.layoutIdx[path]; !ok {
		return &LookupError{Path: path}
	}
	next := *m.gen
	next.defaultPath = path
	m.gen = &next
	return nil
}

// BuildID returns the identifier of the current generation.
func (m *Model) BuildID() string {
	return m.current().id
}

// DefaultPath returns the default beam path, or "" if none.
func (m *Model) DefaultPath() string {
	return m.current().defaultPath
}

// GetElement returns a copy of the named element.
func (m *Model) GetElement(name string) (*element.Element, error) {
	g := m.current()
	e, ok := g.elements.Get(name)
	if !ok {
		err := &LookupError{Name: name}
		m.emitError(g.id, "get element", err)
		return nil, err
	}
	return e.Clone(), nil
}

// Names returns every element name in insertion order.
func (m *Model) Names() []string {
	return m.current().elements.Names()
}

// Len returns the number of elements.
func (m *Model) Len() int {
	return m.current().elements.Len()
}

// Sections returns the section names in build order.
func (m *Model) Sections() []string {
	g := m.current()
	out := make([]string, len(g.sections))
	for i, s := range g.sections {
		out[i] = s.Name()
	}
	return out
}

// Section returns a section by name.
func (m *Model) Section(name string) (*Section, error) {
	s, ok := m.current().sectionIdx[name]
	if !ok {
		return nil, fmt.Errorf("section %s: %w", name, ErrNotFound)
	}
	return s, nil
}

// Layouts returns the beam path names in definition order.
func (m *Model) Layouts() []string {
	g := m.current()
	out := make([]string, len(g.layouts))
	for i, l := range g.layouts {
		out[i] = l.Name()
	}
	return out
}

// Layout returns a beam path by name.
func (m *Model) Layout(name string) (*Layout, error) {
	l, ok := m.current().layoutIdx[name]
	if !ok {
		return nil, &LookupError{Path: name}
	}
	return l, nil
}

// resolvePath picks the beam path for a query.
func (g *generation) resolvePath(q Query) (*Layout, error) {
	if q.Path != "" {
		l, ok := g.layoutIdx[q.Path]
		if !ok {
			return nil, &LookupError{Path: q.Path}
		}
		return l, nil
	}

	for _, name := range []string{q.End, q.Start} {
		if name == "" {
			continue
		}
		e, ok := g.elements.Get(name)
		if !ok {
			return nil, &LookupError{Name: name}
		}
		if l, ok := g.layoutIdx[e.MachineArea]; ok {
			return l, nil
		}
	}

	if g.defaultPath != "" {
		return g.layoutIdx[g.defaultPath], nil
	}
	switch len(g.layouts) {
	case 0:
		return nil, configErrorf("no beam paths are defined")
	case 1:
		return g.layouts[0], nil
	default:
		return nil, configErrorf("no default beam path and %d beam paths are defined", len(g.layouts))
	}
}

// ElementsBetween returns the names of the elements between q.Start and
// q.End inclusive on the resolved beam path that pass q.Filter.
func (m *Model) ElementsBetween(q Query) ([]string, error) {
	g := m.current()
	l, err := g.resolvePath(q)
	if err != nil {
		m.emitError(g.id, "elements between", err)
		return nil, err
	}
	names, err := l.ElementsBetween(q.Start, q.End, q.Filter)
	if err != nil {
		m.emitError(g.id, "elements between", err)
		return nil, err
	}
	m.emitQuery(g.id, log.OpElementsBetween, l.Name(), q, len(names))
	return names, nil
}

// CreateDrifts returns the elements between q.Start and q.End on the resolved
// beam path interleaved with synthesized drifts. The filter is ignored.
func (m *Model) CreateDrifts(q Query) (*element.Index, error) {
	g := m.current()
	l, err := g.resolvePath(q)
	if err != nil {
		m.emitError(g.id, "create drifts", err)
		return nil, err
	}
	idx, err := l.CreateDrifts(q.Start, q.End)
	if err != nil {
		m.emitError(g.id, "create drifts", err)
		return nil, err
	}
	m.emitQuery(g.id, log.OpCreateDrifts, l.Name(), q, idx.Len())
	return idx, nil
}

// SValues returns cumulative path lengths between q.Start and q.End on the
// resolved beam path. The filter is ignored.
func (m *Model) SValues(q Query, opts SOptions) (SPositions, error) {
	g := m.current()
	l, err := g.resolvePath(q)
	if err != nil {
		m.emitError(g.id, "s values", err)
		return nil, err
	}
	s, err := l.SValues(q.Start, q.End, opts)
	if err != nil {
		m.emitError(g.id, "s values", err)
		return nil, err
	}
	m.emitQuery(g.id, log.OpSValues, l.Name(), q, len(s))
	return s, nil
}

// Span is one drift-filled range of a beam path with its s-positions, taken
// from a single generation.
type Span struct {
	Path     string
	Elements *element.Index
	SValues  SPositions
}

// Span resolves the beam path once and returns the drift-filled range of q
// together with its s-positions. The filter is ignored.
func (m *Model) Span(q Query, opts SOptions) (Span, error) {
	g := m.current()
	l, err := g.resolvePath(q)
	if err != nil {
		m.emitError(g.id, "span", err)
		return Span{}, err
	}
	idx, err := l.CreateDrifts(q.Start, q.End)
	if err != nil {
		m.emitError(g.id, "span", err)
		return Span{}, err
	}
	m.emitQuery(g.id, log.OpCreateDrifts, l.Name(), q, idx.Len())
	return Span{Path: l.Name(), Elements: idx, SValues: accumulate(idx, opts)}, nil
}

// AllElements returns the names of the elements passing f on every beam path,
// in first-seen order without duplicates. Without beam paths the sections are
// used instead.
func (m *Model) AllElements(f Filter) []string {
	g := m.current()
	seen := make(map[string]bool)
	var out []string
	add := func(elems []*element.Element) {
		for _, e := range f.apply(elems) {
			if !seen[e.Name] {
				seen[e.Name] = true
				out = append(out, e.Name)
			}
		}
	}
	if len(g.layouts) > 0 {
		for _, l := range g.layouts {
			add(l.all)
		}
	} else {
		for _, s := range g.sections {
			add(s.Elements())
		}
	}
	return out
}

func (m *Model) emitQuery(buildID string, op log.Operation, path string, q Query, n int) {
	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		BuildID:   buildID,
		Source:    log.SourceModel,
		Category:  log.CategoryQuery,
		Subject:   path,
		Query: &log.QueryEvent{
			Operation: op,
			Path:      path,
			Start:     q.Start,
			End:       q.End,
			Results:   n,
		},
	})
}

func (m *Model) emitError(buildID, context string, err error) {
	subject := ""
	var lerr *LookupError
	if errors.As(err, &lerr) {
		subject = lerr.Name
		if subject == "" {
			subject = lerr.Path
		}
	}
	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		BuildID:   buildID,
		Source:    log.SourceModel,
		Category:  log.CategoryError,
		Subject:   subject,
		Error:     &log.ErrorEventData{Message: err.Error(), Context: context},
	})
}
