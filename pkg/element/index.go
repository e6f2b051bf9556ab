package element

// Index is a name to element mapping that remembers first-insertion order.
// Putting an existing name replaces the element but keeps its position.
//
// Index is not safe for concurrent mutation; the lattice model guards it.
type Index struct {
	names []string
	items map[string]*Element
}

// NewIndex creates an index holding the given elements in order.
func NewIndex(elems ...*Element) *Index {
	x := &Index{items: make(map[string]*Element, len(elems))}
	for _, e := range elems {
		x.Put(e)
	}
	return x
}

// Put inserts or replaces an element.
func (x *Index) Put(e *Element) {
	if _, exists := x.items[e.Name]; !exists {
		x.names = append(x.names, e.Name)
	}
	x.items[e.Name] = e
}

// Get returns the element with the given name.
func (x *Index) Get(name string) (*Element, bool) {
	e, ok := x.items[name]
	return e, ok
}

// Has reports whether name is present.
func (x *Index) Has(name string) bool {
	_, ok := x.items[name]
	return ok
}

// Len returns the number of elements.
func (x *Index) Len() int {
	return len(x.names)
}

// Names returns the element names in order.
func (x *Index) Names() []string {
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

// Elements returns the elements in order.
func (x *Index) Elements() []*Element {
	out := make([]*Element, len(x.names))
	for i, n := range x.names {
		out[i] = x.items[n]
	}
	return out
}

// Merge puts every element of o into x, in o's order.
func (x *Index) Merge(o *Index) {
	for _, e := range o.Elements() {
		x.Put(e)
	}
}

// Clone returns a deep copy of the index.
func (x *Index) Clone() *Index {
	c := &Index{
		names: make([]string, len(x.names)),
		items: make(map[string]*Element, len(x.items)),
	}
	copy(c.names, x.names)
	for n, e := range x.items {
		c.items[n] = e.Clone()
	}
	return c
}
