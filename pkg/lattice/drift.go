package lattice

import (
	"fmt"
	"math"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/log"
)

// DriftPrecision is the resolution drift lengths are rounded to, in metres.
const DriftPrecision = 1e-6

// driftResult is the outcome of drift synthesis over one span.
type driftResult struct {
	index    *element.Index
	drifts   int
	total    float64
	overlaps []log.Overlap
}

func (r driftResult) event() *log.DriftEvent {
	return &log.DriftEvent{Drifts: r.drifts, TotalLength: r.total, Overlaps: r.overlaps}
}

// synthesizeDrifts interleaves elems with drifts filling the longitudinal
// gaps. It works on clones: subelements are skipped and diagnostics are given
// zero length. Drifts are named <prefix>_drift_<n> with n counting from 1.
func synthesizeDrifts(prefix string, elems []*element.Element) driftResult {
	res := driftResult{index: element.NewIndex()}

	var prev *element.Element
	for _, e := range elems {
		if e.IsSubelement() {
			continue
		}
		c := e.Clone()
		if c.IsDiagnostic() {
			c.Geometry.Length = 0
		}

		if prev != nil {
			from, to := prev.End(), c.Start()
			gap := to.Sub(from)
			signed := roundTo(math.Copysign(gap.Length(), gap.Dot(geometry.Longitudinal)), DriftPrecision)
			if signed != 0 {
				res.drifts++
				name := fmt.Sprintf("%s_drift_%d", prefix, res.drifts)
				res.index.Put(newDrift(name, prev.MachineArea, from.Midpoint(to), math.Abs(signed)))
				res.total += math.Abs(signed)
				if signed < 0 {
					res.overlaps = append(res.overlaps, log.Overlap{
						Previous: prev.Name,
						Next:     c.Name,
						Length:   signed,
					})
				}
			}
		}

		res.index.Put(c)
		prev = c
	}
	return res
}

func newDrift(name, area string, middle geometry.Position, length float64) *element.Element {
	d := element.New(name, element.TypeDrift)
	d.MachineArea = area
	d.Geometry.Middle = middle
	d.Geometry.Length = length
	return d
}

func roundTo(v, step float64) float64 {
	scale := math.Round(1 / step)
	return math.Round(v*scale) / scale
}

// SOptions controls s-position accumulation.
type SOptions struct {
	// AtEntrance reports the position before each element instead of after.
	AtEntrance bool

	// StartingS is the s-position of the first entrance.
	StartingS float64
}

// SPosition is the cumulative path length at one element.
type SPosition struct {
	Name string  `cbor:"1,keyasint" json:"name" msgpack:"name"`
	S    float64 `cbor:"2,keyasint" json:"s" msgpack:"s"`
}

// SPositions is an ordered sequence of s-positions in travel order.
type SPositions []SPosition

// Map returns the positions keyed by element name.
func (p SPositions) Map() map[string]float64 {
	m := make(map[string]float64, len(p))
	for _, sp := range p {
		m[sp.Name] = sp.S
	}
	return m
}

// Names returns the element names in order.
func (p SPositions) Names() []string {
	out := make([]string, len(p))
	for i, sp := range p {
		out[i] = sp.Name
	}
	return out
}

// Values returns the s-positions in order.
func (p SPositions) Values() []float64 {
	out := make([]float64, len(p))
	for i, sp := range p {
		out[i] = sp.S
	}
	return out
}

// accumulate sums element lengths along a drift-filled index.
func accumulate(idx *element.Index, opts SOptions) SPositions {
	out := make(SPositions, 0, idx.Len())
	s := opts.StartingS
	for _, e := range idx.Elements() {
		if opts.AtEntrance {
			out = append(out, SPosition{Name: e.Name, S: s})
			s += e.Geometry.Length
			continue
		}
		s += e.Geometry.Length
		out = append(out, SPosition{Name: e.Name, S: s})
	}
	return out
}
