package lattice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
)

func injectorLine(t *testing.T) *Layout {
	t.Helper()
	idx := element.NewIndex(machine()...)
	inj := NewSection("INJ", []string{"INJ-CAV-01", "INJ-QUAD-01", "INJ-BPM-01", "INJ-SCR-01"}, idx)
	l01 := NewSection("L01", []string{"L01-QUAD-01", "L01-HCOR-01", "L01-CAV-01"}, idx)
	return NewLayout("line", inj, l01)
}

func TestLayoutFlattensSections(t *testing.T) {
	l := injectorLine(t)

	assert.Equal(t, "line", l.Name())
	assert.Equal(t, []string{"INJ", "L01"}, l.SectionNames())
	assert.Equal(t, []string{
		"INJ-CAV-01", "INJ-QUAD-01", "INJ-BPM-01", "INJ-SCR-01",
		"L01-QUAD-01", "L01-HCOR-01", "L01-CAV-01",
	}, l.Names())
	assert.Equal(t, 7, l.Len())
	assert.True(t, l.Contains("INJ-BPM-01"))
	assert.False(t, l.Contains("SP1-DIP-01"))

	s, ok := l.Section("L01")
	require.True(t, ok)
	assert.Equal(t, 3, s.Len())
	_, ok = l.Section("SP1")
	assert.False(t, ok)
	assert.Len(t, l.Sections(), 2)
}

func TestLayoutElementsBetweenFullRange(t *testing.T) {
	l := injectorLine(t)
	names := l.Names()

	got, err := l.ElementsBetween(names[0], names[len(names)-1], Filter{})
	require.NoError(t, err)
	assert.Equal(t, names, got)

	got, err = l.ElementsBetween("", "", Filter{})
	require.NoError(t, err)
	assert.Equal(t, names, got)
}

func TestLayoutElementsBetweenRange(t *testing.T) {
	l := injectorLine(t)

	got, err := l.ElementsBetween("INJ-SCR-01", "L01-HCOR-01", Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ-SCR-01", "L01-QUAD-01", "L01-HCOR-01"}, got)

	got, err = l.ElementsBetween("L01-HCOR-01", "INJ-SCR-01", Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = l.ElementsBetween("L01-QUAD-01", "", Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"L01-QUAD-01", "L01-HCOR-01", "L01-CAV-01"}, got)
}

func TestLayoutElementsBetweenUnknown(t *testing.T) {
	l := injectorLine(t)

	_, err := l.ElementsBetween("SP1-DIP-01", "", Filter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "SP1-DIP-01")
	assert.Contains(t, err.Error(), "does not exist along the beam path line")

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "line", lerr.Path)
}

func TestLayoutFilters(t *testing.T) {
	l := injectorLine(t)

	quads, err := l.ElementsBetween("", "", Filter{Types: []string{"quadrupole"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ-QUAD-01", "L01-QUAD-01"}, quads)

	magnets, err := l.ElementsBetween("", "", Filter{Classes: []string{"MAGNET"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ-QUAD-01", "L01-QUAD-01", "L01-HCOR-01"}, magnets)

	both, err := l.ElementsBetween("", "", Filter{Types: []string{"Quadrupole"}, Classes: []string{"Magnet"}})
	require.NoError(t, err)
	assert.Subset(t, quads, both)
	assert.Subset(t, magnets, both)

	custom, err := l.ElementsBetween("", "", Filter{Types: []string{"Quadrupole"}, Models: []string{"custom"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"L01-QUAD-01"}, custom)

	multi, err := l.ElementsBetween("", "", Filter{Types: []string{"Screen", "RFCavity"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ-CAV-01", "INJ-SCR-01", "L01-CAV-01"}, multi)

	none, err := l.ElementsBetween("", "", Filter{Classes: []string{"Laser"}})
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Models: []string{"x"}}.IsZero())
}

func TestLayoutSubelementParents(t *testing.T) {
	l := injectorLine(t)

	p, ok := l.Parent("INJ-BPM-01")
	require.True(t, ok)
	assert.Equal(t, "INJ-QUAD-01", p)

	_, ok = l.Parent("INJ-QUAD-01")
	assert.False(t, ok)

	// Without a declared parent the next downstream element is used.
	idx := element.NewIndex(
		place("Q1", element.TypeQuadrupole, "S", 1, 0.2),
		subOf(place("BPM", element.TypeBeamPositionMonitor, "S", 1.5, 0.1), element.SubelementUnnamed),
		place("Q2", element.TypeQuadrupole, "S", 2, 0.2),
	)
	l2 := NewLayout("l2", NewSection("S", []string{"Q1", "BPM", "Q2"}, idx))
	p, ok = l2.Parent("BPM")
	require.True(t, ok)
	assert.Equal(t, "Q2", p)
}

func TestLayoutStarts(t *testing.T) {
	l := injectorLine(t)
	start, ok := l.Start("L01-CAV-01")
	require.True(t, ok)
	assert.InDelta(t, 7.0, start.Z, 1e-12)

	_, ok = l.Start("missing")
	assert.False(t, ok)
}

func TestLayoutReversalsAreDiagnosticOnly(t *testing.T) {
	idx := element.NewIndex(
		place("A", element.TypeQuadrupole, "S", 1, 1),
		place("B", element.TypeQuadrupole, "S", 1.2, 1),
		place("C", element.TypeQuadrupole, "S", 5, 1),
	)
	l := NewLayout("l", NewSection("S", []string{"A", "B", "C"}, idx))

	rev := l.Reversals()
	require.Len(t, rev, 1)
	assert.Equal(t, "A", rev[0].Element)
	assert.Equal(t, "B", rev[0].Next)
	assert.InDelta(t, 0.8, rev[0].Overshoot, 1e-12)

	// Reversed elements stay on the path.
	assert.Equal(t, []string{"A", "B", "C"}, l.Names())
	assert.Len(t, l.Info().Reversals, 1)
}

func TestLayoutNoReversalForSubelements(t *testing.T) {
	l := injectorLine(t)
	assert.Empty(t, l.Reversals())
}

func TestLayoutDriftsAcrossSections(t *testing.T) {
	l := injectorLine(t)

	idx, err := l.CreateDrifts("INJ-SCR-01", "L01-HCOR-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"INJ-SCR-01", "line_drift_1", "L01-QUAD-01", "line_drift_2", "L01-HCOR-01",
	}, idx.Names())

	d, _ := idx.Get("line_drift_1")
	assert.InDelta(t, 1.9, d.Geometry.Length, 1e-9)
	assert.Equal(t, "INJ", d.MachineArea)

	s, err := l.SValues("INJ-SCR-01", "L01-HCOR-01", SOptions{AtEntrance: true, StartingS: 3})
	require.NoError(t, err)
	m := s.Map()
	assert.Equal(t, 3.0, m["INJ-SCR-01"])
	assert.InDelta(t, 4.9, m["L01-QUAD-01"], 1e-9)

	_, err = l.CreateDrifts("nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.SValues("", "nope", SOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLayoutEmpty(t *testing.T) {
	l := NewLayout("empty")

	got, err := l.ElementsBetween("", "", Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = l.ElementsBetween("A", "", Filter{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, l.Reversals())
}

func TestLayoutArcElement(t *testing.T) {
	dip := place("DIP", element.TypeDipole, "S", 2, 0.4)
	dip.Geometry.Angle = 0.2
	dip.Geometry.Rotation = geometry.Rotation{Theta: -0.1}
	idx := element.NewIndex(place("Q", element.TypeQuadrupole, "S", 1, 0.2), dip)

	l := NewLayout("arc", NewSection("S", []string{"Q", "DIP"}, idx))
	drifts, err := l.CreateDrifts("", "")
	require.NoError(t, err)

	d, ok := drifts.Get("arc_drift_1")
	require.True(t, ok)
	assert.InDelta(t, dip.Start().DistanceTo(geometry.Position{Z: 1.1}), d.Geometry.Length, 1e-6)
}
