package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/lattice"
	"github.com/nala-lattice/nala-go/pkg/log"
)

// pathSwitcher changes the default beam path as soon as a drift query is
// logged, the way a concurrent PUT to nala-web would.
type pathSwitcher struct {
	m  *lattice.Model
	to string
}

func (p *pathSwitcher) Log(e log.Event) {
	if p.m == nil || e.Query == nil || e.Query.Operation != log.OpCreateDrifts {
		return
	}
	_ = p.m.SetDefaultPath(p.to)
}

func TestBuildTableReadsOneGeneration(t *testing.T) {
	sw := &pathSwitcher{to: "b"}
	m, err := lattice.New([]*element.Element{
		place("A1", element.TypeQuadrupole, "a", 1, 1),
		place("A2", element.TypeQuadrupole, "a", 6, 1),
		place("B1", element.TypeQuadrupole, "b", 20, 1),
	},
		lattice.WithLayouts(lattice.LayoutDefinitions{
			Layouts: []lattice.LayoutDefinition{
				{Name: "a", Sections: []string{"a"}},
				{Name: "b", Sections: []string{"b"}},
			},
			Default: "a",
		}),
		lattice.WithLogger(sw),
	)
	require.NoError(t, err)
	sw.m = m

	table, err := BuildTable(m, lattice.Query{}, lattice.SOptions{})
	require.NoError(t, err)
	assert.Equal(t, "b", m.DefaultPath())

	assert.Equal(t, "a", table.Path)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "a_drift_1", table.Rows[1].Name)
	for i, want := range []float64{1, 5, 6} {
		assert.InDelta(t, want, table.Rows[i].S, 1e-9, table.Rows[i].Name)
	}
}

func TestBuildTableResolvesPath(t *testing.T) {
	m := testModel(t)

	table, err := BuildTable(m, lattice.Query{End: "L01-HCOR-01"}, lattice.SOptions{AtEntrance: true, StartingS: 2})
	require.NoError(t, err)
	assert.Equal(t, m.DefaultPath(), table.Path)
	assert.InDelta(t, 2.0, table.Rows[0].S, 1e-9)
}
