package lattice

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/log"
)

func place(name, hwType, area string, z, length float64) *element.Element {
	e := element.New(name, hwType)
	e.MachineArea = area
	e.Geometry.Middle = geometry.Position{Z: z}
	e.Geometry.Length = length
	return e
}

func subOf(e *element.Element, parent string) *element.Element {
	e.Subelement = parent
	return e
}

// machine returns a small two-branch injector:
//
//	INJ: cavity, quad (+ embedded BPM), screen
//	L01: quad, corrector, cavity
//	SP1: dipole, screen
func machine() []*element.Element {
	l01Quad := place("L01-QUAD-01", element.TypeQuadrupole, "L01", 5, 0.2)
	l01Quad.Model = "Custom"
	return []*element.Element{
		place("INJ-CAV-01", element.TypeRFCavity, "INJ", 0.5, 1),
		place("INJ-QUAD-01", element.TypeQuadrupole, "INJ", 2, 0.2),
		subOf(place("INJ-BPM-01", element.TypeBeamPositionMonitor, "INJ", 2, 0.1), "INJ-QUAD-01"),
		place("INJ-SCR-01", element.TypeScreen, "INJ", 3, 0.1),
		l01Quad,
		place("L01-HCOR-01", element.TypeHorizontalCorrector, "L01", 6, 0.1),
		place("L01-CAV-01", element.TypeRFCavity, "L01", 8, 2),
		place("SP1-DIP-01", element.TypeDipole, "SP1", 10, 0.4),
		place("SP1-SCR-01", element.TypeScreen, "SP1", 11, 0),
	}
}

func machineLayouts() LayoutDefinitions {
	return LayoutDefinitions{
		Layouts: []LayoutDefinition{
			{Name: "line", Sections: []string{"INJ", "L01"}},
			{Name: "SP1", Sections: []string{"INJ", "SP1"}},
		},
	}
}

// mockLogger is a testify mock of log.Logger.
type mockLogger struct{ mock.Mock }

func (m *mockLogger) Log(e log.Event) { m.Called(e) }

// recorder keeps every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recorder) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) byCategory(c log.Category) []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []log.Event
	for _, e := range r.events {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}
