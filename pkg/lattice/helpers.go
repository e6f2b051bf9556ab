package lattice

import "github.com/nala-lattice/nala-go/pkg/element"

// byTypes runs q restricted to the given hardware types.
func (m *Model) byTypes(q Query, types ...string) ([]string, error) {
	q.Types = types
	return m.ElementsBetween(q)
}

// byClass runs q restricted to one hardware class.
func (m *Model) byClass(q Query, class string) ([]string, error) {
	q.Classes = []string{class}
	return m.ElementsBetween(q)
}

// Magnets returns the magnet-class elements in the range of q.
func (m *Model) Magnets(q Query) ([]string, error) {
	return m.byClass(q, element.ClassMagnet)
}

// Quadrupoles returns the quadrupoles in the range of q.
func (m *Model) Quadrupoles(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeQuadrupole)
}

// Dipoles returns the dipoles in the range of q.
func (m *Model) Dipoles(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeDipole)
}

// Sextupoles returns the sextupoles in the range of q.
func (m *Model) Sextupoles(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeSextupole)
}

// Solenoids returns the solenoids in the range of q.
func (m *Model) Solenoids(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeSolenoid)
}

// HorizontalCorrectors returns the horizontal correctors in the range of q.
func (m *Model) HorizontalCorrectors(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeHorizontalCorrector)
}

// VerticalCorrectors returns the vertical correctors in the range of q.
func (m *Model) VerticalCorrectors(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeVerticalCorrector)
}

// Correctors returns horizontal, vertical and combined correctors.
func (m *Model) Correctors(q Query) ([]string, error) {
	return m.byTypes(q,
		element.TypeHorizontalCorrector,
		element.TypeVerticalCorrector,
		element.TypeCombinedCorrector,
	)
}

// Diagnostics returns the diagnostic-class elements in the range of q.
func (m *Model) Diagnostics(q Query) ([]string, error) {
	return m.byClass(q, element.ClassDiagnostic)
}

// BeamPositionMonitors returns the BPMs in the range of q.
func (m *Model) BeamPositionMonitors(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeBeamPositionMonitor)
}

// Screens returns the screens in the range of q.
func (m *Model) Screens(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeScreen)
}

// ChargeDiagnostics returns charge-measuring diagnostics in the range of q.
func (m *Model) ChargeDiagnostics(q Query) ([]string, error) {
	return m.byTypes(q,
		element.TypeChargeDiagnostic,
		element.TypeWallCurrentMonitor,
		element.TypeFaradayCupMonitor,
		element.TypeIntegratedCurrentTransformer,
	)
}

// RFCavities returns RF-class elements in the range of q.
func (m *Model) RFCavities(q Query) ([]string, error) {
	return m.byClass(q, element.ClassRF)
}

// Shutters returns the shutters in the range of q.
func (m *Model) Shutters(q Query) ([]string, error) {
	return m.byTypes(q, element.TypeShutter)
}

// ElementSPositions returns the exit s-positions of the elements in the range
// of q with drifts left out, rounded to DriftPrecision.
func (m *Model) ElementSPositions(q Query, opts SOptions) (SPositions, error) {
	span, err := m.Span(q, opts)
	if err != nil {
		return nil, err
	}
	out := make(SPositions, 0, len(span.SValues))
	for i, e := range span.Elements.Elements() {
		if e.IsDrift() {
			continue
		}
		out = append(out, SPosition{Name: e.Name, S: roundTo(span.SValues[i].S, DriftPrecision)})
	}
	return out, nil
}
