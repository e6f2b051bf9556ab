package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrRotationRange is returned when a rotation angle lies outside [-pi, pi].
var ErrRotationRange = errors.New("rotation angle out of range [-pi, pi]")

// Rotation holds three Euler-like angles in radians, each within [-pi, pi].
type Rotation struct {
	// Phi is the rotation about the horizontal axis (pitch).
	Phi float64 `cbor:"1,keyasint" json:"phi"`

	// Psi is the rotation about the longitudinal axis (roll).
	Psi float64 `cbor:"2,keyasint" json:"psi"`

	// Theta is the rotation in the horizontal plane (yaw).
	Theta float64 `cbor:"3,keyasint" json:"theta"`
}

// NewRotation creates a rotation, rejecting angles outside [-pi, pi].
func NewRotation(phi, psi, theta float64) (Rotation, error) {
	r := Rotation{Phi: phi, Psi: psi, Theta: theta}
	if err := r.Validate(); err != nil {
		return Rotation{}, err
	}
	return r, nil
}

// RotationFromSlice builds a rotation from a slice. A single value is theta;
// three values are (phi, psi, theta).
func RotationFromSlice(v []float64) (Rotation, error) {
	switch len(v) {
	case 1:
		return NewRotation(0, 0, v[0])
	case 3:
		return NewRotation(v[0], v[1], v[2])
	default:
		return Rotation{}, fmt.Errorf("rotation needs 1 or 3 components, got %d", len(v))
	}
}

// Validate checks that every angle lies within [-pi, pi].
func (r Rotation) Validate() error {
	names := [3]string{"phi", "psi", "theta"}
	for i, a := range [3]float64{r.Phi, r.Psi, r.Theta} {
		if math.IsNaN(a) || a < -math.Pi || a > math.Pi {
			return fmt.Errorf("%s=%g: %w", names[i], a, ErrRotationRange)
		}
	}
	return nil
}

// Add returns the component-wise sum, wrapped back into [-pi, pi].
func (r Rotation) Add(o Rotation) Rotation {
	return Rotation{
		Phi:   wrapAngle(r.Phi + o.Phi),
		Psi:   wrapAngle(r.Psi + o.Psi),
		Theta: wrapAngle(r.Theta + o.Theta),
	}
}

// Sub returns the component-wise difference, wrapped back into [-pi, pi].
func (r Rotation) Sub(o Rotation) Rotation {
	return Rotation{
		Phi:   wrapAngle(r.Phi - o.Phi),
		Psi:   wrapAngle(r.Psi - o.Psi),
		Theta: wrapAngle(r.Theta - o.Theta),
	}
}

// Abs returns the rotation with every angle made non-negative.
func (r Rotation) Abs() Rotation {
	return Rotation{Phi: math.Abs(r.Phi), Psi: math.Abs(r.Psi), Theta: math.Abs(r.Theta)}
}

// Exceeds reports whether any angle is greater than v.
func (r Rotation) Exceeds(v float64) bool {
	return r.Phi > v || r.Psi > v || r.Theta > v
}

// ExceedsTriple reports whether any angle is greater than the matching
// bound in (phi, psi, theta).
func (r Rotation) ExceedsTriple(bounds [3]float64) bool {
	return r.Phi > bounds[0] || r.Psi > bounds[1] || r.Theta > bounds[2]
}

// ExceedsRotation reports whether any angle is greater than the matching
// angle of o.
func (r Rotation) ExceedsRotation(o Rotation) bool {
	return r.ExceedsTriple([3]float64{o.Phi, o.Psi, o.Theta})
}

// IsZero reports whether all angles are exactly zero.
func (r Rotation) IsZero() bool {
	return r.Phi == 0 && r.Psi == 0 && r.Theta == 0
}

// Slice returns the angles as [phi, psi, theta].
func (r Rotation) Slice() []float64 {
	return []float64{r.Phi, r.Psi, r.Theta}
}

// String returns the rotation as "(phi, psi, theta)".
func (r Rotation) String() string {
	return fmt.Sprintf("(%g, %g, %g)", r.Phi, r.Psi, r.Theta)
}

// wrapAngle maps a onto [-pi, pi].
func wrapAngle(a float64) float64 {
	if a >= -math.Pi && a <= math.Pi {
		return a
	}
	return math.Remainder(a, 2*math.Pi)
}
