package geometry

import (
	"fmt"
	"math"
)

// Longitudinal is the unit vector along the nominal beam direction.
var Longitudinal = Position{Z: 1}

// Position is a cartesian point or displacement in metres.
type Position struct {
	X float64 `cbor:"1,keyasint" json:"x"`
	Y float64 `cbor:"2,keyasint" json:"y"`
	Z float64 `cbor:"3,keyasint" json:"z"`
}

// NewPosition creates a position from its components.
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// PositionFromSlice builds a position from a slice of one, two or three values.
// A single value is the longitudinal coordinate and two values are (x, z).
func PositionFromSlice(v []float64) (Position, error) {
	switch len(v) {
	case 1:
		return Position{Z: v[0]}, nil
	case 2:
		return Position{X: v[0], Z: v[1]}, nil
	case 3:
		return Position{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return Position{}, fmt.Errorf("position needs 1, 2 or 3 components, got %d", len(v))
	}
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Scale multiplies every component by k.
func (p Position) Scale(k float64) Position {
	return Position{p.X * k, p.Y * k, p.Z * k}
}

// Dot returns the dot product of two vectors.
func (p Position) Dot(o Position) float64 {
	return p.X*o.X + p.Y*o.Y + p.Z*o.Z
}

// Length returns the Euclidean norm.
func (p Position) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// DistanceTo returns the straight-line distance between two points.
func (p Position) DistanceTo(o Position) float64 {
	return o.Sub(p).Length()
}

// Midpoint returns the point halfway between p and o.
func (p Position) Midpoint(o Position) Position {
	return Position{(p.X + o.X) / 2, (p.Y + o.Y) / 2, (p.Z + o.Z) / 2}
}

// VectorAngle returns the displacement from other to p projected onto
// direction, i.e. (p - other) . direction.
func (p Position) VectorAngle(other, direction Position) float64 {
	return p.Sub(other).Dot(direction)
}

// Slice returns the components as [x, y, z].
func (p Position) Slice() []float64 {
	return []float64{p.X, p.Y, p.Z}
}

// IsZero reports whether all components are exactly zero.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// String returns the position as "(x, y, z)".
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
