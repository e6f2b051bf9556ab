package geometry

import "math"

// StraightEpsilon is the bend angle below which an element is treated as
// straight.
const StraightEpsilon = 1e-9

// Matrix is a 3x3 rotation matrix applied to column vectors.
type Matrix [3][3]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Yaw returns the rotation by theta in the horizontal x-z plane.
// Positive theta turns +z towards -x.
func Yaw(theta float64) Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return Matrix{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// Pitch returns the rotation by phi in the vertical y-z plane.
func Pitch(phi float64) Matrix {
	c, s := math.Cos(phi), math.Sin(phi)
	return Matrix{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// Roll returns the rotation by psi about the longitudinal axis.
func Roll(psi float64) Matrix {
	c, s := math.Cos(psi), math.Sin(psi)
	return Matrix{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Mul returns m * o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Apply returns m * v.
func (m Matrix) Apply(v Position) Position {
	return Position{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Matrix returns the rotation matrix Yaw(theta) * Pitch(phi) * Roll(psi).
func (r Rotation) Matrix() Matrix {
	return Yaw(r.Theta).Mul(Pitch(r.Phi)).Mul(Roll(r.Psi))
}

// HalfOffset returns the local displacement from the middle of an element to
// its exit, before rotation. Straight elements extend length/2 along z; bent
// elements follow the chord of an arc of the given angle.
func HalfOffset(length, angle float64) Position {
	if math.Abs(angle) < StraightEpsilon {
		return Position{Z: length / 2}
	}
	return Position{
		X: length * (1 - math.Cos(angle)) / (2 * angle),
		Z: length * math.Sin(angle) / (2 * angle),
	}
}

// Start returns the entrance of an element with the given middle, combined
// rotation, length and bend angle.
func Start(middle Position, rot Rotation, length, angle float64) Position {
	return middle.Sub(rot.Matrix().Apply(HalfOffset(length, angle)))
}

// End returns the exit of an element with the given middle, combined
// rotation, length and bend angle.
func End(middle Position, rot Rotation, length, angle float64) Position {
	return middle.Add(rot.Matrix().Apply(HalfOffset(length, angle)))
}
