// Package geometry provides the 3D value types used to place lattice elements.
//
// Coordinates follow the usual accelerator convention:
//
//	x  horizontal, transverse to the beam
//	y  vertical
//	z  longitudinal, along the nominal beam direction
//
// Rotations are expressed as three angles (phi, psi, theta), each bounded to
// [-pi, pi]. A single rotation matrix convention is used for every derived
// position:
//
//	R = Yaw(theta) * Pitch(phi) * Roll(psi)
//
// Yaw turns in the horizontal x-z plane (positive theta turns +z towards -x),
// Pitch turns in the y-z plane and Roll turns in the x-y plane. Mixing
// conventions would corrupt drift lengths downstream, so all placement goes
// through Start and End in this package.
package geometry
