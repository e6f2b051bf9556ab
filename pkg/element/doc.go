// Package element defines the beamline element record and its ordered index.
//
// # Element
//
// An Element is identified by its name, unique within one lattice model. It
// carries a three-level hardware taxonomy and a geometry sub-record:
//
//	hardware_class > hardware_type > hardware_model
//	Magnet         > Quadrupole    > Generic
//	Diagnostic     > Screen        > YAG
//
// Per-kind defaults (class and model for each hardware type) live in a
// generated table, see kind_gen.go. Kinds are plain data looked up by type.
//
// # Geometry
//
// The geometry of an element is its middle position, a local and a global
// rotation, a length and a signed bend angle. Entrance and exit positions are
// derived from these with the placement arithmetic of package geometry:
//
//	Start = middle - R * offset
//	End   = middle + R * offset
//
// where R is the matrix of the combined local and global rotation.
//
// # Subelements
//
// A subelement physically overlaps another element, for example a beam
// position monitor inside a quadrupole bore. It is either marked as a bare
// subelement or names its parent. Subelements do not contribute to path
// length accounting.
package element
