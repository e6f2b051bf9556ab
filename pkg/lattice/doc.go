// Package lattice implements the beamline lattice model.
//
// # Structure
//
// A Model owns a flat element index and builds two views on it:
//
//	Model > Layout (beam path) > Section > Element
//
// Sections are named, explicitly ordered runs of elements. They come from
// explicit definitions or are inferred, one per machine area, for elements
// no explicit section claims. Layouts compose sections in travel order; two
// layouts may share a section and then expose the same element data.
//
// # Drifts and s-positions
//
// Drift synthesis walks the non-subelements of a span and fills every
// longitudinal gap between one element's exit and the next element's
// entrance with a Drift element:
//
//	A [0.5..1.5]   gap 4.0   B [5.5..6.5]
//	=> A, S1_drift_1 (L=4.0), B
//
// Drift lengths are rounded to DriftPrecision; zero gaps are omitted and
// negative gaps (overlaps) are reported through the event log. Synthesis
// works on clones, with diagnostics treated as zero length, so it never
// modifies stored elements. SValues accumulates lengths over the result.
//
// # Beam path resolution
//
// Model queries resolve the beam path in this order: the explicit Query.Path,
// the path named by the machine area of Query.End then Query.Start, the
// default path, and the only path if exactly one exists. Anything else is a
// ConfigurationError.
//
// # Concurrency
//
// The model keeps an immutable generation behind a sync.RWMutex. Append,
// Update and SetDefaultPath build a new generation and swap it in, so readers
// never observe a partial rebuild. Elements returned by Section and Layout
// accessors are shared and must be treated as read-only; Model.GetElement and
// Model.Elements return copies.
package lattice
