// Package log provides the structured lattice event log for NALA.
//
// This package defines the Logger interface and Event types for capturing
// what the lattice model does: generation builds, queries, drift synthesis
// and failures. It is separate from operational logging (slog) - the event
// log provides a machine-readable trace for debugging lattice definitions.
//
// # Basic Usage
//
// Applications configure logging by passing a Logger to the model:
//
//	// For development: log to console via slog
//	m, err := lattice.New(elems, lattice.WithLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/nala/lattice.nlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Event Types
//
// Every event carries the build ID of the model generation that produced it.
// Payloads:
//   - Build: a new generation was built (BuildEvent)
//   - Query: a range, s-position or drift query was answered (QueryEvent)
//   - Drift: drift synthesis results, including overlaps (DriftEvent)
//   - Error: a failed query or build (ErrorEventData)
//
// # File Format
//
// Log files use CBOR encoding with .nlog extension. The nala-log CLI tool
// provides viewing, filtering, and export capabilities.
package log
