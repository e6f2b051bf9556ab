// Package persistence stores lattice models and tool state.
//
// Store keeps model snapshots in SQLite: every element record, the section
// and beam path definitions and the default path, keyed by a snapshot ID.
// A loaded snapshot rebuilds an equivalent model.
//
// SessionStore keeps the interactive shell's state in a small JSON file so
// a session can resume with the same source and beam path.
package persistence
