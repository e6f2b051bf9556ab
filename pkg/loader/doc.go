// Package loader reads lattice definitions from YAML.
//
// Three document kinds are understood:
//
//	elements   name -> record mapping, or one record with a name key
//	sections   sections: {S01: [a, b]}
//	layouts    layouts: {line: [S01, S02]}, default_layout: line
//
// A machine directory holds any number of element files, in any nesting,
// plus optional sections.yaml and layouts.yaml at its root. Errors carry the
// file and, where known, the line of the offending entry.
package loader
