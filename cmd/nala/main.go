// Command nala loads, queries and exports beamline lattices.
//
// A lattice is read from YAML (a machine directory or explicit files) or from
// a snapshot stored in a SQLite database.
//
// Usage:
//
//	nala <command> [flags]
//
// Commands:
//
//	show         Show the model, a layout, a section or an element
//	between      List elements along a beam path
//	svalues      Show cumulative s-positions along a beam path
//	drifts       Fill a beam path with drifts
//	export       Write the model as a machine directory
//	save         Store the model as a snapshot
//	snapshots    List or delete stored snapshots
//	interactive  Browse and edit the model in a shell
//
// Examples:
//
//	# Quadrupoles between two elements
//	nala between -machine ./clara -start CLA-S01-MAG-QUAD-01 -end CLA-S02-MAG-QUAD-03 -type quadrupole
//
//	# s-positions along the default path as JSON
//	nala svalues -machine ./clara -format json
//
//	# Store a snapshot and query it later
//	nala save -machine ./clara -db lattice.db
//	nala drifts -db lattice.db -path SP1
//
//	# Interactive shell that records lattice events
//	nala interactive -machine ./clara -event-log session.nlog
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const usage = `nala - Beamline Lattice Tool

Usage:
  nala <command> [flags]

Commands:
  show         Show the model, a layout, a section or an element
  between      List elements along a beam path
  svalues      Show cumulative s-positions along a beam path
  drifts       Fill a beam path with drifts
  export       Write the model as a machine directory
  save         Store the model as a snapshot
  snapshots    List or delete stored snapshots
  interactive  Browse and edit the model in a shell

Use "nala <command> -help" for more information about a command.
`

// errUsage reports a flag error that has already been printed.
var errUsage = errors.New("invalid usage")

type command func(args []string, stdout, stderr io.Writer) error

var commands = map[string]command{
	"show":        runShow,
	"between":     runBetween,
	"svalues":     runSValues,
	"drifts":      runDrifts,
	"export":      runExport,
	"save":        runSave,
	"snapshots":   runSnapshots,
	"interactive": runInteractive,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1], os.Args[2:], os.Stdout, os.Stderr))
}

func run(cmd string, args []string, stdout, stderr io.Writer) int {
	switch cmd {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}
	if err := fn(args, stdout, stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
