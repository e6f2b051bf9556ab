package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nala-lattice/nala-go/pkg/export"
	"github.com/nala-lattice/nala-go/pkg/persistence"
)

func formatList() string {
	return strings.Join(export.Formats(), ", ")
}

func runExport(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	fs := newFlagSet("export", `nala export - Write the model as a machine directory

Usage:
  nala export [flags] -o <dir>

Flags:
`, stderr)
	src.register(fs)
	output := fs.String("o", "", "Output directory (required)")
	format := fs.String("format", "yaml", "Output format ("+formatList()+")")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *output == "" {
		fmt.Fprintln(stderr, "Error: output directory (-o) required")
		fs.Usage()
		return errUsage
	}
	enc, err := export.ForFormat(*format)
	if err != nil {
		return err
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	paths, err := export.WriteMachine(*output, sess.Model, enc)
	if err != nil {
		return err
	}
	sess.Logger.Info("exported machine", "dir", *output, "files", len(paths))
	fmt.Fprintf(stdout, "Exported %d elements to %s (%d files)\n", sess.Model.Len(), *output, len(paths))
	return nil
}

func runSave(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	fs := newFlagSet("save", `nala save - Store the model as a snapshot

Usage:
  nala save [flags] -db <file>

Flags:
`, stderr)
	src.register(fs)
	name := fs.String("name", "", "Snapshot name (default: machine directory name)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if src.Database == "" {
		fmt.Fprintln(stderr, "Error: snapshot database (-db) required")
		fs.Usage()
		return errUsage
	}
	if src.Machine == "" && src.Elements == "" {
		return errors.New("no lattice input: use -machine or -elements")
	}
	if *name == "" && src.Machine != "" {
		*name = filepath.Base(filepath.Clean(src.Machine))
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	store, err := persistence.NewStore(src.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Save(*name, sess.Model)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved snapshot %s (%s, %d elements)\n", snap.ID, snap.Name, snap.Elements)
	return nil
}

func runSnapshots(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("snapshots", `nala snapshots - List or delete stored snapshots

Usage:
  nala snapshots [flags] -db <file>

Flags:
`, stderr)
	db := fs.String("db", "", "SQLite snapshot database (required)")
	limit := fs.Int("limit", 50, "Maximum number of snapshots to list")
	del := fs.String("delete", "", "Delete the snapshot with this ID")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *db == "" {
		fmt.Fprintln(stderr, "Error: snapshot database (-db) required")
		fs.Usage()
		return errUsage
	}

	store, err := persistence.NewStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	if *del != "" {
		if err := store.Delete(*del); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted snapshot %s\n", *del)
		return nil
	}

	snaps, err := store.List(*limit, 0)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(stdout, "No snapshots")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED\tELEMENTS\tDEFAULT PATH")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.CreatedAt.Local().Format(time.DateTime), s.Elements, s.DefaultPath)
	}
	return tw.Flush()
}
