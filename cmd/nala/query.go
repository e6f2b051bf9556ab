package main

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nala-lattice/nala-go/pkg/export"
	"github.com/nala-lattice/nala-go/pkg/inspect"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// encoderFor returns nil for the plain text format.
func encoderFor(format string) (export.Encoder, error) {
	if format == "" || format == "text" {
		return nil, nil
	}
	return export.ForFormat(format)
}

func newFlagSet(name, usage string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

func runShow(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	fs := newFlagSet("show", `nala show - Show the model, a layout, a section or an element

Usage:
  nala show [flags] [element]

Flags:
`, stderr)
	src.register(fs)
	layout := fs.String("layout", "", "Show this layout")
	section := fs.String("section", "", "Show this section")
	format := fs.String("format", "text", "Output format (text, "+formatList()+")")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	enc, err := encoderFor(*format)
	if err != nil {
		return err
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()
	m := sess.Model
	f := inspect.NewFormatter()

	switch {
	case fs.NArg() > 0:
		e, err := m.GetElement(fs.Arg(0))
		if err != nil {
			return err
		}
		if enc != nil {
			return export.WriteElement(stdout, e, enc)
		}
		fmt.Fprint(stdout, f.FormatElement(e))
	case *layout != "":
		l, err := m.Layout(*layout)
		if err != nil {
			return err
		}
		if enc != nil {
			return enc.Encode(stdout, l.Info())
		}
		fmt.Fprint(stdout, f.FormatLayout(l.Info()))
	case *section != "":
		s, err := m.Section(*section)
		if err != nil {
			return err
		}
		info := s.Info()
		for _, mi := range m.Info().Sections {
			if mi.Name == info.Name {
				info = mi
			}
		}
		if enc != nil {
			return enc.Encode(stdout, info)
		}
		fmt.Fprint(stdout, f.FormatSection(info))
	default:
		if enc != nil {
			return export.WriteSummary(stdout, m, enc)
		}
		fmt.Fprint(stdout, f.FormatModel(m.Info()))
	}
	return nil
}

func runBetween(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	var q queryFlags
	fs := newFlagSet("between", `nala between - List elements along a beam path

Usage:
  nala between [flags]

Flags:
`, stderr)
	src.register(fs)
	q.register(fs)
	format := fs.String("format", "text", "Output format (text, "+formatList()+")")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	enc, err := encoderFor(*format)
	if err != nil {
		return err
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	names, err := sess.Model.ElementsBetween(q.query())
	if err != nil {
		return err
	}
	if enc != nil {
		return enc.Encode(stdout, names)
	}
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return nil
}

func runSValues(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	var q queryFlags
	fs := newFlagSet("svalues", `nala svalues - Show cumulative s-positions along a beam path

Usage:
  nala svalues [flags]

Flags:
`, stderr)
	src.register(fs)
	q.register(fs)
	entrance := fs.Bool("entrance", false, "Report positions at element entrances")
	s0 := fs.Float64("s0", 0, "s-position of the first entrance")
	format := fs.String("format", "text", "Output format (text, "+formatList()+")")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	enc, err := encoderFor(*format)
	if err != nil {
		return err
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	values, err := sess.Model.SValues(q.query(), lattice.SOptions{AtEntrance: *entrance, StartingS: *s0})
	if err != nil {
		return err
	}
	if enc != nil {
		return enc.Encode(stdout, values)
	}
	fmt.Fprint(stdout, inspect.NewFormatter().FormatSValues(values))
	return nil
}

func runDrifts(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	var q queryFlags
	fs := newFlagSet("drifts", `nala drifts - Fill a beam path with drifts

Usage:
  nala drifts [flags]

Flags:
`, stderr)
	src.register(fs)
	q.register(fs)
	format := fs.String("format", "text", "Output format (text, "+formatList()+")")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	enc, err := encoderFor(*format)
	if err != nil {
		return err
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	table, err := export.BuildTable(sess.Model, q.query(), lattice.SOptions{})
	if err != nil {
		return err
	}
	if enc != nil {
		return enc.Encode(stdout, table)
	}
	writeTable(stdout, table)
	return nil
}

func writeTable(w io.Writer, t export.Table) {
	f := inspect.NewFormatter()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tAREA\tLENGTH [m]\tS [m]")
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Type, r.Area, f.FormatFloat(r.Length), f.FormatFloat(r.S))
	}
	tw.Flush()
}
