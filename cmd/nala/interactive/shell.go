// Package interactive provides the interactive lattice shell of nala.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nala-lattice/nala-go/pkg/inspect"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Shell browses a model through inspect paths.
type Shell struct {
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	cwd       *inspect.Path
	path      string
	out       io.Writer
}

// New creates a shell at the model root writing to out.
func New(m *lattice.Model, out io.Writer) *Shell {
	return &Shell{
		inspector: inspect.NewInspector(m),
		formatter: inspect.NewFormatter(),
		cwd:       &inspect.Path{Kind: inspect.KindRoot},
		out:       out,
	}
}

// Cwd returns the current inspect path.
func (s *Shell) Cwd() string {
	return s.cwd.String()
}

// SetCwd changes the current inspect path.
func (s *Shell) SetCwd(p string) error {
	target, err := inspect.Resolve(s.cwd, p)
	if err != nil {
		return err
	}
	if target.Kind == inspect.KindAttribute {
		return fmt.Errorf("%w: %s is an attribute", inspect.ErrInvalidPath, target)
	}
	if _, err := s.inspector.Inspect(target); err != nil {
		return err
	}
	s.cwd = target
	return nil
}

// Path returns the selected beam path, empty for automatic resolution.
func (s *Shell) Path() string {
	return s.path
}

// SetPath selects the beam path used by range commands.
func (s *Shell) SetPath(name string) error {
	if name != "" {
		if _, err := s.inspector.Model().Layout(name); err != nil {
			return err
		}
	}
	s.path = name
	return nil
}

// Run reads commands with readline until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
		if s.Exec(line) {
			return nil
		}
		rl.SetPrompt(s.prompt())
	}
}

func (s *Shell) prompt() string {
	return "nala:" + s.cwd.String() + "> "
}

func (s *Shell) completer() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("pwd"),
		readline.PcItem("cd", readline.PcItemDynamic(s.childNames)),
		readline.PcItem("ls", readline.PcItemDynamic(s.childNames)),
		readline.PcItem("get", readline.PcItemDynamic(s.childNames)),
		readline.PcItem("set", readline.PcItemDynamic(s.childNames)),
		readline.PcItem("path", readline.PcItemDynamic(func(string) []string {
			return s.inspector.Model().Layouts()
		})),
		readline.PcItem("between"),
		readline.PcItem("svalues"),
		readline.PcItem("drifts"),
		readline.PcItem("attributes"),
		readline.PcItem("quit"),
	)
}

func (s *Shell) childNames(string) []string {
	names, err := s.inspector.Children(s.cwd)
	if err != nil {
		return nil
	}
	return names
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "pwd":
		fmt.Fprintln(s.out, s.cwd)
	case "cd":
		err = s.cmdCd(args)
	case "ls", "list":
		err = s.cmdLs(args)
	case "get", "inspect", "i":
		err = s.cmdGet(args)
	case "set", "write", "w":
		err = s.cmdSet(args)
	case "path":
		err = s.cmdPath(args)
	case "between":
		err = s.cmdBetween(args)
	case "svalues", "s":
		err = s.cmdSValues(args)
	case "drifts":
		err = s.cmdDrifts(args)
	case "attributes", "attrs":
		s.cmdAttributes()
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Lattice Shell Commands:
  Navigation:
    pwd                               - Show the current path
    cd <path>                         - Change path (.. moves up, / is the model)
    ls [path]                         - List names below a path

  Inspection:
    get [path]                        - Show a model, layout, section, element or attribute
    set <element-path>/<attr> <value> - Change an element attribute
    attributes                        - List element attributes

  Beam path:
    path [name|-]                     - Show or select the beam path (- resets)
    between [start] [end]             - List elements in a range
    svalues [start] [end]             - Show s-positions in a range
    drifts [start] [end]              - Show a range with drifts filled in

  General:
    help                              - Show this help
    quit                              - Exit the shell

  Path Format:
    /layouts/<layout>/<section>/<element>/<attribute>
    /sections/<section>/<element>/<attribute>
    /elements/<element>/<attribute>`)
}

func (s *Shell) cmdCd(args []string) error {
	target := "/"
	if len(args) > 0 {
		target = args[0]
	}
	return s.SetCwd(target)
}

func (s *Shell) cmdLs(args []string) error {
	p, err := s.resolve(args)
	if err != nil {
		return err
	}
	names, err := s.inspector.Children(p)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatList(names))
	return nil
}

func (s *Shell) cmdGet(args []string) error {
	p, err := s.resolve(args)
	if err != nil {
		return err
	}
	n, err := s.inspector.Inspect(p)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatNode(n))
	return nil
}

func (s *Shell) cmdSet(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <path> <value>")
		fmt.Fprintln(s.out, "  Example: set /elements/INJ-QUAD-01/length 0.25")
		return nil
	}
	p, err := inspect.Resolve(s.cwd, args[0])
	if err != nil {
		return err
	}
	if err := s.inspector.WriteAttribute(p, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	v, err := s.inspector.ReadAttribute(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.formatter.FormatAttribute(v))
	return nil
}

func (s *Shell) cmdPath(args []string) error {
	if len(args) == 0 {
		switch {
		case s.path != "":
			fmt.Fprintf(s.out, "Beam path: %s\n", s.path)
		case s.inspector.Model().DefaultPath() != "":
			fmt.Fprintf(s.out, "Beam path: %s (default)\n", s.inspector.Model().DefaultPath())
		default:
			fmt.Fprintln(s.out, "Beam path: resolved per query")
		}
		return nil
	}
	name := args[0]
	if name == "-" {
		name = ""
	}
	return s.SetPath(name)
}

func (s *Shell) query(args []string) lattice.Query {
	q := lattice.Query{Path: s.path}
	if len(args) > 0 {
		q.Start = args[0]
	}
	if len(args) > 1 {
		q.End = args[1]
	}
	return q
}

func (s *Shell) cmdBetween(args []string) error {
	names, err := s.inspector.Model().ElementsBetween(s.query(args))
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatList(names))
	return nil
}

func (s *Shell) cmdSValues(args []string) error {
	values, err := s.inspector.Model().SValues(s.query(args), lattice.SOptions{})
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatSValues(values))
	return nil
}

func (s *Shell) cmdDrifts(args []string) error {
	drifts, err := s.inspector.Model().CreateDrifts(s.query(args))
	if err != nil {
		return err
	}
	for _, e := range drifts.Elements() {
		fmt.Fprintf(s.out, "  %-24s %s\n", e.Name, inspect.FormatLengthHumanReadable(e.Geometry.Length))
	}
	fmt.Fprintf(s.out, "%d elements\n", drifts.Len())
	return nil
}

func (s *Shell) cmdAttributes() {
	for _, a := range inspect.Attributes() {
		access := "ro"
		if a.Writable {
			access = "rw"
		}
		unit := a.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(s.out, "  %-16s %-4s %s  %s\n", a.Name, unit, access, a.Description)
	}
}

func (s *Shell) resolve(args []string) (*inspect.Path, error) {
	if len(args) == 0 {
		return s.cwd, nil
	}
	return inspect.Resolve(s.cwd, args[0])
}
