package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nala-lattice/nala-go/pkg/lattice"
	"github.com/nala-lattice/nala-go/pkg/loader"
	nlog "github.com/nala-lattice/nala-go/pkg/log"
	"github.com/nala-lattice/nala-go/pkg/persistence"
)

// sourceFlags selects where a model comes from and how it logs.
type sourceFlags struct {
	Machine  string
	Elements string
	Sections string
	Layouts  string

	Database string
	Snapshot string

	LogLevel string
	EventLog string
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.Machine, "machine", "", "Machine directory (element YAML plus sections.yaml and layouts.yaml)")
	fs.StringVar(&s.Elements, "elements", "", "Comma-separated element files or directories")
	fs.StringVar(&s.Sections, "sections", "", "Section definitions file")
	fs.StringVar(&s.Layouts, "layouts", "", "Layout definitions file")
	fs.StringVar(&s.Database, "db", "", "SQLite snapshot database")
	fs.StringVar(&s.Snapshot, "snapshot", "", "Snapshot ID or name in -db (default: latest)")
	fs.StringVar(&s.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&s.EventLog, "event-log", "", "Write lattice events to this file (.nlog)")
}

// source returns the loader inputs named by the flags.
func (s *sourceFlags) source() loader.Source {
	var src loader.Source
	if s.Machine != "" {
		src = loader.MachineSource(s.Machine)
	}
	for _, p := range strings.Split(s.Elements, ",") {
		if p = strings.TrimSpace(p); p != "" {
			src.Elements = append(src.Elements, p)
		}
	}
	if s.Sections != "" {
		src.Sections = s.Sections
	}
	if s.Layouts != "" {
		src.Layouts = s.Layouts
	}
	return src
}

// session is an opened model with its loggers.
type session struct {
	Model  *lattice.Model
	Logger *slog.Logger

	closers []io.Closer
}

// Close releases the event log and snapshot database.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// open builds the model named by the flags.
func (s *sourceFlags) open(stderr io.Writer) (*session, error) {
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	sess := &session{Logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))}

	events := nlog.NewMultiLogger(nlog.NewSlogAdapter(sess.Logger))
	if s.EventLog != "" {
		fl, err := nlog.NewFileLogger(s.EventLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open event log: %w", err)
		}
		sess.closers = append(sess.closers, fl)
		events = nlog.NewMultiLogger(nlog.NewSlogAdapter(sess.Logger), fl)
	}

	if s.Database != "" && s.Machine == "" && s.Elements == "" {
		store, err := persistence.NewStore(s.Database)
		if err != nil {
			sess.Close()
			return nil, err
		}
		sess.closers = append(sess.closers, store)

		snap, err := findSnapshot(store, s.Snapshot)
		if err != nil {
			sess.Close()
			return nil, err
		}
		sess.Model, err = store.Load(snap.ID, lattice.WithLogger(events))
		if err != nil {
			sess.Close()
			return nil, err
		}
		sess.Logger.Info("loaded snapshot", "id", snap.ID, "name", snap.Name, "elements", snap.Elements)
		return sess, nil
	}

	src := s.source()
	if len(src.Elements) == 0 {
		sess.Close()
		return nil, errors.New("no lattice input: use -machine, -elements or -db")
	}
	sess.Model, err = loader.LoadModel(src, lattice.WithLogger(events))
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.Logger.Info("loaded model", "elements", sess.Model.Len(), "default_path", sess.Model.DefaultPath())
	return sess, nil
}

// findSnapshot resolves ref as a snapshot ID, then as a name. An empty ref
// selects the most recent snapshot.
func findSnapshot(store *persistence.Store, ref string) (*persistence.Snapshot, error) {
	if ref != "" {
		snap, err := store.Get(ref)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			return snap, nil
		}
	}
	snap, err := store.Latest(ref)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		if ref == "" {
			return nil, fmt.Errorf("%w: database is empty", persistence.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("%w: %s", persistence.ErrSnapshotNotFound, ref)
	}
	return snap, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use: debug, info, warn, error)", s)
	}
}

// queryFlags selects a beam path range and element filter.
type queryFlags struct {
	Path    string
	Start   string
	End     string
	Types   string
	Classes string
	Models  string
}

func (q *queryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&q.Path, "path", "", "Beam path (default: resolved from -end/-start or the default layout)")
	fs.StringVar(&q.Start, "start", "", "First element of the range")
	fs.StringVar(&q.End, "end", "", "Last element of the range")
	fs.StringVar(&q.Types, "type", "", "Comma-separated hardware types to keep")
	fs.StringVar(&q.Classes, "class", "", "Comma-separated hardware classes to keep")
	fs.StringVar(&q.Models, "model", "", "Comma-separated hardware models to keep")
}

func (q *queryFlags) query() lattice.Query {
	return lattice.Query{
		Path:  q.Path,
		Start: q.Start,
		End:   q.End,
		Filter: lattice.Filter{
			Types:   splitList(q.Types),
			Classes: splitList(q.Classes),
			Models:  splitList(q.Models),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
