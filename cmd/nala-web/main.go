// Command nala-web serves a lattice model over HTTP.
//
// Every query endpoint answers JSON by default and MessagePack when the
// request carries ?format=msgpack or Accept: application/msgpack.
//
// Usage:
//
//	nala-web [flags]
//
// Flags:
//
//	-addr string       Listen address (default ":8080")
//	-machine string    Machine directory to load
//	-db string         SQLite snapshot database (used when -machine is empty)
//	-snapshot string   Snapshot ID or name in -db (default: latest)
//	-timeout duration  Per-request timeout (default 30s)
//	-cors string       Comma-separated allowed CORS origins
//	-gzip              Compress responses
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Serve a machine directory
//	nala-web -machine ./machine
//
//	# Serve the latest snapshot named "clara"
//	nala-web -db lattice.db -snapshot clara -addr 127.0.0.1:9000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nala-lattice/nala-go/pkg/lattice"
	"github.com/nala-lattice/nala-go/pkg/loader"
	nlog "github.com/nala-lattice/nala-go/pkg/log"
	"github.com/nala-lattice/nala-go/pkg/persistence"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

type options struct {
	Addr     string
	Machine  string
	Database string
	Snapshot string
	Timeout  time.Duration
	CORS     string
	Gzip     bool
	LogLevel string
	Version  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("nala-web", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	fs.StringVar(&opts.Machine, "machine", "", "Machine directory to load")
	fs.StringVar(&opts.Database, "db", "", "SQLite snapshot database (used when -machine is empty)")
	fs.StringVar(&opts.Snapshot, "snapshot", "", "Snapshot ID or name in -db (default: latest)")
	fs.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Per-request timeout")
	fs.StringVar(&opts.CORS, "cors", "", "Comma-separated allowed CORS origins")
	fs.BoolVar(&opts.Gzip, "gzip", false, "Compress responses")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.Version, "version", false, "Show version information")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.Version {
		fmt.Fprintf(stdout, "nala-web %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		fmt.Fprintf(stderr, "Error: invalid log level %q\n", opts.LogLevel)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m, closeModel, err := loadModel(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeModel()

	srv := NewServer(ServerConfig{
		Addr:         opts.Addr,
		Version:      Version,
		Timeout:      opts.Timeout,
		BodyLimit:    "1M",
		AllowOrigins: splitOrigins(opts.CORS),
		Gzip:         opts.Gzip,
	}, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	info := m.Info()
	logger.Info("serving lattice", "addr", opts.Addr, "build_id", info.BuildID,
		"elements", info.Elements, "layouts", len(info.Layouts), "default_path", info.DefaultPath)

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(stderr, "Error: server failed: %v\n", err)
		return 1
	}
	return 0
}

// loadModel builds the model from -machine or a snapshot in -db. The returned
// func releases the database.
func loadModel(opts options, logger *slog.Logger) (*lattice.Model, func(), error) {
	events := lattice.WithLogger(nlog.NewSlogAdapter(logger))
	if opts.Machine != "" {
		m, err := loader.LoadMachine(opts.Machine, events)
		return m, func() {}, err
	}
	if opts.Database == "" {
		return nil, nil, errors.New("no lattice input: use -machine or -db")
	}

	store, err := persistence.NewStore(opts.Database)
	if err != nil {
		return nil, nil, err
	}
	snap, err := store.Get(opts.Snapshot)
	if err == nil && snap == nil {
		snap, err = store.Latest(opts.Snapshot)
	}
	if err == nil && snap == nil {
		err = fmt.Errorf("%w: %s", persistence.ErrSnapshotNotFound, orLatest(opts.Snapshot))
	}
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	m, err := store.Load(snap.ID, events)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Info("loaded snapshot", "id", snap.ID, "name", snap.Name)
	return m, func() { store.Close() }, nil
}

func orLatest(ref string) string {
	if ref == "" {
		return "latest"
	}
	return ref
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
