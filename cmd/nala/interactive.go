package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nala-lattice/nala-go/cmd/nala/interactive"
	"github.com/nala-lattice/nala-go/pkg/persistence"
)

func runInteractive(args []string, stdout, stderr io.Writer) error {
	var src sourceFlags
	fs := newFlagSet("interactive", `nala interactive - Browse and edit the model in a shell

Usage:
  nala interactive [flags]

Flags:
`, stderr)
	src.register(fs)
	sessionPath := fs.String("session", persistence.DefaultSessionPath(), "Session file (cwd and beam path are restored from it)")
	reset := fs.Bool("reset", false, "Clear the saved session before starting")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	sess, err := src.open(stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	store := persistence.NewSessionStore(*sessionPath)
	if *reset {
		if err := store.Clear(); err != nil {
			sess.Logger.Warn("failed to clear session", "error", err)
		}
	}

	shell := interactive.New(sess.Model, stdout)
	restoreSession(shell, store, src, sess)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runErr := shell.Run(ctx)

	if err := store.Save(sessionState(shell, src)); err != nil {
		sess.Logger.Warn("failed to save session", "error", err)
	}
	return runErr
}

// sessionState captures the shell position for the next start.
func sessionState(shell *interactive.Shell, src sourceFlags) *persistence.SessionState {
	state := &persistence.SessionState{
		Version:  persistence.StateVersion,
		SavedAt:  time.Now(),
		Database: src.Database,
		Snapshot: src.Snapshot,
		Path:     shell.Path(),
		Cwd:      shell.Cwd(),
	}
	if src.Machine != "" {
		state.Machine = absPath(src.Machine)
	}
	return state
}

// restoreSession applies a saved session that was taken on the same input.
func restoreSession(shell *interactive.Shell, store *persistence.SessionStore, src sourceFlags, sess *session) {
	state, err := store.Load()
	if err != nil {
		sess.Logger.Warn("failed to load session", "error", err)
		return
	}
	if state == nil || state.Version != persistence.StateVersion {
		return
	}
	machine := ""
	if src.Machine != "" {
		machine = absPath(src.Machine)
	}
	if state.Machine != machine || state.Database != src.Database || state.Snapshot != src.Snapshot {
		return
	}

	if state.Path != "" {
		if err := shell.SetPath(state.Path); err != nil {
			sess.Logger.Info("saved beam path no longer exists", "path", state.Path)
		}
	}
	if state.Cwd != "" {
		if err := shell.SetCwd(state.Cwd); err != nil {
			sess.Logger.Info("saved path no longer exists", "cwd", state.Cwd)
		}
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
