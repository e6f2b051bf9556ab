// Package commands implements the nala-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nala-lattice/nala-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Source   *log.Source
	Category *log.Category
	Subject  string
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{Source: f.Source, Category: f.Category, Subject: f.Subject}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [build:id] SOURCE CATEGORY subject
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [build:%s] %-7s %s", ts, shortenID(event.BuildID), event.Source, event.Category)
	if event.Subject != "" {
		fmt.Fprintf(w, " %s", event.Subject)
	}
	fmt.Fprintln(w)

	switch {
	case event.Build != nil:
		formatBuildDetails(w, event.Build)
	case event.Query != nil:
		formatQueryDetails(w, event.Query)
	case event.Drift != nil:
		formatDriftDetails(w, event.Drift)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a build ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatBuildDetails(w io.Writer, b *log.BuildEvent) {
	fmt.Fprintf(w, "  Elements: %d  Sections: %d  Layouts: %d\n", b.Elements, b.Sections, b.Layouts)
	if b.DefaultPath != "" {
		fmt.Fprintf(w, "  Default path: %s\n", b.DefaultPath)
	}
	if len(b.Inferred) > 0 {
		fmt.Fprintf(w, "  Inferred: %s\n", strings.Join(b.Inferred, ", "))
	}
	if len(b.Dropped) > 0 {
		fmt.Fprintf(w, "  Dropped: %s\n", strings.Join(b.Dropped, ", "))
	}
	if b.Reversals > 0 {
		fmt.Fprintf(w, "  Reversals: %d\n", b.Reversals)
	}
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(b.Duration))
}

func formatQueryDetails(w io.Writer, q *log.QueryEvent) {
	fmt.Fprintf(w, "  Operation: %s\n", q.Operation)
	if q.Path != "" {
		fmt.Fprintf(w, "  Path: %s\n", q.Path)
	}
	if q.Start != "" || q.End != "" {
		fmt.Fprintf(w, "  Range: %s .. %s\n", orDash(q.Start), orDash(q.End))
	}
	fmt.Fprintf(w, "  Results: %d\n", q.Results)
}

func formatDriftDetails(w io.Writer, d *log.DriftEvent) {
	fmt.Fprintf(w, "  Drifts: %d (%.6g m)\n", d.Drifts, d.TotalLength)
	for _, o := range d.Overlaps {
		fmt.Fprintf(w, "  Overlap: %s > %s by %.6g m\n", o.Previous, o.Next, -o.Length)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseSourceFlag parses a source string from command-line flag (case-insensitive).
func ParseSourceFlag(s string) (log.Source, error) {
	if v, ok := log.ParseSource(strings.ToUpper(s)); ok {
		return v, nil
	}
	return 0, fmt.Errorf("invalid source: %s (must be model, section, or layout)", s)
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	if v, ok := log.ParseCategory(strings.ToUpper(s)); ok {
		return v, nil
	}
	return 0, fmt.Errorf("invalid category: %s (must be build, query, drift, or error)", s)
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
