package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nala-lattice/nala-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsBySource   map[log.Source]int
	EventsByCategory map[log.Category]int
	Operations       map[log.Operation]int
	Builds           map[string]*BuildStats
	Drifts           int
	DriftLength      float64
	Overlaps         []log.Overlap
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// BuildStats holds statistics for a single model generation.
type BuildStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Elements    int
	DefaultPath string
	Queries     int
	Errors      int
}

// Collect reads all events of r into a Stats value.
func Collect(r *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsBySource:   make(map[log.Source]int),
		EventsByCategory: make(map[log.Category]int),
		Operations:       make(map[log.Operation]int),
		Builds:           make(map[string]*BuildStats),
	}

	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsBySource[event.Source]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	b, ok := s.Builds[event.BuildID]
	if !ok {
		b = &BuildStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Builds[event.BuildID] = b
	}
	b.Events++
	if event.Timestamp.After(b.LastSeen) {
		b.LastSeen = event.Timestamp
	}

	switch {
	case event.Build != nil:
		b.Elements = event.Build.Elements
		b.DefaultPath = event.Build.DefaultPath
	case event.Query != nil:
		s.Operations[event.Query.Operation]++
		b.Queries++
	case event.Drift != nil:
		s.Drifts += event.Drift.Drifts
		s.DriftLength += event.Drift.TotalLength
		s.Overlaps = append(s.Overlaps, event.Drift.Overlaps...)
	case event.Error != nil:
		s.Errors++
		b.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Lattice Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Source:")
	for _, src := range []log.Source{log.SourceModel, log.SourceSection, log.SourceLayout} {
		if count := stats.EventsBySource[src]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", src.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryBuild, log.CategoryQuery, log.CategoryDrift, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Operations) > 0 {
		fmt.Fprintln(w, "Queries:")
		for _, op := range []log.Operation{log.OpElementsBetween, log.OpSValues, log.OpCreateDrifts, log.OpGetElement} {
			if count := stats.Operations[op]; count > 0 {
				fmt.Fprintf(w, "  %-18s %d\n", op.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	if stats.Drifts > 0 {
		fmt.Fprintf(w, "Drifts: %d (%.6g m total)\n", stats.Drifts, stats.DriftLength)
	}
	if len(stats.Overlaps) > 0 {
		fmt.Fprintf(w, "Overlaps: %d\n", len(stats.Overlaps))
		for _, o := range stats.Overlaps {
			fmt.Fprintf(w, "  %s > %s by %.6g m\n", o.Previous, o.Next, -o.Length)
		}
	}
	if stats.Drifts > 0 || len(stats.Overlaps) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Builds: %d\n", len(stats.Builds))
	if len(stats.Builds) > 0 {
		type buildInfo struct {
			id    string
			stats *BuildStats
		}
		builds := make([]buildInfo, 0, len(stats.Builds))
		for id, bs := range stats.Builds {
			builds = append(builds, buildInfo{id, bs})
		}
		sort.Slice(builds, func(i, j int) bool {
			return builds[i].stats.FirstSeen.Before(builds[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, b := range builds {
			duration := b.stats.LastSeen.Sub(b.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(b.id), b.stats.Events, duration)
			if b.stats.Elements > 0 {
				fmt.Fprintf(w, "           Elements: %d\n", b.stats.Elements)
			}
			if b.stats.DefaultPath != "" {
				fmt.Fprintf(w, "           Default path: %s\n", b.stats.DefaultPath)
			}
			if b.stats.Queries > 0 {
				fmt.Fprintf(w, "           Queries: %d\n", b.stats.Queries)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
