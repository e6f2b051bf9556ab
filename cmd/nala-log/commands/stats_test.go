package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nala-lattice/nala-go/pkg/log"
)

func TestStatsCountsBySourceAndCategory(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"=== Lattice Event Log Statistics ===",
		"Total Events: 4",
		"MODEL:       2",
		"SECTION:     1",
		"LAYOUT:      1",
		"BUILD:       1",
		"QUERY:       1",
		"S_VALUES:          1",
		"Drifts: 1 (0.25 m total)",
		"A > B by 0.25 m",
		"Builds: 1",
		"[build-aa] 4 events, duration 3s",
		"Default path: line",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestStatsMultipleBuilds(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, BuildID: "first", Category: log.CategoryBuild, Build: &log.BuildEvent{Elements: 3}},
		{Timestamp: ts.Add(time.Minute), BuildID: "second", Category: log.CategoryBuild, Build: &log.BuildEvent{Elements: 4}},
		{Timestamp: ts.Add(2 * time.Minute), BuildID: "second", Category: log.CategoryQuery, Query: &log.QueryEvent{}},
	}
	path := createTestLogFile(t, events)

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(stats.Builds) != 2 {
		t.Fatalf("expected 2 builds, got %d", len(stats.Builds))
	}
	if b := stats.Builds["second"]; b.Events != 2 || b.Elements != 4 || b.Queries != 1 {
		t.Errorf("unexpected stats for second build: %+v", b)
	}
	if stats.Operations[log.OpElementsBetween] != 1 {
		t.Errorf("expected one ELEMENTS_BETWEEN query, got %d", stats.Operations[log.OpElementsBetween])
	}
	if stats.Errors != 0 {
		t.Errorf("expected no errors, got %d", stats.Errors)
	}
}

func TestStatsEmptyLog(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Total Events: 0") || strings.Contains(output, "Time Range") {
		t.Errorf("unexpected output for empty log:\n%s", output)
	}
}
