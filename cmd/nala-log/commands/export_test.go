package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nala-lattice/nala-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp: ts,
			BuildID:   "build-aaaaaaaa",
			Source:    log.SourceModel,
			Category:  log.CategoryBuild,
			Build:     &log.BuildEvent{Elements: 9, Sections: 3, Layouts: 2, DefaultPath: "line"},
		},
		{
			Timestamp: ts.Add(time.Second),
			BuildID:   "build-aaaaaaaa",
			Source:    log.SourceLayout,
			Category:  log.CategoryQuery,
			Subject:   "line",
			Query:     &log.QueryEvent{Operation: log.OpSValues, Path: "line", Start: "INJ-CAV-01", Results: 5},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			BuildID:   "build-aaaaaaaa",
			Source:    log.SourceSection,
			Category:  log.CategoryDrift,
			Subject:   "S1",
			Drift: &log.DriftEvent{Drifts: 1, TotalLength: 0.25, Overlaps: []log.Overlap{
				{Previous: "A", Next: "B", Length: -0.25},
			}},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			BuildID:   "build-aaaaaaaa",
			Source:    log.SourceModel,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Message: "no beam path for X", Context: "SValues"},
		},
	}
}

func TestExportToJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not JSON: %v", err)
	}
	if first["BuildID"] != "build-aaaaaaaa" {
		t.Errorf("expected BuildID in JSON, got %v", first["BuildID"])
	}
	if _, ok := first["Build"]; !ok {
		t.Error("expected Build payload in JSON")
	}
}

func TestExportToCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if err := export(reader, "csv", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header: %v", rows[0])
	}

	query := rows[2]
	if query[0] != "2026-01-28T10:15:33.123456Z" {
		t.Errorf("unexpected timestamp: %s", query[0])
	}
	if query[2] != "LAYOUT" || query[3] != "QUERY" || query[5] != "S_VALUES" || query[7] != "5" {
		t.Errorf("unexpected query row: %v", query)
	}
	if rows[3][8] != "1" {
		t.Errorf("expected drift count 1, got %q", rows[3][8])
	}
	if rows[4][9] != "no beam path for X" {
		t.Errorf("expected error message, got %q", rows[4][9])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"))
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestExportMissingFile(t *testing.T) {
	err := RunExport(filepath.Join(t.TempDir(), "missing.nlog"), "jsonl", "")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
