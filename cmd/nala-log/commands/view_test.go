package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nala-lattice/nala-go/pkg/log"
)

func TestFormatBuildEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC),
		BuildID:   "0f6c2a1e-1111-2222-3333-444455556666",
		Source:    log.SourceModel,
		Category:  log.CategoryBuild,
		Build: &log.BuildEvent{
			Elements:    9,
			Sections:    3,
			Layouts:     2,
			DefaultPath: "line",
			Inferred:    []string{"SP1"},
			Dropped:     []string{"X"},
			Duration:    1500 * time.Microsecond,
		},
	})
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[build:0f6c2a1e]",
		"MODEL",
		"BUILD",
		"Elements: 9  Sections: 3  Layouts: 2",
		"Default path: line",
		"Inferred: SP1",
		"Dropped: X",
		"Duration: 1.500ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatQueryAndDriftEvents(t *testing.T) {
	events := sampleEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[1])
	output := buf.String()
	if !strings.Contains(output, "LAYOUT  QUERY line") {
		t.Errorf("unexpected header, got:\n%s", output)
	}
	if !strings.Contains(output, "Operation: S_VALUES") || !strings.Contains(output, "Range: INJ-CAV-01 .. -") {
		t.Errorf("unexpected query details, got:\n%s", output)
	}

	buf.Reset()
	formatEvent(&buf, events[2])
	output = buf.String()
	if !strings.Contains(output, "Drifts: 1 (0.25 m)") {
		t.Errorf("expected drift summary, got:\n%s", output)
	}
	if !strings.Contains(output, "Overlap: A > B by 0.25 m") {
		t.Errorf("expected overlap line, got:\n%s", output)
	}

	buf.Reset()
	formatEvent(&buf, events[3])
	output = buf.String()
	if !strings.Contains(output, "Message: no beam path for X") || !strings.Contains(output, "Context: SValues") {
		t.Errorf("expected error details, got:\n%s", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{2500 * time.Microsecond, "2.500ms"},
		{1500 * time.Millisecond, "1.500s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	s, err := ParseSourceFlag("Section")
	if err != nil || s != log.SourceSection {
		t.Errorf("ParseSourceFlag(Section) = %v, %v", s, err)
	}
	if _, err := ParseSourceFlag("wire"); err == nil {
		t.Error("expected error for invalid source")
	}

	c, err := ParseCategoryFlag("drift")
	if err != nil || c != log.CategoryDrift {
		t.Errorf("ParseCategoryFlag(drift) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for invalid category")
	}
}

func TestRunViewFilters(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	cat := log.CategoryDrift
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "DRIFT S1") {
		t.Errorf("expected drift event, got:\n%s", output)
	}
	if strings.Contains(output, "QUERY") || strings.Contains(output, "BUILD") {
		t.Errorf("filter let other categories through:\n%s", output)
	}

	buf.Reset()
	if err := RunView(path, ViewFilter{Subject: "line"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if n := strings.Count(buf.String(), "[build:"); n != 1 {
		t.Errorf("expected 1 event for subject line, got %d", n)
	}
}
