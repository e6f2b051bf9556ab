package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nala-lattice/nala-go/pkg/persistence"
)

const elementsYAML = `A:
  hardware_type: Quadrupole
  machine_area: S1
  physical:
    middle: [0, 0, 1]
    length: 1
B:
  hardware_type: Quadrupole
  machine_area: S1
  physical:
    middle: [0, 0, 6]
    length: 1
C:
  hardware_type: Screen
  machine_area: S2
  physical:
    middle: [0, 0, 9]
`

const sectionsYAML = `sections:
  S1: [A, B]
  S2: [C]
`

const layoutsYAML = `layouts:
  line: [S1, S2]
default_layout: line
`

func writeMachine(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"elements.yaml": elementsYAML,
		"sections.yaml": sectionsYAML,
		"layouts.yaml":  layoutsYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()
	m, closeModel, err := loadModel(options{Machine: writeMachine(t)}, discardLogger())
	if err != nil {
		t.Fatalf("Failed to load model: %v", err)
	}
	t.Cleanup(closeModel)
	return NewServer(cfg, m, discardLogger())
}

func get(srv *Server, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, ServerConfig{Version: "1.0.0-test"})

	w := get(srv, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", resp["status"])
	}
	if resp["version"] != "1.0.0-test" {
		t.Errorf("Expected version '1.0.0-test', got %q", resp["version"])
	}
}

func TestDefaultPathFromLayouts(t *testing.T) {
	srv := newTestServer(t, ServerConfig{Timeout: 5 * time.Second})

	w := get(srv, "/api/between", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Elements []string `json:"elements"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if strings.Join(resp.Elements, ",") != "A,B,C" {
		t.Errorf("Expected A,B,C, got %v", resp.Elements)
	}
}

func TestGzipResponses(t *testing.T) {
	srv := newTestServer(t, ServerConfig{Gzip: true})

	w := get(srv, "/api/drifts", map[string]string{echo.HeaderAcceptEncoding: "gzip"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get(echo.HeaderContentEncoding); got != "gzip" {
		t.Fatalf("Expected gzip encoding, got %q", got)
	}

	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to open gzip body: %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("Failed to read gzip body: %v", err)
	}
	if !strings.Contains(string(body), `"line_drift_1"`) {
		t.Errorf("Expected drift in body, got %s", body)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, ServerConfig{AllowOrigins: []string{"http://localhost:5173"}})

	w := get(srv, "/api/model", map[string]string{echo.HeaderOrigin: "http://localhost:5173"})
	if got := w.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "http://localhost:5173" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}

	w = get(srv, "/api/model", map[string]string{echo.HeaderOrigin: "http://evil.example"})
	if got := w.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Errorf("Expected no allowed origin header, got %q", got)
	}
}

func TestLoadModelFromSnapshot(t *testing.T) {
	m, closeModel, err := loadModel(options{Machine: writeMachine(t)}, discardLogger())
	if err != nil {
		t.Fatalf("Failed to load model: %v", err)
	}
	closeModel()

	dbPath := filepath.Join(t.TempDir(), "lattice.db")
	store, err := persistence.NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if _, err := store.Save("clara", m); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}
	store.Close()

	for _, ref := range []string{"", "clara"} {
		loaded, closeLoaded, err := loadModel(options{Database: dbPath, Snapshot: ref}, discardLogger())
		if err != nil {
			t.Fatalf("Failed to load snapshot %q: %v", ref, err)
		}
		if loaded.Len() != 3 {
			t.Errorf("Expected 3 elements, got %d", loaded.Len())
		}
		if loaded.DefaultPath() != "line" {
			t.Errorf("Expected default path line, got %q", loaded.DefaultPath())
		}
		closeLoaded()
	}

	_, _, err = loadModel(options{Database: dbPath, Snapshot: "other"}, discardLogger())
	if !errors.Is(err, persistence.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestRunFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Errorf("Expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "nala-web ") {
		t.Errorf("Expected version line, got %q", stdout.String())
	}

	stderr.Reset()
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no lattice input") {
		t.Errorf("Expected missing input error, got %q", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"-log-level", "loud"}, &stdout, &stderr); code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid log level") {
		t.Errorf("Expected log level error, got %q", stderr.String())
	}

	if code := run([]string{"-bogus"}, &stdout, &stderr); code != 2 {
		t.Errorf("Expected exit 2, got %d", code)
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins(" http://a , ,http://b")
	if strings.Join(got, "|") != "http://a|http://b" {
		t.Errorf("Unexpected origins %v", got)
	}
	if splitOrigins("") != nil {
		t.Errorf("Expected nil for empty input")
	}
}
