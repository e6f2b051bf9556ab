package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// ErrSnapshotNotFound is returned when a snapshot ID is unknown.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes a stored model.
type Snapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	BuildID     string    `json:"build_id"`
	CreatedAt   time.Time `json:"created_at"`
	DefaultPath string    `json:"default_path,omitempty"`
	Elements    int       `json:"elements"`
	Sections    int       `json:"sections"`
	Layouts     int       `json:"layouts"`
}

// Store provides SQLite persistence for model snapshots.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new store with the given database path.
// Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases and pragmas consistent.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		build_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		default_path TEXT,
		element_count INTEGER DEFAULT 0,
		section_count INTEGER DEFAULT 0,
		layout_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS snapshot_elements (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		hardware_class TEXT NOT NULL,
		hardware_type TEXT NOT NULL,
		machine_area TEXT,
		record_json TEXT NOT NULL,
		PRIMARY KEY (snapshot_id, name)
	);

	CREATE TABLE IF NOT EXISTS snapshot_sections (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		members_json TEXT NOT NULL,
		PRIMARY KEY (snapshot_id, name)
	);

	CREATE TABLE IF NOT EXISTS snapshot_layouts (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		sections_json TEXT NOT NULL,
		PRIMARY KEY (snapshot_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name);
	CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
	CREATE INDEX IF NOT EXISTS idx_snapshot_elements_type ON snapshot_elements(snapshot_id, hardware_type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the model's current generation under name and returns the
// new snapshot.
func (s *Store) Save(name string, m *lattice.Model) (*Snapshot, error) {
	view := m.Snapshot()
	info, sections, layouts := view.Info, view.Sections, view.Layouts
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Name:        name,
		BuildID:     info.BuildID,
		CreatedAt:   time.Now().UTC(),
		DefaultPath: layouts.Default,
		Elements:    info.Elements,
		Sections:    len(sections),
		Layouts:     len(layouts.Layouts),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO snapshots (id, name, build_id, created_at, default_path,
		                       element_count, section_count, layout_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Name, snap.BuildID, snap.CreatedAt, snap.DefaultPath,
		snap.Elements, snap.Sections, snap.Layouts)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	for i, e := range view.Elements {
		data, err := json.Marshal(element.ToRecord(e))
		if err != nil {
			return nil, fmt.Errorf("encode element %s: %w", e.Name, err)
		}
		_, err = tx.Exec(`
			INSERT INTO snapshot_elements (snapshot_id, position, name, hardware_class,
			                               hardware_type, machine_area, record_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, snap.ID, i, e.Name, e.Class, e.Type, e.MachineArea, string(data))
		if err != nil {
			return nil, fmt.Errorf("insert element %s: %w", e.Name, err)
		}
	}

	for i, def := range sections {
		data, err := json.Marshal(def.Members)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(`
			INSERT INTO snapshot_sections (snapshot_id, position, name, members_json)
			VALUES (?, ?, ?, ?)
		`, snap.ID, i, def.Name, string(data)); err != nil {
			return nil, fmt.Errorf("insert section %s: %w", def.Name, err)
		}
	}

	for i, def := range layouts.Layouts {
		data, err := json.Marshal(def.Sections)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(`
			INSERT INTO snapshot_layouts (snapshot_id, position, name, sections_json)
			VALUES (?, ?, ?, ?)
		`, snap.ID, i, def.Name, string(data)); err != nil {
			return nil, fmt.Errorf("insert layout %s: %w", def.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

const snapshotColumns = `id, name, build_id, created_at, default_path,
	element_count, section_count, layout_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var snap Snapshot
	var defaultPath sql.NullString
	if err := row.Scan(
		&snap.ID, &snap.Name, &snap.BuildID, &snap.CreatedAt, &defaultPath,
		&snap.Elements, &snap.Sections, &snap.Layouts,
	); err != nil {
		return nil, err
	}
	if defaultPath.Valid {
		snap.DefaultPath = defaultPath.String
	}
	return &snap, nil
}

// Get retrieves a snapshot by ID. Returns nil, nil if it does not exist.
func (s *Store) Get(id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := scanSnapshot(s.db.QueryRow(`SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return snap, err
}

// Latest retrieves the most recent snapshot with the given name, or the most
// recent of all when name is empty. Returns nil, nil if there is none.
func (s *Store) Latest(name string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	var args []any
	if name != "" {
		query += ` WHERE name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT 1`

	snap, err := scanSnapshot(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return snap, err
}

// List retrieves snapshots, most recent first.
func (s *Store) List(limit, offset int) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT `+snapshotColumns+` FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

// Delete removes a snapshot and everything stored with it.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"snapshot_elements", "snapshot_sections", "snapshot_layouts"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE snapshot_id = ?`, id); err != nil {
			return err
		}
	}
	res, err := tx.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return tx.Commit()
}

// Elements retrieves the element records of a snapshot in model order.
func (s *Store) Elements(id string) ([]*element.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elements(id)
}

func (s *Store) elements(id string) ([]*element.Element, error) {
	rows, err := s.db.Query(`
		SELECT name, record_json FROM snapshot_elements
		WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*element.Element
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, err
		}
		var rec element.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decode element %s: %w", name, err)
		}
		e, err := rec.Element()
		if err != nil {
			return nil, fmt.Errorf("decode element %s: %w", name, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Definitions retrieves the section and beam path definitions of a snapshot.
func (s *Store) Definitions(id string) (lattice.SectionDefinitions, lattice.LayoutDefinitions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.definitions(id)
}

func (s *Store) definitions(id string) (lattice.SectionDefinitions, lattice.LayoutDefinitions, error) {
	var layouts lattice.LayoutDefinitions

	var defaultPath sql.NullString
	err := s.db.QueryRow(`SELECT default_path FROM snapshots WHERE id = ?`, id).Scan(&defaultPath)
	if err == sql.ErrNoRows {
		return nil, layouts, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, layouts, err
	}
	layouts.Default = defaultPath.String

	sections, err := namedLists(s.db, `
		SELECT name, members_json FROM snapshot_sections
		WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, layouts, err
	}
	var secs lattice.SectionDefinitions
	for _, nl := range sections {
		secs = append(secs, lattice.SectionDefinition{Name: nl.name, Members: nl.names})
	}

	paths, err := namedLists(s.db, `
		SELECT name, sections_json FROM snapshot_layouts
		WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, layouts, err
	}
	for _, nl := range paths {
		layouts.Layouts = append(layouts.Layouts, lattice.LayoutDefinition{Name: nl.name, Sections: nl.names})
	}
	return secs, layouts, nil
}

type namedList struct {
	name  string
	names []string
}

func namedLists(db *sql.DB, query, id string) ([]namedList, error) {
	rows, err := db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []namedList
	for rows.Next() {
		var nl namedList
		var data string
		if err := rows.Scan(&nl.name, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &nl.names); err != nil {
			return nil, fmt.Errorf("decode %s: %w", nl.name, err)
		}
		out = append(out, nl)
	}
	return out, rows.Err()
}

// Load rebuilds the model stored under id. opts are applied after the stored
// definitions.
func (s *Store) Load(id string, opts ...lattice.Option) (*lattice.Model, error) {
	s.mu.RLock()
	sections, layouts, err := s.definitions(id)
	var elems []*element.Element
	if err == nil {
		elems, err = s.elements(id)
	}
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	all := append([]lattice.Option{
		lattice.WithSections(sections),
		lattice.WithLayouts(layouts),
	}, opts...)
	return lattice.New(elems, all...)
}

// CountByType returns the number of elements of each hardware type in a
// snapshot.
func (s *Store) CountByType(id string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT hardware_type, COUNT(*) FROM snapshot_elements
		WHERE snapshot_id = ? GROUP BY hardware_type
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, rows.Err()
}
