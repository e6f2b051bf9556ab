package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the session file format.
const StateVersion = 1

// SessionState is the resumable state of an interactive session.
type SessionState struct {
	// Version is the session file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Machine is the machine directory the session loaded, if any.
	Machine string `json:"machine,omitempty"`

	// Database and Snapshot identify a stored snapshot the session loaded.
	Database string `json:"database,omitempty"`
	Snapshot string `json:"snapshot,omitempty"`

	// Path is the beam path selected in the session.
	Path string `json:"path,omitempty"`

	// Cwd is the inspect path the session was at.
	Cwd string `json:"cwd,omitempty"`
}

// SessionStore manages persistence of session state to a JSON file.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore creates a new session store.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is the session file below the user's config directory.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "nala", "session.json")
}

// Save persists the session state to disk.
func (s *SessionStore) Save(state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the session state from disk.
// Returns nil, nil if the file doesn't exist.
func (s *SessionStore) Load() (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the session file.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
