package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const defaultMaxSeen = 800

// State tracks which post IDs have already been surfaced, in insertion
// order, plus the timestamp of the last completed run.
type State struct {
	ids       []string
	member    map[string]bool
	LastRunAt string
}

// NewState returns an empty state.
func NewState() *State {
	return &State{member: make(map[string]bool)}
}

// Has reports whether id was already surfaced.
func (s *State) Has(id string) bool {
	return s.member[id]
}

// Add records an ID. Empty IDs and duplicates are ignored; first-insertion
// order is preserved.
func (s *State) Add(id string) {
	if id == "" || s.member[id] {
		return
	}
	s.member[id] = true
	s.ids = append(s.ids, id)
}

// AddAll records every ID in order.
func (s *State) AddAll(ids []string) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Len returns the number of tracked IDs.
func (s *State) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the tracked IDs in insertion order.
func (s *State) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// truncate drops the oldest insertions until at most max remain.
func (s *State) truncate(max int) {
	if max <= 0 || len(s.ids) <= max {
		return
	}
	for _, id := range s.ids[:len(s.ids)-max] {
		delete(s.member, id)
	}
	s.ids = s.ids[len(s.ids)-max:]
}

// stateFile is the on-disk JSON shape.
type stateFile struct {
	SeenIDs   []string `json:"seen_ids"`
	LastRunAt string   `json:"last_run_at,omitempty"`
}

// Store loads and saves State at a fixed path.
type Store struct {
	path    string
	maxSeen int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxSeen bounds how many seen IDs are kept on save.
func WithMaxSeen(n int) Option {
	return func(s *Store) {
		s.maxSeen = n
	}
}

// NewStore creates a state store persisting to path.
func NewStore(path string, opts ...Option) *Store {
	st := &Store{
		path:    path,
		maxSeen: defaultMaxSeen,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Load reads the state file. A missing file yields an empty state and no
// error. An unreadable or corrupt file yields an empty, usable state plus
// the error, so callers can log it and continue with history reset.
func (s *Store) Load() (*State, error) {
	st := NewState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, fmt.Errorf("read state file: %w", err)
	}

	var f stateFile
	if err := json.Unmarshal(data, &f); err != nil {
		return st, fmt.Errorf("parse state file: %w", err)
	}

	st.AddAll(f.SeenIDs)
	st.LastRunAt = f.LastRunAt
	return st, nil
}

// Save truncates the state to the configured cap and writes it back as
// indented JSON, creating parent directories as needed.
func (s *Store) Save(st *State) error {
	st.truncate(s.maxSeen)

	f := stateFile{SeenIDs: st.IDs(), LastRunAt: st.LastRunAt}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
