package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"moltbook-digest/moltbook"
)

// SnapshotCounts summarizes fetch and selection sizes for a snapshot run.
type SnapshotCounts struct {
	Hot      int `json:"hot"`
	New      int `json:"new"`
	Unique   int `json:"unique"`
	Selected int `json:"selected"`
}

// Snapshot is the candidates document consumed by downstream tooling: the
// selected posts plus provenance counts and a generation timestamp.
type Snapshot struct {
	GeneratedAt string          `json:"generated_at"`
	Counts      SnapshotCounts  `json:"counts"`
	Posts       []moltbook.Post `json:"posts"`
}

// WriteSnapshot writes a snapshot as indented JSON, creating parent
// directories as needed. Returns the path written.
func WriteSnapshot(path string, snap Snapshot) (string, error) {
	if snap.Posts == nil {
		snap.Posts = []moltbook.Post{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
