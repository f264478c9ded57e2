package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"moltbook-digest/moltbook"
)

var testNow = time.Date(2026, 8, 25, 14, 5, 0, 0, time.UTC)

func TestAppendCreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.Append(testNow, "# Daily Report\n", "## Section one\n")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	want := filepath.Join(dir, "202608", "08-25.md")
	if path != want {
		t.Errorf("Path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if got := string(data); got != "# Daily Report\n\n## Section one\n" {
		t.Errorf("content = %q", got)
	}
}

func TestAppendWritesHeaderOnlyOnce(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if _, err := w.Append(testNow, "# Daily Report\n", "## First\n"); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	path, err := w.Append(testNow, "# Daily Report\n", "## Second\n")
	if err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	content := string(data)

	if got := strings.Count(content, "# Daily Report"); got != 1 {
		t.Errorf("header appears %d times, want 1", got)
	}
	first := strings.Index(content, "## First")
	second := strings.Index(content, "## Second")
	if first == -1 || second == -1 {
		t.Fatalf("missing sections in %q", content)
	}
	if first > second {
		t.Errorf("sections out of order in %q", content)
	}
}

func TestAppendPreservesExistingContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path := w.Path(testNow)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("hand-written notes\n"), 0o644); err != nil {
		t.Fatalf("seeding report: %v", err)
	}

	if _, err := w.Append(testNow, "# Header\n", "## Section\n"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "hand-written notes\n") {
		t.Errorf("existing content lost: %q", content)
	}
	if strings.Contains(content, "# Header") {
		t.Errorf("header added to pre-existing file: %q", content)
	}
	if !strings.Contains(content, "## Section") {
		t.Errorf("section not appended: %q", content)
	}
}

func TestPathBucketsByMonth(t *testing.T) {
	w := NewWriter("reports")

	cases := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC), filepath.Join("reports", "202608", "08-25.md")},
		{time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), filepath.Join("reports", "202601", "01-02.md")},
		{time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), filepath.Join("reports", "202512", "12-31.md")},
	}
	for _, tc := range cases {
		if got := w.Path(tc.now); got != tc.want {
			t.Errorf("Path(%v) = %q, want %q", tc.now, got, tc.want)
		}
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "candidates.json")

	snap := Snapshot{
		GeneratedAt: "2026-08-25T14:05:00Z",
		Counts:      SnapshotCounts{Hot: 200, New: 400, Unique: 512, Selected: 30},
		Posts: []moltbook.Post{
			{ID: "p1", Title: "First", URL: "https://example.com/a"},
			{ID: "p2", Title: "Second"},
		},
	}

	got, err := WriteSnapshot(path, snap)
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if got != path {
		t.Errorf("returned path = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("snapshot missing trailing newline")
	}
	if !strings.Contains(string(data), "  \"generated_at\"") {
		t.Errorf("snapshot not indented with two spaces: %q", string(data))
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("parsing snapshot: %v", err)
	}
	if decoded.GeneratedAt != snap.GeneratedAt {
		t.Errorf("GeneratedAt = %q, want %q", decoded.GeneratedAt, snap.GeneratedAt)
	}
	if decoded.Counts != snap.Counts {
		t.Errorf("Counts = %+v, want %+v", decoded.Counts, snap.Counts)
	}
	if len(decoded.Posts) != 2 || decoded.Posts[0].ID != "p1" || decoded.Posts[1].ID != "p2" {
		t.Errorf("Posts = %+v", decoded.Posts)
	}
}

func TestWriteSnapshotEmptyPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")

	if _, err := WriteSnapshot(path, Snapshot{GeneratedAt: "2026-08-25T00:00:00Z"}); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if strings.Contains(string(data), "\"posts\": null") {
		t.Errorf("nil posts serialized as null: %q", string(data))
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("parsing snapshot: %v", err)
	}
	if decoded.Posts == nil {
		t.Error("posts decoded as nil, want empty array")
	}
}
