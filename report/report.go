package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer appends digest sections to dated Markdown files under a base
// directory, one file per day bucketed by month: {dir}/YYYYMM/MM-DD.md.
type Writer struct {
	dir string
}

// NewWriter creates a digest file writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the report file path for a point in time, in that time's
// location.
func (w *Writer) Path(now time.Time) string {
	return filepath.Join(w.dir, now.Format("200601"), now.Format("01-02")+".md")
}

// Append ensures the dated report file exists with header, then appends the
// section. The header is written only when the file is created; existing
// content is never rewritten or truncated. Returns the file path.
func (w *Writer) Append(now time.Time, header, section string) (string, error) {
	path := w.Path(now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
			return "", fmt.Errorf("write report header: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("stat report file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + section); err != nil {
		return "", fmt.Errorf("append report section: %w", err)
	}
	return path, nil
}
