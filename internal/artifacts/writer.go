// Package artifacts writes run outputs as timestamped files under a
// results directory.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allocrun/allocrun/internal/frame"
)

// Writer drops run outputs into one directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteJSON marshals v into a timestamped JSON file and returns its path.
func (w *Writer) WriteJSON(name string, v any) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}

	path := w.stampedPath(name, "json")
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write file %s: %w", path, err)
	}
	return path, nil
}

// WriteFrameCSV writes the frame into a timestamped CSV file and returns
// its path.
func (w *Writer) WriteFrameCSV(name string, f *frame.Frame) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}

	path := w.stampedPath(name, "csv")
	if err := f.WriteCSV(path); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Writer) stampedPath(name, ext string) string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.%s", timestamp, name, ext))
}

func (w *Writer) ensureDir() error {
	return os.MkdirAll(w.dir, 0755)
}
