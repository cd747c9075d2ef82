// Package file implements the default marker store: a single file
// containing exactly one line, the name of the last completed step.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aorozco-g/arch-setup/marker"
)

// Ensure Store implements marker.Store at compile time.
var _ marker.Store = (*Store)(nil)

// Store persists the marker as a one-line file. Writes go through a
// temp file + rename so a crash mid-write never leaves a torn marker.
type Store struct {
	path string
}

// New creates a file-backed marker store at path. The parent directory
// is created lazily on the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the marker file location.
func (s *Store) Path() string { return s.path }

// Load reads the marker. A missing file means no progress yet.
func (s *Store) Load(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("marker/file: read %s: %w", s.path, err)
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		// An empty file counts as no marker rather than a corrupt one.
		return "", false, nil
	}
	return name, true, nil
}

// Save atomically replaces the marker with name.
func (s *Store) Save(_ context.Context, name string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("marker/file: create state dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".marker-*")
	if err != nil {
		return fmt.Errorf("marker/file: create temp marker: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(name + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("marker/file: write temp marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("marker/file: close temp marker: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("marker/file: replace %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the marker file. A missing file is not an error.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("marker/file: remove %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *Store) Close() error { return nil }
