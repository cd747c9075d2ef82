// Package memory implements an in-memory marker store for unit tests
// and dry runs. It also records attempts so audit behavior can be
// tested without SQLite.
package memory

import (
	"context"
	"sync"

	"github.com/aorozco-g/arch-setup/marker"
)

// Ensure Store implements both contracts at compile time.
var (
	_ marker.Store     = (*Store)(nil)
	_ marker.Historian = (*Store)(nil)
)

// Store is a fully in-memory marker store. Safe for concurrent access.
type Store struct {
	mu       sync.RWMutex
	name     string
	present  bool
	attempts []marker.Attempt
}

// New returns a new empty Store.
func New() *Store {
	return &Store{}
}

// Load returns the current marker, if any.
func (m *Store) Load(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name, m.present, nil
}

// Save replaces the marker with name.
func (m *Store) Save(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	m.present = true
	return nil
}

// Clear removes the marker.
func (m *Store) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = ""
	m.present = false
	return nil
}

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }

// RecordAttempt appends an attempt to the in-memory history.
func (m *Store) RecordAttempt(_ context.Context, a marker.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

// ListAttempts returns the attempts recorded for runID in order.
func (m *Store) ListAttempts(_ context.Context, runID string) ([]marker.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]marker.Attempt, 0, len(m.attempts))
	for _, a := range m.attempts {
		if a.RunID == runID {
			out = append(out, a)
		}
	}
	return out, nil
}
