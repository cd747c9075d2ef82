// Package marker defines the persistence contract for the progress
// marker — the single piece of cross-invocation state. The marker is
// the name of the last step considered complete; absence means no
// progress yet.
//
// # Available backends
//
//   - marker/file — one-line marker file at a fixed per-user location
//     (the default)
//   - marker/memory — in-memory store for testing and dry runs
//   - marker/sqlite — SQLite backend that additionally keeps a
//     per-attempt audit history
//
// If the step sequence changes between runs, resume behavior against an
// old marker is undefined; callers detect that case via the sequence
// lookup, not here.
package marker

import (
	"context"
	"time"
)

// Store persists the progress marker. Exactly one marker exists per
// store; concurrent program invocations are not a supported scenario,
// so no locking discipline is required of implementations.
type Store interface {
	// Load returns the last completed step name. ok is false when no
	// marker exists (fresh machine or completed previous run).
	Load(ctx context.Context) (name string, ok bool, err error)

	// Save records name as the last completed step, replacing any
	// previous marker.
	Save(ctx context.Context, name string) error

	// Clear removes the marker. Clearing an absent marker is not an
	// error.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Attempt is one recorded step attempt, for stores that keep history.
type Attempt struct {
	RunID   string
	Step    string
	Outcome string // "success", "failure", or "skipped"
	Error   string
	Elapsed time.Duration
	At      time.Time
}

// Historian is implemented by stores that keep an audit trail of step
// attempts alongside the marker.
type Historian interface {
	// RecordAttempt appends one attempt to the audit history.
	RecordAttempt(ctx context.Context, a Attempt) error

	// ListAttempts returns all attempts for a run in recorded order.
	ListAttempts(ctx context.Context, runID string) ([]Attempt, error)
}
