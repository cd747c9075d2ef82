// Package sqlite implements a SQLite-backed marker store that also
// keeps a per-attempt audit history. Useful when you want to see what
// every previous run did, not just where it stopped.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aorozco-g/arch-setup/marker"
	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
)

// Ensure Store implements both contracts at compile time.
var (
	_ marker.Store     = (*Store)(nil)
	_ marker.Historian = (*Store)(nil)
)

// Store persists the marker and the attempt history in a SQLite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New opens (or creates) the SQLite database at path and ensures the
// schema exists.
func New(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("marker/sqlite: open %s: %w", path, err)
	}

	s := &Store{
		db:     db,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS progress_marker (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			step       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)`,
		`CREATE TABLE IF NOT EXISTS step_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			step       TEXT NOT NULL,
			outcome    TEXT NOT NULL,
			error      TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			at         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_step_history_run
			ON step_history (run_id)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("marker/sqlite: migrate: %w", err)
		}
	}
	return nil
}

// Load returns the marker row, if present.
func (s *Store) Load(ctx context.Context) (string, bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT step FROM progress_marker WHERE id = 1`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("marker/sqlite: load marker: %w", err)
	}
	return name, true, nil
}

// Save upserts the single marker row.
func (s *Store) Save(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress_marker (id, step) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET
			step = excluded.step,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		name)
	if err != nil {
		return fmt.Errorf("marker/sqlite: save marker %q: %w", name, err)
	}
	return nil
}

// Clear deletes the marker row. Deleting an absent row is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM progress_marker WHERE id = 1`); err != nil {
		return fmt.Errorf("marker/sqlite: clear marker: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// RecordAttempt appends one step attempt to the audit history.
func (s *Store) RecordAttempt(ctx context.Context, a marker.Attempt) error {
	at := a.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO step_history (run_id, step, outcome, error, elapsed_ms, at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.RunID, a.Step, a.Outcome, a.Error, a.Elapsed.Milliseconds(),
		at.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("marker/sqlite: record attempt %q: %w", a.Step, err)
	}
	return nil
}

// ListAttempts returns all attempts for runID in insertion order.
func (s *Store) ListAttempts(ctx context.Context, runID string) ([]marker.Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, step, outcome, error, elapsed_ms, at
		FROM step_history WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("marker/sqlite: list attempts: %w", err)
	}
	defer rows.Close()

	var out []marker.Attempt
	for rows.Next() {
		var a marker.Attempt
		var elapsedMS int64
		var at string
		if err := rows.Scan(&a.RunID, &a.Step, &a.Outcome, &a.Error, &elapsedMS, &at); err != nil {
			return nil, fmt.Errorf("marker/sqlite: scan attempt: %w", err)
		}
		a.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if parsed, parseErr := time.Parse(time.RFC3339Nano, at); parseErr == nil {
			a.At = parsed
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marker/sqlite: list attempts: %w", err)
	}
	return out, nil
}
