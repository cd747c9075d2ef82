// Package setup is the core of arch-setup, a resumable post-installation
// tool for a fresh Arch Linux machine. It runs a fixed, ordered sequence
// of named setup steps, persists a progress marker after each completed
// step, and on re-invocation resumes immediately after the last completed
// step.
//
// Each step carries a criticality: a fatal step aborts the entire run on
// failure (leaving the marker at the previous step so the failing step is
// retried next time), while an advisory step logs a warning, advances the
// marker anyway, and lets the run continue.
//
// # Layout
//
//   - step — step definitions and the ordered sequence builder
//   - marker — the progress-marker store interface and its backends
//     (marker/file, marker/memory, marker/sqlite)
//   - runner — the checkpointed step runner
//   - middleware — per-step logging, panic recovery, and opt-in timeouts
//   - hook — run/step lifecycle hooks (hook/report renders the summary)
//   - backoff — retry delay strategies used inside network-touching steps
//   - system — shell command execution
//   - prompt — interactive terminal input (with a scripted fake for tests)
//   - tasks — the actual Arch setup sequence
//
// # Usage
//
//	cfg := setup.DefaultConfig()
//	store := file.New(cfg.Marker())
//	seq, _ := tasks.Sequence(cfg, tasks.Deps{Exec: system.NewShell()})
//	r, _ := runner.New(seq, store, runner.WithLogger(logger))
//	result, err := r.Run(ctx)
//
// The runner itself is deliberately small: steps are opaque actions, the
// marker store is injected, and all interaction goes through the prompt
// port, so the core is fully testable without touching the host system.
package setup
