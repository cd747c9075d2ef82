// Package runner implements the checkpointed step runner: it executes
// a fixed sequence in order, persists the progress marker after every
// completed step, and resumes immediately after the marker on the next
// invocation.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	setup "github.com/aorozco-g/arch-setup"
	"github.com/aorozco-g/arch-setup/id"
	"github.com/aorozco-g/arch-setup/marker"
	"github.com/aorozco-g/arch-setup/middleware"
	"github.com/aorozco-g/arch-setup/step"
)

// Emitter receives run and step lifecycle events. This interface is
// satisfied by hook.Registry; the runner only depends on the shape.
type Emitter interface {
	EmitRunStarted(ctx context.Context, runID id.ID, resumedAfter string, total int)
	EmitStepSkipped(ctx context.Context, runID id.ID, st step.Step)
	EmitStepStarted(ctx context.Context, runID id.ID, st step.Step)
	EmitStepCompleted(ctx context.Context, runID id.ID, st step.Step, elapsed time.Duration)
	EmitStepFailed(ctx context.Context, runID id.ID, st step.Step, err error)
	EmitRunCompleted(ctx context.Context, runID id.ID, elapsed time.Duration)
	EmitRunAborted(ctx context.Context, runID id.ID, st step.Step, err error)
}

// noopEmitter is the default when no emitter is configured.
type noopEmitter struct{}

func (noopEmitter) EmitRunStarted(context.Context, id.ID, string, int)                 {}
func (noopEmitter) EmitStepSkipped(context.Context, id.ID, step.Step)                  {}
func (noopEmitter) EmitStepStarted(context.Context, id.ID, step.Step)                  {}
func (noopEmitter) EmitStepCompleted(context.Context, id.ID, step.Step, time.Duration) {}
func (noopEmitter) EmitStepFailed(context.Context, id.ID, step.Step, error)            {}
func (noopEmitter) EmitRunCompleted(context.Context, id.ID, time.Duration)             {}
func (noopEmitter) EmitRunAborted(context.Context, id.ID, step.Step, error)            {}

// Runner executes a step sequence with resume-from-marker semantics.
// It is strictly sequential and not safe for concurrent use; the whole
// program is single-threaded by design.
type Runner struct {
	seq     *step.Sequence
	store   marker.Store
	emitter Emitter
	logger  *slog.Logger
	mw      middleware.Middleware

	// resume is the index of the first step to execute. Zero ("run
	// everything") until a marker is loaded.
	resume       int
	resumedAfter string
	loaded       bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the structured logger for the runner.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithEmitter sets the lifecycle event emitter.
func WithEmitter(e Emitter) Option {
	return func(r *Runner) { r.emitter = e }
}

// WithMiddleware wraps every step action with the given middleware,
// outermost first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(r *Runner) { r.mw = middleware.Chain(mws...) }
}

// New creates a runner over seq with the given marker store.
func New(seq *step.Sequence, store marker.Store, opts ...Option) (*Runner, error) {
	if store == nil {
		return nil, setup.ErrNoMarkerStore
	}

	r := &Runner{
		seq:     seq,
		store:   store,
		emitter: noopEmitter{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ensureResume loads the marker once and fixes the resume point: the
// position after the marker step. The marker step itself is considered
// already done and is not re-executed.
func (r *Runner) ensureResume(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	name, ok, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load marker: %w", err)
	}
	if ok {
		pos, found := r.seq.Position(name)
		if !found {
			return fmt.Errorf("marker %q: %w", name, setup.ErrUnknownMarker)
		}
		r.resume = pos + 1
		r.resumedAfter = name
	}
	r.loaded = true
	return nil
}

// ShouldExecute reports whether the named step is at or after the
// resume point. Steps at or before the marker return false; unknown
// names return false. With no marker present, every step returns true.
func (r *Runner) ShouldExecute(ctx context.Context, name string) (bool, error) {
	if err := r.ensureResume(ctx); err != nil {
		return false, err
	}
	pos, ok := r.seq.Position(name)
	if !ok {
		return false, nil
	}
	return pos >= r.resume, nil
}

// Run executes the sequence, honoring the resume point.
//
// A fatal step failure aborts the run immediately; the marker is left
// at the previous step so the failing step retries on the next
// invocation. An advisory step failure is logged, STILL advances the
// marker (a rerun will not retry it — deliberate, see DESIGN.md), and
// the run continues. After the final step the marker is cleared so a
// future run starts from the beginning.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.ensureResume(ctx); err != nil {
		return nil, err
	}

	runID := id.NewRunID()
	result := &Result{RunID: runID, State: StateAborted}
	start := time.Now()

	r.logger.Info("run started",
		slog.String("run_id", runID.String()),
		slog.Int("steps", r.seq.Len()),
		slog.String("resumed_after", r.resumedAfter),
	)
	r.emitter.EmitRunStarted(ctx, runID, r.resumedAfter, r.seq.Len())

	for i, st := range r.seq.Steps() {
		if err := ctx.Err(); err != nil {
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("run cancelled before step %q: %w", st.Name, err)
		}

		if i < r.resume {
			r.logger.Info("skipping completed step", slog.String("step", st.Name))
			r.emitter.EmitStepSkipped(ctx, runID, st)
			result.Skipped++
			continue
		}

		r.emitter.EmitStepStarted(ctx, runID, st)

		stepStart := time.Now()
		err := r.execute(ctx, st)
		elapsed := time.Since(stepStart)

		if err == nil {
			r.emitter.EmitStepCompleted(ctx, runID, st, elapsed)
			if saveErr := r.store.Save(ctx, st.Name); saveErr != nil {
				result.Elapsed = time.Since(start)
				return result, fmt.Errorf("save marker %q: %w", st.Name, saveErr)
			}
			result.Executed++
			continue
		}

		r.emitter.EmitStepFailed(ctx, runID, st, err)

		if st.Criticality == step.Advisory {
			// Attempted-but-failed advisory steps count as completed
			// for resume purposes: the marker advances past them.
			result.Advisories = append(result.Advisories, StepFailure{Step: st.Name, Err: err})
			if saveErr := r.store.Save(ctx, st.Name); saveErr != nil {
				result.Elapsed = time.Since(start)
				return result, fmt.Errorf("save marker %q: %w", st.Name, saveErr)
			}
			result.Executed++
			continue
		}

		// Fatal: abort without saving, so the marker still names the
		// previous step and the next invocation retries this one.
		result.Elapsed = time.Since(start)
		runErr := fmt.Errorf("%w: step %q: %w", setup.ErrRunAborted, st.Name, err)
		r.logger.Error("run aborted",
			slog.String("run_id", runID.String()),
			slog.String("step", st.Name),
			slog.String("error", err.Error()),
		)
		r.emitter.EmitRunAborted(ctx, runID, st, err)
		return result, runErr
	}

	if err := r.store.Clear(ctx); err != nil {
		result.Elapsed = time.Since(start)
		return result, fmt.Errorf("clear marker: %w", err)
	}

	result.State = StateCompleted
	result.Elapsed = time.Since(start)

	r.logger.Info("run completed",
		slog.String("run_id", runID.String()),
		slog.Int("executed", result.Executed),
		slog.Int("skipped", result.Skipped),
		slog.Int("advisory_failures", len(result.Advisories)),
		slog.Duration("elapsed", result.Elapsed),
	)
	r.emitter.EmitRunCompleted(ctx, runID, result.Elapsed)

	return result, nil
}

// execute runs one step action through the middleware chain.
func (r *Runner) execute(ctx context.Context, st step.Step) error {
	if r.mw == nil {
		return st.Action(ctx)
	}
	return r.mw(ctx, st, middleware.Handler(st.Action))
}
