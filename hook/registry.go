package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/aorozco-g/arch-setup/id"
	"github.com/aorozco-g/arch-setup/step"
)

// Named entry types pair a hook implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type runStartedEntry struct {
	name string
	hook RunStarted
}

type stepSkippedEntry struct {
	name string
	hook StepSkipped
}

type stepStartedEntry struct {
	name string
	hook StepStarted
}

type stepCompletedEntry struct {
	name string
	hook StepCompleted
}

type stepFailedEntry struct {
	name string
	hook StepFailed
}

type runCompletedEntry struct {
	name string
	hook RunCompleted
}

type runAbortedEntry struct {
	name string
	hook RunAborted
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event. The registry
// satisfies the runner's Emitter interface.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	runStarted    []runStartedEntry
	stepSkipped   []stepSkippedEntry
	stepStarted   []stepStartedEntry
	stepCompleted []stepCompletedEntry
	stepFailed    []stepFailedEntry
	runCompleted  []runCompletedEntry
	runAborted    []runAbortedEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(RunStarted); ok {
		r.runStarted = append(r.runStarted, runStartedEntry{name, e})
	}
	if e, ok := h.(StepSkipped); ok {
		r.stepSkipped = append(r.stepSkipped, stepSkippedEntry{name, e})
	}
	if e, ok := h.(StepStarted); ok {
		r.stepStarted = append(r.stepStarted, stepStartedEntry{name, e})
	}
	if e, ok := h.(StepCompleted); ok {
		r.stepCompleted = append(r.stepCompleted, stepCompletedEntry{name, e})
	}
	if e, ok := h.(StepFailed); ok {
		r.stepFailed = append(r.stepFailed, stepFailedEntry{name, e})
	}
	if e, ok := h.(RunCompleted); ok {
		r.runCompleted = append(r.runCompleted, runCompletedEntry{name, e})
	}
	if e, ok := h.(RunAborted); ok {
		r.runAborted = append(r.runAborted, runAbortedEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitRunStarted notifies all hooks that implement RunStarted.
func (r *Registry) EmitRunStarted(ctx context.Context, runID id.ID, resumedAfter string, total int) {
	for _, e := range r.runStarted {
		if err := e.hook.OnRunStarted(ctx, runID, resumedAfter, total); err != nil {
			r.logHookError("OnRunStarted", e.name, err)
		}
	}
}

// EmitStepSkipped notifies all hooks that implement StepSkipped.
func (r *Registry) EmitStepSkipped(ctx context.Context, runID id.ID, st step.Step) {
	for _, e := range r.stepSkipped {
		if err := e.hook.OnStepSkipped(ctx, runID, st); err != nil {
			r.logHookError("OnStepSkipped", e.name, err)
		}
	}
}

// EmitStepStarted notifies all hooks that implement StepStarted.
func (r *Registry) EmitStepStarted(ctx context.Context, runID id.ID, st step.Step) {
	for _, e := range r.stepStarted {
		if err := e.hook.OnStepStarted(ctx, runID, st); err != nil {
			r.logHookError("OnStepStarted", e.name, err)
		}
	}
}

// EmitStepCompleted notifies all hooks that implement StepCompleted.
func (r *Registry) EmitStepCompleted(ctx context.Context, runID id.ID, st step.Step, elapsed time.Duration) {
	for _, e := range r.stepCompleted {
		if err := e.hook.OnStepCompleted(ctx, runID, st, elapsed); err != nil {
			r.logHookError("OnStepCompleted", e.name, err)
		}
	}
}

// EmitStepFailed notifies all hooks that implement StepFailed.
func (r *Registry) EmitStepFailed(ctx context.Context, runID id.ID, st step.Step, stepErr error) {
	for _, e := range r.stepFailed {
		if err := e.hook.OnStepFailed(ctx, runID, st, stepErr); err != nil {
			r.logHookError("OnStepFailed", e.name, err)
		}
	}
}

// EmitRunCompleted notifies all hooks that implement RunCompleted.
func (r *Registry) EmitRunCompleted(ctx context.Context, runID id.ID, elapsed time.Duration) {
	for _, e := range r.runCompleted {
		if err := e.hook.OnRunCompleted(ctx, runID, elapsed); err != nil {
			r.logHookError("OnRunCompleted", e.name, err)
		}
	}
}

// EmitRunAborted notifies all hooks that implement RunAborted.
func (r *Registry) EmitRunAborted(ctx context.Context, runID id.ID, st step.Step, runErr error) {
	for _, e := range r.runAborted {
		if err := e.hook.OnRunAborted(ctx, runID, st, runErr); err != nil {
			r.logHookError("OnRunAborted", e.name, err)
		}
	}
}

// logHookError logs a hook callback failure. Hook errors never affect
// the run itself.
func (r *Registry) logHookError(event, name string, err error) {
	r.logger.Warn("hook error",
		slog.String("event", event),
		slog.String("hook", name),
		slog.String("error", err.Error()),
	)
}
