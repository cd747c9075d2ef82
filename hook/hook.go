// Package hook defines lifecycle hooks for setup runs. Hooks are
// notified of run and step events and can react to them — summary
// reporting, audit history, extra logging.
//
// Each lifecycle event is a separate interface so hooks opt in only to
// the events they care about.
package hook

import (
	"context"
	"time"

	"github.com/aorozco-g/arch-setup/id"
	"github.com/aorozco-g/arch-setup/step"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// RunStarted is called once when a run begins. resumedAfter is the
// loaded marker name, or empty when starting from the beginning.
type RunStarted interface {
	OnRunStarted(ctx context.Context, runID id.ID, resumedAfter string, total int) error
}

// StepSkipped is called for each step skipped because it is at or
// before the resume point.
type StepSkipped interface {
	OnStepSkipped(ctx context.Context, runID id.ID, st step.Step) error
}

// StepStarted is called just before a step action executes.
type StepStarted interface {
	OnStepStarted(ctx context.Context, runID id.ID, st step.Step) error
}

// StepCompleted is called after a step action succeeds.
type StepCompleted interface {
	OnStepCompleted(ctx context.Context, runID id.ID, st step.Step, elapsed time.Duration) error
}

// StepFailed is called when a step action fails, whether the step is
// fatal or advisory; inspect st.Criticality to tell which.
type StepFailed interface {
	OnStepFailed(ctx context.Context, runID id.ID, st step.Step, err error) error
}

// RunCompleted is called after the final step, once the marker has been
// cleared. Advisory failures do not prevent this event.
type RunCompleted interface {
	OnRunCompleted(ctx context.Context, runID id.ID, elapsed time.Duration) error
}

// RunAborted is called when a fatal step failure terminates the run.
type RunAborted interface {
	OnRunAborted(ctx context.Context, runID id.ID, st step.Step, err error) error
}
