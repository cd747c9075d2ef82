// Package audit provides a hook that records every step attempt into a
// marker.Historian (typically the SQLite store), giving each run a
// durable audit trail beyond the single progress marker.
package audit

import (
	"context"
	"time"

	"github.com/aorozco-g/arch-setup/hook"
	"github.com/aorozco-g/arch-setup/id"
	"github.com/aorozco-g/arch-setup/marker"
	"github.com/aorozco-g/arch-setup/step"
)

// Ensure Recorder implements the events it subscribes to.
var (
	_ hook.Hook          = (*Recorder)(nil)
	_ hook.StepSkipped   = (*Recorder)(nil)
	_ hook.StepCompleted = (*Recorder)(nil)
	_ hook.StepFailed    = (*Recorder)(nil)
)

// Recorder forwards step outcomes to a Historian.
type Recorder struct {
	historian marker.Historian
}

// New creates a Recorder writing to h.
func New(h marker.Historian) *Recorder {
	return &Recorder{historian: h}
}

// Name implements hook.Hook.
func (r *Recorder) Name() string { return "audit" }

// OnStepSkipped records a skipped attempt.
func (r *Recorder) OnStepSkipped(ctx context.Context, runID id.ID, st step.Step) error {
	return r.historian.RecordAttempt(ctx, marker.Attempt{
		RunID:   runID.String(),
		Step:    st.Name,
		Outcome: "skipped",
		At:      time.Now().UTC(),
	})
}

// OnStepCompleted records a successful attempt.
func (r *Recorder) OnStepCompleted(ctx context.Context, runID id.ID, st step.Step, elapsed time.Duration) error {
	return r.historian.RecordAttempt(ctx, marker.Attempt{
		RunID:   runID.String(),
		Step:    st.Name,
		Outcome: "success",
		Elapsed: elapsed,
		At:      time.Now().UTC(),
	})
}

// OnStepFailed records a failed attempt.
func (r *Recorder) OnStepFailed(ctx context.Context, runID id.ID, st step.Step, err error) error {
	return r.historian.RecordAttempt(ctx, marker.Attempt{
		RunID:   runID.String(),
		Step:    st.Name,
		Outcome: "failure",
		Error:   err.Error(),
		At:      time.Now().UTC(),
	})
}
