// Package report provides a hook that collects per-step outcomes and
// renders the end-of-run summary.
package report

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aorozco-g/arch-setup/hook"
	"github.com/aorozco-g/arch-setup/id"
	"github.com/aorozco-g/arch-setup/step"
)

// Outcome classifies how a step ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Line is one step's entry in the summary.
type Line struct {
	Step        string
	Criticality step.Criticality
	Outcome     Outcome
	Elapsed     time.Duration
	Error       string
}

// Ensure Reporter implements the events it subscribes to.
var (
	_ hook.Hook          = (*Reporter)(nil)
	_ hook.RunStarted    = (*Reporter)(nil)
	_ hook.StepSkipped   = (*Reporter)(nil)
	_ hook.StepCompleted = (*Reporter)(nil)
	_ hook.StepFailed    = (*Reporter)(nil)
)

// Reporter accumulates step outcomes during a run. Safe for concurrent
// use, although the runner only ever calls it sequentially.
type Reporter struct {
	mu           sync.Mutex
	runID        id.ID
	resumedAfter string
	lines        []Line
}

// New creates an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Name implements hook.Hook.
func (r *Reporter) Name() string { return "report" }

// OnRunStarted records the run identity and resume point.
func (r *Reporter) OnRunStarted(_ context.Context, runID id.ID, resumedAfter string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runID = runID
	r.resumedAfter = resumedAfter
	return nil
}

// OnStepSkipped records a skip line.
func (r *Reporter) OnStepSkipped(_ context.Context, _ id.ID, st step.Step) error {
	r.add(Line{Step: st.Name, Criticality: st.Criticality, Outcome: OutcomeSkipped})
	return nil
}

// OnStepCompleted records a success line.
func (r *Reporter) OnStepCompleted(_ context.Context, _ id.ID, st step.Step, elapsed time.Duration) error {
	r.add(Line{Step: st.Name, Criticality: st.Criticality, Outcome: OutcomeOK, Elapsed: elapsed})
	return nil
}

// OnStepFailed records a failure line.
func (r *Reporter) OnStepFailed(_ context.Context, _ id.ID, st step.Step, err error) error {
	r.add(Line{Step: st.Name, Criticality: st.Criticality, Outcome: OutcomeFailed, Error: err.Error()})
	return nil
}

func (r *Reporter) add(l Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, l)
}

// Lines returns the collected lines in event order.
func (r *Reporter) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Render writes a human-readable summary of the run.
func (r *Reporter) Render(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(w, "run %s\n", r.runID)
	if r.resumedAfter != "" {
		fmt.Fprintf(w, "resumed after %q\n", r.resumedAfter)
	}

	var ok, failed, skipped int
	for _, l := range r.lines {
		switch l.Outcome {
		case OutcomeOK:
			ok++
			fmt.Fprintf(w, "  ok      %-24s %s\n", l.Step, l.Elapsed.Round(time.Millisecond))
		case OutcomeFailed:
			failed++
			fmt.Fprintf(w, "  FAILED  %-24s (%s) %s\n", l.Step, l.Criticality, l.Error)
		case OutcomeSkipped:
			skipped++
			fmt.Fprintf(w, "  skip    %s\n", l.Step)
		}
	}

	fmt.Fprintf(w, "%d ok, %d failed, %d skipped\n", ok, failed, skipped)
	return nil
}
