package runner

import (
	"time"

	"github.com/aorozco-g/arch-setup/id"
)

// State is the terminal state of a run.
type State string

const (
	// StateCompleted means every step ran (advisory failures included).
	StateCompleted State = "completed"
	// StateAborted means a fatal step failure terminated the run.
	StateAborted State = "aborted"
)

// StepFailure records one advisory step that failed during the run.
type StepFailure struct {
	Step string
	Err  error
}

// Result summarizes a single run.
type Result struct {
	RunID      id.ID
	State      State
	Executed   int
	Skipped    int
	Advisories []StepFailure
	Elapsed    time.Duration
}

// Success reports whether the run finished without a fatal failure.
// Advisory failures do not count against success.
func (r *Result) Success() bool { return r.State == StateCompleted }
