// Package step defines named setup steps and the ordered sequence the
// runner executes. A sequence is fixed at startup: every step has a
// unique name, a criticality, and a bound action, so there is no
// string-keyed dispatch at execution time.
package step

import (
	"context"
	"time"
)

// Criticality classifies how a step failure affects the run.
type Criticality int

const (
	// Fatal aborts the entire run on failure. The marker is left at
	// the previous step, so the failing step retries on the next run.
	Fatal Criticality = iota

	// Advisory logs a warning on failure and lets the run continue.
	// The marker still advances past the step.
	Advisory
)

// String returns the criticality name for logs.
func (c Criticality) String() string {
	if c == Advisory {
		return "advisory"
	}
	return "fatal"
}

// Action is the unit of work bound to a step. It takes no inputs beyond
// the ambient environment and reports success or failure.
type Action func(ctx context.Context) error

// Step is a named, ordered unit of setup work. Steps are immutable once
// built; construct them with New and the With* options.
type Step struct {
	// Name is the unique identifier persisted as the progress marker.
	Name string

	// Criticality decides whether a failure aborts the run.
	Criticality Criticality

	// Action performs the work. The runner treats it as a black box
	// returning success or failure.
	Action Action

	// Timeout, when non-zero, bounds the action via the timeout
	// middleware. The runner loop itself never enforces deadlines.
	Timeout time.Duration

	// Description is a short human-readable summary for logs and the
	// end-of-run report.
	Description string
}

// Option configures a Step at construction.
type Option func(*Step)

// WithTimeout bounds the step action with a deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Step) { s.Timeout = d }
}

// WithDescription sets the human-readable summary.
func WithDescription(desc string) Option {
	return func(s *Step) { s.Description = desc }
}

// New creates a step with the given name, criticality, and action.
func New(name string, c Criticality, action Action, opts ...Option) Step {
	s := Step{
		Name:        name,
		Criticality: c,
		Action:      action,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
