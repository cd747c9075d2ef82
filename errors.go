package setup

import "errors"

var (
	// Sequence errors.
	ErrEmptySequence = errors.New("setup: sequence has no steps")
	ErrDuplicateStep = errors.New("setup: duplicate step name")
	ErrEmptyName     = errors.New("setup: step has no name")
	ErrNoAction      = errors.New("setup: step has no action")

	// Marker errors.
	ErrNoMarkerStore = errors.New("setup: no marker store configured")
	ErrUnknownMarker = errors.New("setup: marker names a step not in the sequence")

	// Run errors.
	ErrRunAborted = errors.New("setup: run aborted by fatal step failure")
)
