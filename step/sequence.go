package step

import (
	"fmt"

	setup "github.com/aorozco-g/arch-setup"
)

// Sequence is the ordered, fixed list of steps for a run. Build one
// with NewSequence; construction rejects duplicate names and missing
// actions so every listed step is guaranteed to be executable.
type Sequence struct {
	steps []Step
	index map[string]int
}

// NewSequence validates and freezes an ordered list of steps.
func NewSequence(steps ...Step) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, setup.ErrEmptySequence
	}

	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("step %d: %w", i, setup.ErrEmptyName)
		}
		if s.Action == nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, setup.ErrNoAction)
		}
		if _, exists := index[s.Name]; exists {
			return nil, fmt.Errorf("step %q: %w", s.Name, setup.ErrDuplicateStep)
		}
		index[s.Name] = i
	}

	return &Sequence{steps: steps, index: index}, nil
}

// Steps returns the steps in execution order. The returned slice must
// not be modified.
func (s *Sequence) Steps() []Step { return s.steps }

// Len returns the number of steps.
func (s *Sequence) Len() int { return len(s.steps) }

// Position returns the ordinal position of the named step.
// Returns false if the name is not in the sequence.
func (s *Sequence) Position(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns all step names in execution order.
func (s *Sequence) Names() []string {
	names := make([]string, len(s.steps))
	for i, st := range s.steps {
		names[i] = st.Name
	}
	return names
}
