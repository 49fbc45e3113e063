package sparse

import (
	"errors"
	"fmt"
)

// ErrDuplicateLabel is returned when a label set is built from a list
// containing the same label twice.
var ErrDuplicateLabel = errors.New("duplicate label")

// LabelSet is a set of unique labels. Iteration follows insertion order so
// that work done per label is deterministic.
type LabelSet[L comparable] struct {
	labels []L
	index  map[L]int
}

// NewLabelSet builds a label set. It fails if a label appears twice.
func NewLabelSet[L comparable](labels ...L) (LabelSet[L], error) {
	s := LabelSet[L]{
		labels: make([]L, 0, len(labels)),
		index:  make(map[L]int, len(labels)),
	}
	for _, l := range labels {
		if _, ok := s.index[l]; ok {
			return LabelSet[L]{}, fmt.Errorf("%w: %v", ErrDuplicateLabel, l)
		}
		s.index[l] = len(s.labels)
		s.labels = append(s.labels, l)
	}
	return s, nil
}

// Len returns the number of labels.
func (s LabelSet[L]) Len() int {
	return len(s.labels)
}

// Contains reports whether l is in the set.
func (s LabelSet[L]) Contains(l L) bool {
	_, ok := s.index[l]
	return ok
}

// Index returns the position of l in iteration order, or -1 if absent.
func (s LabelSet[L]) Index(l L) int {
	if i, ok := s.index[l]; ok {
		return i
	}
	return -1
}

// Labels returns a copy of the labels in iteration order.
func (s LabelSet[L]) Labels() []L {
	out := make([]L, len(s.labels))
	copy(out, s.labels)
	return out
}

// All returns the labels without copying. Callers must not modify it.
func (s LabelSet[L]) All() []L {
	return s.labels
}
