// Package sparse provides the map-backed containers shared by the scoring
// and expectation code: sparse vectors, per-label tables of vectors,
// per-label counters and label sets.
//
// All containers treat an absent key as holding the value 0.
package sparse

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite is returned by Validate when a container holds NaN or ±Inf.
var ErrNonFinite = errors.New("non-finite value")

// Vector is a sparse float64 vector keyed by feature.
// Reading an absent key yields 0. A nil Vector is a valid zero vector.
type Vector[K comparable] map[K]float64

// Get returns the value at k, or 0 if k is absent.
func (v Vector[K]) Get(k K) float64 {
	return v[k]
}

// Add increments the value at k by val, creating the key if needed.
func (v Vector[K]) Add(k K, val float64) {
	v[k] += val
}

// AddScaled adds scale*other to v in place.
func (v Vector[K]) AddScaled(other Vector[K], scale float64) {
	for k, val := range other {
		v[k] += scale * val
	}
}

// Dot computes the dot product with other, iterating over the keys of v.
// Keys absent from other contribute 0.
func (v Vector[K]) Dot(other Vector[K]) float64 {
	if len(other) == 0 {
		return 0
	}
	var sum float64
	for k, val := range v {
		if w, ok := other[k]; ok {
			sum += val * w
		}
	}
	return sum
}

// Clone returns a copy of v. Cloning a nil vector returns an empty one.
func (v Vector[K]) Clone() Vector[K] {
	c := make(Vector[K], len(v))
	for k, val := range v {
		c[k] = val
	}
	return c
}

// Nnz returns the number of stored entries.
func (v Vector[K]) Nnz() int {
	return len(v)
}

// Validate reports an error wrapping ErrNonFinite if any value is NaN or ±Inf.
func (v Vector[K]) Validate() error {
	for k, val := range v {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %v at key %v", ErrNonFinite, val, k)
		}
	}
	return nil
}
