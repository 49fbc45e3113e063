package sparse

import "fmt"

// Table maps a label to its sparse vector. It serves both as a weight
// table and as an expected-counts accumulator. An absent label reads as
// the zero vector.
type Table[L, K comparable] map[L]Vector[K]

// Row returns the vector for label l. The result is nil if l is absent,
// which still reads as the zero vector.
func (t Table[L, K]) Row(l L) Vector[K] {
	return t[l]
}

// Ensure returns the vector for label l, creating an empty one if needed.
func (t Table[L, K]) Ensure(l L) Vector[K] {
	row, ok := t[l]
	if !ok || row == nil {
		row = make(Vector[K])
		t[l] = row
	}
	return row
}

// Add increments the value at (l, k) by val.
func (t Table[L, K]) Add(l L, k K, val float64) {
	t.Ensure(l).Add(k, val)
}

// Merge adds every entry of other into t.
func (t Table[L, K]) Merge(other Table[L, K]) {
	for l, row := range other {
		t.Ensure(l).AddScaled(row, 1)
	}
}

// Sub returns a new table holding t - other.
func (t Table[L, K]) Sub(other Table[L, K]) Table[L, K] {
	out := t.Clone()
	for l, row := range other {
		out.Ensure(l).AddScaled(row, -1)
	}
	return out
}

// Clone returns a deep copy of t.
func (t Table[L, K]) Clone() Table[L, K] {
	c := make(Table[L, K], len(t))
	for l, row := range t {
		c[l] = row.Clone()
	}
	return c
}

// Validate checks every row for non-finite values.
func (t Table[L, K]) Validate() error {
	for l, row := range t {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("label %v: %w", l, err)
		}
	}
	return nil
}
