package sparse

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Counter maps a label to a scalar, typically a score, a probability or a
// log-probability.
type Counter[L comparable] map[L]float64

// LogNormalize converts raw scores into log-probabilities in place:
// each value s becomes s - log(sum(exp(s'))). The log-sum-exp subtracts
// the maximum score before exponentiating so large scores neither overflow
// nor underflow. An empty counter is left unchanged.
func (c Counter[L]) LogNormalize() {
	if len(c) == 0 {
		return
	}
	scores := make([]float64, 0, len(c))
	for _, s := range c {
		scores = append(scores, s)
	}
	logZ := floats.LogSumExp(scores)
	for l, s := range c {
		c[l] = s - logZ
	}
}

// Normalize rescales non-negative values in place so they sum to 1.
// A counter summing to 0 is left unchanged.
func (c Counter[L]) Normalize() {
	total := c.Total()
	if total == 0 {
		return
	}
	for l, v := range c {
		c[l] = v / total
	}
}

// Total returns the sum of all values.
func (c Counter[L]) Total() float64 {
	vals := make([]float64, 0, len(c))
	for _, v := range c {
		vals = append(vals, v)
	}
	return floats.Sum(vals)
}

// Probabilities returns a new counter holding exp of every value, turning
// log-probabilities back into probabilities.
func (c Counter[L]) Probabilities() Counter[L] {
	out := make(Counter[L], len(c))
	for l, v := range c {
		out[l] = math.Exp(v)
	}
	return out
}

// ArgMax returns the label with the largest value. ok is false for an
// empty counter. Ties are broken arbitrarily.
func (c Counter[L]) ArgMax() (best L, val float64, ok bool) {
	val = math.Inf(-1)
	for l, v := range c {
		if !ok || v > val {
			best, val, ok = l, v, true
		}
	}
	return best, val, ok
}

// ArgMaxIn returns the label of labels with the largest value in c.
// Ties go to the label that comes first in labels, so the result does not
// depend on map order. Labels absent from c are skipped.
func (c Counter[L]) ArgMaxIn(labels LabelSet[L]) (best L, val float64, ok bool) {
	val = math.Inf(-1)
	for _, l := range labels.All() {
		v, present := c[l]
		if !present {
			continue
		}
		if !ok || v > val {
			best, val, ok = l, v, true
		}
	}
	return best, val, ok
}

// Clone returns a copy of c.
func (c Counter[L]) Clone() Counter[L] {
	out := make(Counter[L], len(c))
	for l, v := range c {
		out[l] = v
	}
	return out
}
