// Package maxent computes the two numeric primitives a conditional
// maximum-entropy (log-linear) classifier needs on every training
// iteration: per-label log-probabilities for one observation, and
// expected feature counts accumulated over a labeled dataset.
//
//	labels, _ := sparse.NewLabelSet("A", "B")
//	weights := sparse.Table[string, string]{"A": {"f1": 1.0}}
//	logp, _ := maxent.LogProbabilities(sparse.Vector[string]{"f1": 2.0}, weights, labels)
//	// logp ≈ {A: -0.1269, B: -2.1269}
//
//	expected := make(sparse.Table[string, string])
//	_ = maxent.AccumulateExpectedCounts(dataset, labels, dists, expected)
//
// Scoring is independent per observation and accumulation is additive,
// so ScoreDataset and AccumulateExpectedCountsParallel fan both out
// across goroutines.
package maxent

import (
	"errors"

	"github.com/happyhackingspace/maxent/sparse"
)

// Errors reported by the scoring and accumulation functions wrap one of
// these and can be matched with errors.Is. The batch drivers may also
// return the context's error.
var (
	// ErrInvalidInput reports a malformed argument.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLengthMismatch reports a dataset and distribution sequence of
	// different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrMissingLabelProbability reports a distribution that is not total
	// over the label set.
	ErrMissingLabelProbability = errors.New("missing label probability")
)

// Observation is a labeled sparse feature vector. The gold label is only
// used for empirical counts and the log-likelihood.
type Observation[L, K comparable] struct {
	Label    L
	Features sparse.Vector[K]
}

// Dataset is an ordered sequence of observations. Index i of a dataset
// lines up with index i of its distributions.
type Dataset[L, K comparable] []Observation[L, K]

