package maxent

import (
	"fmt"
	"math"

	"github.com/happyhackingspace/maxent/sparse"
)

// EmpiricalCounts sums each observation's features under its gold label.
// Every label of labels gets a row, even if no observation carries it. A
// nil feature vector adds nothing.
func EmpiricalCounts[L, K comparable](dataset Dataset[L, K], labels sparse.LabelSet[L]) (sparse.Table[L, K], error) {
	if labels.Len() == 0 {
		return nil, fmt.Errorf("maxent: %w: empty label set", ErrInvalidInput)
	}
	counts := make(sparse.Table[L, K], labels.Len())
	for _, label := range labels.All() {
		counts.Ensure(label)
	}
	for i, obs := range dataset {
		if !labels.Contains(obs.Label) {
			return nil, fmt.Errorf("maxent: %w: observation %d has unknown label %v", ErrInvalidInput, i, obs.Label)
		}
		if err := obs.Features.Validate(); err != nil {
			return nil, fmt.Errorf("maxent: %w: observation %d: %v", ErrInvalidInput, i, err)
		}
		counts[obs.Label].AddScaled(obs.Features, 1)
	}
	return counts, nil
}

// Gradient returns expected - empirical, the gradient of the negative
// conditional log-likelihood with respect to the weights.
func Gradient[L, K comparable](expected, empirical sparse.Table[L, K]) sparse.Table[L, K] {
	return expected.Sub(empirical)
}

// LogLikelihood returns the conditional log-likelihood of the gold labels,
// sum_i distributions[i][dataset[i].Label].
func LogLikelihood[L, K comparable](dataset Dataset[L, K], distributions []sparse.Counter[L]) (float64, error) {
	if len(distributions) != len(dataset) {
		return 0, fmt.Errorf("maxent: %w: %d distributions for %d observations", ErrLengthMismatch, len(distributions), len(dataset))
	}
	var ll float64
	for i, obs := range dataset {
		logProb, ok := distributions[i][obs.Label]
		if !ok {
			return 0, fmt.Errorf("maxent: %w: observation %d lacks its gold label %v", ErrMissingLabelProbability, i, obs.Label)
		}
		if math.IsNaN(logProb) || logProb > maxLogProb {
			return 0, fmt.Errorf("maxent: %w: observation %d has log-probability %v", ErrInvalidInput, i, logProb)
		}
		ll += logProb
	}
	return ll, nil
}
