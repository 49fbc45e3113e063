package maxent

import (
	"fmt"
	"math"

	"github.com/happyhackingspace/maxent/sparse"
)

// LogProbabilities returns log P(label | features) for every label in
// labels. The raw score of a label is the dot product of features with the
// label's weight row; a label absent from weights scores 0. Scores are then
// log-normalized with a max-shifted log-sum-exp.
//
// Inputs are not modified. On error no counter is returned.
func LogProbabilities[L, K comparable](features sparse.Vector[K], weights sparse.Table[L, K], labels sparse.LabelSet[L]) (sparse.Counter[L], error) {
	if labels.Len() == 0 {
		return nil, fmt.Errorf("maxent: %w: empty label set", ErrInvalidInput)
	}
	if err := features.Validate(); err != nil {
		return nil, fmt.Errorf("maxent: %w: features: %v", ErrInvalidInput, err)
	}

	logProbs := make(sparse.Counter[L], labels.Len())
	for _, label := range labels.All() {
		row := weights.Row(label)
		var sum float64
		for f, count := range features {
			w, ok := row[f]
			if !ok {
				continue
			}
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("maxent: %w: weight %v for label %v feature %v", ErrInvalidInput, w, label, f)
			}
			sum += count * w
		}
		if math.IsInf(sum, 0) || math.IsNaN(sum) {
			return nil, fmt.Errorf("maxent: %w: score for label %v overflows", ErrInvalidInput, label)
		}
		logProbs[label] = sum
	}

	logProbs.LogNormalize()
	return logProbs, nil
}
