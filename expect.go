package maxent

import (
	"context"
	"fmt"
	"math"

	"github.com/happyhackingspace/maxent/sparse"
)

// AccumulateExpectedCounts adds the model's expected feature counts over
// dataset to acc:
//
//	acc[l][f] += sum_i exp(distributions[i][l]) * dataset[i].Features[f]
//
// distributions[i] must be the log-probability counter for dataset[i], as
// returned by LogProbabilities. Existing entries of acc are incremented,
// so disjoint slices of a dataset can be accumulated one after another.
//
// A nil feature vector is the zero vector and contributes nothing.
//
// The call is atomic: contributions are summed into a private buffer and
// merged into acc only once every entry has been processed, so acc is
// unchanged when an error is returned.
func AccumulateExpectedCounts[L, K comparable](dataset Dataset[L, K], labels sparse.LabelSet[L], distributions []sparse.Counter[L], acc sparse.Table[L, K]) error {
	if err := checkAccumulateArgs(dataset, labels, distributions, acc); err != nil {
		return err
	}
	buf := make(sparse.Table[L, K], labels.Len())
	if err := accumulate(context.Background(), dataset, labels, distributions, 0, buf); err != nil {
		return err
	}
	acc.Merge(buf)
	return nil
}

func checkAccumulateArgs[L, K comparable](dataset Dataset[L, K], labels sparse.LabelSet[L], distributions []sparse.Counter[L], acc sparse.Table[L, K]) error {
	if acc == nil {
		return fmt.Errorf("maxent: %w: nil accumulator", ErrInvalidInput)
	}
	if labels.Len() == 0 {
		return fmt.Errorf("maxent: %w: empty label set", ErrInvalidInput)
	}
	if len(distributions) != len(dataset) {
		return fmt.Errorf("maxent: %w: %d distributions for %d observations", ErrLengthMismatch, len(distributions), len(dataset))
	}
	return nil
}

// maxLogProb is the largest log-probability accepted, leaving room for
// rounding in the log-normalizer.
const maxLogProb = 1e-9

// accumulate adds the contributions of dataset into buf. offset is the
// position of dataset[0] in the caller's full dataset and only affects
// error messages. ctx is checked before each observation.
func accumulate[L, K comparable](ctx context.Context, dataset Dataset[L, K], labels sparse.LabelSet[L], distributions []sparse.Counter[L], offset int, buf sparse.Table[L, K]) error {
	all := labels.All()

	// Per-label rows and per-entry probabilities are looked up once and
	// reused across the feature loop.
	rows := make([]sparse.Vector[K], len(all))
	for j, label := range all {
		rows[j] = buf.Ensure(label)
	}
	probs := make([]float64, len(all))

	for i, obs := range dataset {
		if err := ctx.Err(); err != nil {
			return err
		}
		dist := distributions[i]
		for j, label := range all {
			logProb, ok := dist[label]
			if !ok {
				return fmt.Errorf("maxent: %w: observation %d lacks label %v", ErrMissingLabelProbability, offset+i, label)
			}
			if math.IsNaN(logProb) || logProb > maxLogProb {
				return fmt.Errorf("maxent: %w: observation %d has log-probability %v for label %v", ErrInvalidInput, offset+i, logProb, label)
			}
			probs[j] = math.Exp(logProb)
		}

		for f, count := range obs.Features {
			if math.IsNaN(count) || math.IsInf(count, 0) {
				return fmt.Errorf("maxent: %w: observation %d feature %v has count %v", ErrInvalidInput, offset+i, f, count)
			}
			for j := range all {
				rows[j][f] += probs[j] * count
			}
		}
	}
	return nil
}
