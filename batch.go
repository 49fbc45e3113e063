package maxent

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/happyhackingspace/maxent/sparse"
)

// BatchConfig controls the parallel batch drivers.
type BatchConfig struct {
	Workers  int    // number of concurrent workers; <= 0 means 1
	Progress func() // called once per scored observation, possibly concurrently
}

// DefaultBatchConfig returns a config with one worker per usable CPU.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Workers: runtime.GOMAXPROCS(0),
	}
}

func (c BatchConfig) workers(n int) int {
	w := c.Workers
	if w <= 0 {
		w = 1
	}
	if w > n {
		w = n
	}
	return w
}

// chunks splits [0, n) into at most k contiguous, nearly equal ranges.
func chunks(n, k int) [][2]int {
	if n <= 0 || k <= 0 {
		return nil
	}
	size := (n + k - 1) / k
	var out [][2]int
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// ScoreDataset runs LogProbabilities for every observation of dataset and
// returns the counters in dataset order. Observations are split into
// contiguous chunks scored concurrently; the first error stops the others.
func ScoreDataset[L, K comparable](ctx context.Context, dataset Dataset[L, K], weights sparse.Table[L, K], labels sparse.LabelSet[L], config BatchConfig) ([]sparse.Counter[L], error) {
	out := make([]sparse.Counter[L], len(dataset))
	if len(dataset) == 0 {
		return out, nil
	}
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range chunks(len(dataset), config.workers(len(dataset))) {
		g.Go(func() error {
			for i := r[0]; i < r[1]; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				logProbs, err := LogProbabilities(dataset[i].Features, weights, labels)
				if err != nil {
					return err
				}
				out[i] = logProbs
				if config.Progress != nil {
					config.Progress()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Scored dataset", "observations", len(dataset), "labels", labels.Len(), "duration", time.Since(start))
	return out, nil
}

// AccumulateExpectedCountsParallel is the concurrent form of
// AccumulateExpectedCounts. Each worker sums its chunk of the dataset into
// a private table; the partial tables are merged into acc only after every
// worker has succeeded, so acc is unchanged on error or cancellation.
func AccumulateExpectedCountsParallel[L, K comparable](ctx context.Context, dataset Dataset[L, K], labels sparse.LabelSet[L], distributions []sparse.Counter[L], acc sparse.Table[L, K], config BatchConfig) error {
	if err := checkAccumulateArgs(dataset, labels, distributions, acc); err != nil {
		return err
	}
	if len(dataset) == 0 {
		return AccumulateExpectedCounts(dataset, labels, distributions, acc)
	}
	start := time.Now()

	ranges := chunks(len(dataset), config.workers(len(dataset)))
	partials := make([]sparse.Table[L, K], len(ranges))

	g, ctx := errgroup.WithContext(ctx)
	for w, r := range ranges {
		g.Go(func() error {
			buf := make(sparse.Table[L, K], labels.Len())
			if err := accumulate(ctx, dataset[r[0]:r[1]], labels, distributions[r[0]:r[1]], r[0], buf); err != nil {
				return err
			}
			partials[w] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range partials {
		acc.Merge(p)
	}
	slog.Debug("Accumulated expected counts", "observations", len(dataset), "workers", len(ranges), "duration", time.Since(start))
	return nil
}
