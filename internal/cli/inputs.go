package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/happyhackingspace/maxent"
	"github.com/happyhackingspace/maxent/internal/dataset"
	"github.com/happyhackingspace/maxent/internal/features"
	"github.com/happyhackingspace/maxent/sparse"
	"github.com/spf13/cobra"
)

// dataFlags holds the flags shared by every command that reads a dataset.
type dataFlags struct {
	dataPath       string
	ngramMin       int
	ngramMax       int
	analyzer       string
	binary         bool
	bias           bool
	dropDuplicates bool
	skipMalformed  bool
}

func (f *dataFlags) register(cmd *cobra.Command) {
	defaults := features.DefaultConfig()
	cmd.Flags().StringVar(&f.dataPath, "data", "data.jsonl", "Path to JSON-lines observation file")
	cmd.Flags().IntVar(&f.ngramMin, "ngram-min", defaults.NgramRange[0], "Smallest n-gram extracted from text")
	cmd.Flags().IntVar(&f.ngramMax, "ngram-max", defaults.NgramRange[1], "Largest n-gram extracted from text")
	cmd.Flags().StringVar(&f.analyzer, "analyzer", defaults.Analyzer, `Text analyzer: "word" or "char_wb"`)
	cmd.Flags().BoolVar(&f.binary, "binary", defaults.Binary, "Count each text feature at most once per observation")
	cmd.Flags().BoolVar(&f.bias, "bias", defaults.Bias, "Add a constant bias feature")
	cmd.Flags().BoolVar(&f.dropDuplicates, "drop-duplicates", false, "Skip observations identical to an earlier line")
	cmd.Flags().BoolVar(&f.skipMalformed, "skip-malformed", false, "Warn about and skip malformed lines instead of failing")
}

func (f *dataFlags) extractor() *features.Extractor {
	return features.NewExtractor(features.Config{
		NgramRange: [2]int{f.ngramMin, f.ngramMax},
		Analyzer:   f.analyzer,
		Binary:     f.binary,
		Lowercase:  true,
		Bias:       f.bias,
	})
}

// inputs bundles what the data commands operate on.
type inputs struct {
	model  *maxent.Model
	data   maxent.Dataset[string, string]
	labels sparse.LabelSet[string]
}

// loadInputs reads the model and the dataset. Labels come from the model,
// or from the dataset when the model lists none.
func (f *dataFlags) loadInputs(modelPath string) (*inputs, error) {
	model, err := maxent.LoadModel(modelPath)
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(f.dataPath, f.extractor())
	loader.Options.DropDuplicates = f.dropDuplicates
	loader.Options.SkipMalformed = f.skipMalformed
	data, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no observations found in %s", f.dataPath)
	}

	names := model.Labels
	if len(names) == 0 {
		names = dataset.Labels(data)
		slog.Debug("Model lists no labels, using dataset labels", "labels", names)
	}
	labels, err := sparse.NewLabelSet(names...)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded inputs", "model", modelPath, "data", f.dataPath, "observations", len(data), "labels", labels.Len())
	return &inputs{model: model, data: data, labels: labels}, nil
}

// batchConfig returns the batch settings chosen on the command line.
func (c *CLI) batchConfig() maxent.BatchConfig {
	config := maxent.DefaultBatchConfig()
	config.Workers = c.workers
	return config
}

// score computes the label distribution of every observation, showing a
// progress bar unless the CLI is silent.
func (c *CLI) score(ctx context.Context, in *inputs) ([]sparse.Counter[string], error) {
	config := c.batchConfig()

	var bar *pb.ProgressBar
	if !c.silent {
		bar = pb.StartNew(len(in.data))
		config.Progress = func() { bar.Increment() }
	}

	start := time.Now()
	dists, err := maxent.ScoreDataset(ctx, in.data, in.model.Weights, in.labels, config)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("Scoring completed", "workers", config.Workers, "duration", time.Since(start))
	return dists, nil
}

// writeJSON writes v as indented JSON to path, or to stdout if path is
// empty or "-".
func writeJSON(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	slog.Info("Output written", "path", path)
	return nil
}
