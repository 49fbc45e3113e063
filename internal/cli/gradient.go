package cli

import (
	"log/slog"

	"github.com/happyhackingspace/maxent"
	"github.com/happyhackingspace/maxent/sparse"
	"github.com/spf13/cobra"
)

type gradientOutput struct {
	Observations  int                          `json:"observations"`
	LogLikelihood float64                      `json:"log_likelihood"`
	Gradient      sparse.Table[string, string] `json:"gradient"`
}

func (c *CLI) newGradientCommand() *cobra.Command {
	var flags dataFlags
	var output string

	cmd := &cobra.Command{
		Use:   "gradient <modelfile>",
		Short: "Compute the log-likelihood and its gradient (expected - empirical counts)",
		Args:  cobra.ExactArgs(1),
		Example: `  maxent gradient model.json --data data.jsonl
  maxent gradient model.json --data data.jsonl -o grad.json -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.loadInputs(args[0])
			if err != nil {
				return err
			}
			dists, err := c.score(cmd.Context(), in)
			if err != nil {
				return err
			}

			expected := make(sparse.Table[string, string])
			if err := maxent.AccumulateExpectedCountsParallel(cmd.Context(), in.data, in.labels, dists, expected, c.batchConfig()); err != nil {
				return err
			}
			empirical, err := maxent.EmpiricalCounts(in.data, in.labels)
			if err != nil {
				return err
			}
			ll, err := maxent.LogLikelihood(in.data, dists)
			if err != nil {
				return err
			}
			slog.Info("Computed gradient", "log_likelihood", ll)

			return writeJSON(cmd.OutOrStdout(), output, gradientOutput{
				Observations:  len(in.data),
				LogLikelihood: ll,
				Gradient:      maxent.Gradient(expected, empirical),
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write JSON to this file instead of stdout")
	return cmd
}
