package cli

import (
	"github.com/happyhackingspace/maxent"
	"github.com/happyhackingspace/maxent/sparse"
	"github.com/spf13/cobra"
)

func (c *CLI) newExpectCommand() *cobra.Command {
	var flags dataFlags
	var output string

	cmd := &cobra.Command{
		Use:   "expect <modelfile>",
		Short: "Compute the model's expected feature counts over a dataset",
		Args:  cobra.ExactArgs(1),
		Example: `  maxent expect model.json --data data.jsonl
  maxent expect model.json --data data.jsonl --output expected.json`,
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
			return writeJSON(cmd.OutOrStdout(), output, expected)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write JSON to this file instead of stdout")
	return cmd
}
