package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// scoreLine is the per-observation output of the score command.
type scoreLine struct {
	Index     int                `json:"index"`
	Gold      string             `json:"gold"`
	Predicted string             `json:"predicted"`
	Scores    map[string]float64 `json:"scores"`
}

func (c *CLI) newScoreCommand() *cobra.Command {
	var flags dataFlags
	var proba bool

	cmd := &cobra.Command{
		Use:   "score <modelfile>",
		Short: "Print the label distribution of every observation",
		Args:  cobra.ExactArgs(1),
		Example: `  maxent score model.json --data data.jsonl
  maxent score model.json --data data.jsonl --proba
  maxent --workers 8 score model.json --data data.jsonl -s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.loadInputs(args[0])
			if err != nil {
				return err
			}
			dists, err := c.score(cmd.Context(), in)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for i, dist := range dists {
				best, _, _ := dist.ArgMaxIn(in.labels)
				scores := dist
				if proba {
					scores = dist.Probabilities()
				}
				line := scoreLine{
					Index:     i,
					Gold:      in.data[i].Label,
					Predicted: best,
					Scores:    scores,
				}
				if err := enc.Encode(line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&proba, "proba", false, "Print probabilities instead of log-probabilities")
	return cmd
}
