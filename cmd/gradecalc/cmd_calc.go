package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semih007/gradecalc/internal/scoring"
)

func newCalcCommand(c *cli) *cobra.Command {
	var midterm, final, threshold string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate a midterm and final score",
		Long: `Evaluate a midterm and final score and record the result in the history.

--threshold takes one of the presets or any custom value in [0,100]. Without
it the saved default threshold is used.`,
		Example: `  gradecalc calc --midterm 70 --final 60
  gradecalc calc --midterm 45,5 --final 38 --threshold 35`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := c.service.Records.InitialSelection(cmd.Context())
			if cmd.Flags().Changed("threshold") {
				selection = scoring.SelectionFor(threshold, c.service.Presets())
			}

			result, err := c.service.Calculate(cmd.Context(), midterm, final, selection)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Average:   %.2f\n", result.Average)
			fmt.Fprintf(out, "Threshold: %s\n", selection.Raw())
			fmt.Fprintf(out, "Status:    %s\n", result.StatusLabel)
			if warning := c.service.ThresholdWarning(result, selection); warning != "" {
				fmt.Fprintln(out, warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&midterm, "midterm", "", "Midterm score (0-100)")
	cmd.Flags().StringVar(&final, "final", "", "Final exam score (0-100)")
	cmd.Flags().StringVar(&threshold, "threshold", "", "Final exam threshold (0-100)")

	return cmd
}
