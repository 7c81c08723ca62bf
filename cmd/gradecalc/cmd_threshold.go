package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semih007/gradecalc/internal/scoring"
)

func newThresholdCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Show or change the default final exam threshold",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the default threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := c.service.Records.LoadDefaultThreshold(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), scoring.FormatScore(v))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set VALUE",
		Short: "Save a new default threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := scoring.ValidateField(scoring.ThresholdField, args[0]); err != nil {
				return err
			}
			c.service.Records.SaveDefaultThreshold(cmd.Context(), args[0])
			v := c.service.Records.LoadDefaultThreshold(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Default threshold is now %s\n", scoring.FormatScore(v))
			return nil
		},
	})

	return cmd
}
