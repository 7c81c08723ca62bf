package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear past calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd, c)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List past calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd, c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all past calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.service.Records.ClearHistory(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	})

	return cmd
}

func listHistory(cmd *cobra.Command, c *cli) error {
	history := c.service.Records.LoadHistory(cmd.Context())
	if len(history) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No calculations yet")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tMIDTERM\tFINAL\tTHRESHOLD\tAVERAGE\tSTATUS")
	for _, e := range history {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			e.Timestamp, e.Midterm, e.Final, e.Threshold, e.Average, e.StatusLabel)
	}
	return tw.Flush()
}
