package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/semih007/gradecalc/internal/records"
	"github.com/semih007/gradecalc/internal/scoring"
)

func newCoursesCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage saved courses",
		Long: `Manage saved courses.

A course keeps only its raw scores. Its status is worked out every time it is
listed, against the default threshold or --threshold.`,
	}

	cmd.AddCommand(newCoursesListCommand(c))
	cmd.AddCommand(newCoursesAddCommand(c))
	cmd.AddCommand(newCoursesUpdateCommand(c))
	cmd.AddCommand(newCoursesDeleteCommand(c))

	return cmd
}

func newCoursesListCommand(c *cli) *cobra.Command {
	var threshold string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved courses with their current status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := c.service.Records.LoadDefaultThreshold(cmd.Context())
			if cmd.Flags().Changed("threshold") {
				v, err := scoring.ValidateField(scoring.ThresholdField, threshold)
				if err != nil {
					return err
				}
				limit = v
			}

			views := c.service.Records.LoadCourseViews(cmd.Context(), limit)
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved courses")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMIDTERM\tFINAL\tAVERAGE\tSTATUS")
			for _, v := range views {
				average := "-"
				if v.Average != nil {
					average = fmt.Sprintf("%.2f", *v.Average)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					v.ID, v.Name, dash(v.Midterm), dash(v.Final), average, v.StatusLabel)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&threshold, "threshold", "", "Evaluate against this threshold instead of the default")

	return cmd
}

func newCoursesAddCommand(c *cli) *cobra.Command {
	var midterm, final string

	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Save a course; scores are optional",
		Example: `  gradecalc courses add "Linear Algebra" --midterm 55 --final 70`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := c.service.Records.AddCourse(cmd.Context(), args[0], midterm, final)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", course.Name, course.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&midterm, "midterm", "", "Midterm score")
	cmd.Flags().StringVar(&final, "final", "", "Final exam score")

	return cmd
}

func newCoursesUpdateCommand(c *cli) *cobra.Command {
	var name, midterm, final string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the name or scores of a saved course",
		Long: `Change the name or scores of a saved course.

Only the given flags change; pass an empty value to clear a score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			found := false
			for _, course := range c.service.Records.LoadCourses(cmd.Context()) {
				if course.ID != id {
					continue
				}
				found = true
				if !cmd.Flags().Changed("name") {
					name = course.Name
				}
				if !cmd.Flags().Changed("midterm") {
					midterm = course.Midterm
				}
				if !cmd.Flags().Changed("final") {
					final = course.Final
				}
			}
			if !found {
				return fmt.Errorf("%w: %s", records.ErrCourseNotFound, id)
			}

			if err := c.service.Records.UpdateCourse(cmd.Context(), id, name, midterm, final); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Course name")
	cmd.Flags().StringVar(&midterm, "midterm", "", "Midterm score")
	cmd.Flags().StringVar(&final, "final", "", "Final exam score")

	return cmd
}

func newCoursesDeleteCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a saved course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.service.Records.DeleteCourse(cmd.Context(), args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
