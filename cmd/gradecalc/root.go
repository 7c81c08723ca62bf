package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semih007/gradecalc/internal/app"
)

// cli carries the opened service from the root command to its children.
type cli struct {
	configPath string
	dsn        string
	service    *app.Service
}

// newRootCommand builds the command tree over c. The caller closes c once
// Execute returns.
func newRootCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradecalc",
		Short: "Midterm/final grade calculator",
		Long: `gradecalc weighs a midterm and a final score, applies the final exam
threshold and tells whether the course is passed, conditionally passed or
failed. Every calculation is kept in a short local history, and named courses
can be saved and re-evaluated against the current default threshold.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open()
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", app.DefaultConfigPath, "Path to the TOML config")
	cmd.PersistentFlags().StringVar(&c.dsn, "dsn", "", "Storage DSN, overrides [database] dsn")

	cmd.AddCommand(newCalcCommand(c))
	cmd.AddCommand(newHistoryCommand(c))
	cmd.AddCommand(newCoursesCommand(c))
	cmd.AddCommand(newThresholdCommand(c))

	return cmd
}

func (c *cli) open() error {
	config, err := app.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.dsn != "" {
		config.Database.DSN = c.dsn
	}

	service, err := app.NewServiceFromConfig(config)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	c.service = service
	return nil
}

func (c *cli) close() error {
	if c.service == nil {
		return nil
	}
	err := c.service.Close()
	c.service = nil
	return err
}

func execute() (err error) {
	c := &cli{}
	defer func() {
		if cerr := c.close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing storage: %w", cerr)
		}
	}()

	return newRootCommand(c).Execute()
}
