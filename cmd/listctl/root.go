package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"list-timeline/config"
	"list-timeline/internal/app"
	"list-timeline/pkg/log"
)

type cli struct {
	envFile  string
	asJSON   bool
	logLevel string

	app *app.App
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "listctl",
		Short:         "Inspect Slack Lists the way the timeline sees them",
		Long:          `listctl fetches raw list items, runs schema discovery and prints the normalized tasks of a Slack List.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "Env file to load (default .env)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print JSON instead of tables")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		c.newItemsCommand(),
		c.newDiscoverCommand(),
		c.newTasksCommand(),
		c.newCategoriesCommand(),
		c.newInfoCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing configuration: %v", missing)
	}

	logger := log.Init(log.ZapConfig{
		Level:        c.logLevel,
		Mode:         cfg.Logger.Mode,
		Encoding:     "console",
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	c.app = app.Build(cmd.Context(), cfg, logger)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
