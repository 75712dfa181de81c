package commands

import (
	"context"

	"reviewtopics/lib/pipeline"
	"reviewtopics/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "reviewtopics",
	Short:         "reviewtopics harvests restaurant locations and plots the review topics of the best and worst rated ones.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			telemetry.InitSlog(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The configuration file, missing values use the defaults.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level.")
}

func readConfig() (pipeline.Config, error) {
	return pipeline.ReadConfig(configPath)
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
