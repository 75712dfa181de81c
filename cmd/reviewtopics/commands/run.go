package commands

import (
	"fmt"

	"reviewtopics/lib/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path/to/config.json5>]",
	Short: "Harvests the locations, then analyzes the reviews against them.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		_, err = pipeline.Harvest(cmd.Context(), cfg.Harvest)
		if err != nil {
			return err
		}
		// analyze whatever harvest just wrote
		cfg.Analyze.Locations = cfg.Harvest.Output
		result, err := pipeline.Analyze(cmd.Context(), cfg.Analyze)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}
