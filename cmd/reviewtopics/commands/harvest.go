package commands

import (
	"fmt"

	"reviewtopics/lib/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest [--config <path/to/config.json5>]",
	Short: "Downloads every restaurant location and writes them to a csv file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		_, err = pipeline.Harvest(cmd.Context(), cfg.Harvest)
		return err
	},
}
