package commands

import (
	"fmt"
	"os"
	"strings"

	"reviewtopics/lib/pipeline"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printResult(result pipeline.Result) {
	ranking := newTable()
	ranking.SetTitle("Eligible locations")
	ranking.AppendHeader(table.Row{"#", "Location", "Mean rating", "Reviews"})
	for i, agg := range result.Cohorts.Eligible {
		mean := "-"
		if agg.MeanRating.Valid {
			mean = fmt.Sprintf("%.3f", agg.MeanRating.Float64)
		}
		ranking.AppendRow(table.Row{i + 1, agg.LocationName, mean, agg.ReviewCount})
	}
	ranking.Render()

	plots := newTable()
	plots.SetTitle("Topic plots")
	plots.AppendHeader(table.Row{"Cohort", "Locations", "Reviews", "Topics", "Output"})
	for _, plot := range result.Plots {
		var panels []string
		for _, panel := range plot.Figure.Panels {
			panels = append(panels, fmt.Sprintf("%s: %s", panel.Title, strings.Join(panel.Terms, " ")))
		}
		plots.AppendRow(table.Row{
			plot.Cohort,
			strings.Join(plot.Locations, "\n"),
			plot.Documents,
			strings.Join(panels, "\n"),
			plot.Path,
		})
		plots.AppendSeparator()
	}
	plots.Render()
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [--config <path/to/config.json5>]",
	Short: "Ranks locations by rating and plots the review topics of the top and bottom cohorts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		result, err := pipeline.Analyze(cmd.Context(), cfg.Analyze)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}
