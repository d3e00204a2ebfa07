package cmd

import (
	"github.com/orgviz/orgviz/core"
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/spf13/cobra"
)

// fullrunCmd produces every artifact of a planning run.
var fullrunCmd = &cobra.Command{
	Use:   "full-run [pi]",
	Short: "Produce the diagram and every report in one pass.",
	Long: `Run the whole pipeline once and write all artifacts: the drawio
diagram, the fragmentation CSV and Parquet exports, the per-epic Parquet
export, the synthesis markdown and the run summary.

This is the command to run before a PI planning session.

Examples:
  # Everything for PI-10, then open the files
  orgviz full-run PI-10 --open

  # From a specific archive with AI summaries
  orgviz full-run PI-10 --source data/planning.grist --llm`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		arts, err := core.ExecuteFullRun(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot complete full run", err)
		}
		openArtifacts(arts)
	},
}
