package cmd

import (
	"github.com/orgviz/orgviz/core"
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes the tabular artifacts without rendering a diagram.
var exportCmd = &cobra.Command{
	Use:   "export [pi]",
	Short: "Write the CSV, Parquet and markdown artifacts.",
	Long: `Run the analysis and write its tabular artifacts to the output
directory: the fragmentation ranking as CSV and Parquet, the per-epic
Parquet export, the synthesis markdown and the run summary.

Examples:
  # Export everything for PI-10
  orgviz export PI-10

  # Export into a custom directory
  orgviz export PI-10 --output-dir reports/pi10`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		arts, err := core.ExecuteExport(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot export artifacts", err)
		}
		for _, p := range arts.Paths() {
			contract.LogInfo("wrote " + p)
		}
		openArtifacts(arts)
	},
}
