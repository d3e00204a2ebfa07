package cmd

import (
	"github.com/orgviz/orgviz/core"
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/spf13/cobra"
)

// diagramCmd renders the drawio diagram only.
var diagramCmd = &cobra.Command{
	Use:   "diagram [pi]",
	Short: "Render the PI planning diagram as a drawio file.",
	Long: `Render the organization of a program increment into an editable
diagrams.net file.

The page shows a header cartouche, the two attention rosters, one
container per team with its epics and features, and a trailing band of
epics staffed outside their owning team.

Examples:
  # Render PI-10 from the newest local archive
  orgviz diagram PI-10

  # Render and open the result
  orgviz diagram PI-10 --open

  # Summarize epic intentions with the configured LLM
  orgviz diagram PI-10 --llm`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		arts, err := core.ExecuteDiagram(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot render diagram", err)
		}
		openArtifacts(arts)
	},
}
