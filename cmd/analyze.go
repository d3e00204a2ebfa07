package cmd

import (
	"github.com/orgviz/orgviz/core"
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd ranks people by fragmentation score.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [pi]",
	Short: "Rank people by how fragmented their assignments are.",
	Long: `Build the organization graph for a program increment and rank every
person by fragmentation score.

The score counts the teams a person reaches, the epics they touch, and
penalizes each active assignment beyond three. Working on an epic counts
as working for the team that owns it.

Examples:
  # Rank everyone for PI-10 using the newest local archive
  orgviz analyze PI-10

  # Top 10 only, as JSON
  orgviz analyze --pi PI-10 --limit 10 --output json

  # Pull the snapshot live from the Grist API
  orgviz analyze PI-10 --api

  # Export findings to CSV for tracking
  orgviz analyze PI-10 --output csv --output-file fragmentation.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := core.ExecuteAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run fragmentation analysis", err)
		}
	},
}
