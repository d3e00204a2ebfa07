// Package cmd defines the command-line interface for orgviz.
package cmd

import (
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fullrunCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("pi", "p", "", "Program increment label (e.g. PI-10)")
	rootCmd.PersistentFlags().String("source", "", "Path to a local .grist archive (defaults to the newest archive in the data dir)")
	rootCmd.PersistentFlags().Bool("api", false, "Fetch the snapshot from the Grist API instead of a local archive")
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory scanned for .grist archives")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory for generated artifacts")
	rootCmd.PersistentFlags().String("mapping", "", "Path to a mapping.yml overriding the default table and column names")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("open", false, "Open generated artifacts with the system default application")
	rootCmd.PersistentFlags().Bool("llm", false, "Summarize epic intentions with the configured LLM endpoint")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
