package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/internal/gristio"
	"github.com/orgviz/orgviz/internal/summarize"
	"github.com/spf13/cobra"
)

// checkCmd validates the run configuration without producing artifacts.
var checkCmd = &cobra.Command{
	Use:   "check [pi]",
	Short: "Validate the configuration and data source (fails with non-zero exit).",
	Long: `Verify that a run would have everything it needs: a valid PI label,
a complete table mapping, a resolvable snapshot source, and the LLM
environment when summaries are requested.

Designed for CI and cron setups - exits non-zero when anything is
missing, without writing any artifact.

Examples:
  # Verify the local archive setup
  orgviz check PI-10

  # Verify the API credentials instead
  orgviz check PI-10 --api

  # Verify the LLM endpoint as well
  orgviz check PI-10 --llm`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runCheck(cfg); err != nil {
			contract.LogFatal("Configuration check failed", err)
		}
	},
}

func runCheck(cfg *contract.Config) error {
	failed := false
	report := func(ok bool, label, detail string) {
		mark := "✅"
		if !ok {
			mark = "❌"
			failed = true
		}
		if detail != "" {
			label += ": " + detail
		}
		fmt.Printf("%s %s\n", mark, label)
	}

	report(true, "PI label", cfg.PI)
	report(cfg.Mapping.Validate() == nil, "Table mapping", mappingDetail(cfg))

	if cfg.UseAPI {
		_, missing := gristio.APIConfigFromEnv()
		report(len(missing) == 0, "Grist API environment", strings.Join(missing, ", "))
	} else {
		path := cfg.SourcePath
		var err error
		if path == "" {
			path, err = gristio.FindDefaultArchive(cfg.DataDir)
		}
		if err == nil {
			_, err = os.Stat(path)
		}
		report(err == nil, "Snapshot archive", pathOrError(path, err))
	}

	if cfg.LLMEnabled {
		_, missing := summarize.LLMConfigFromEnv()
		report(len(missing) == 0, "LLM environment", strings.Join(missing, ", "))
	}

	if failed {
		return errors.New("one or more checks failed")
	}
	return nil
}

func mappingDetail(cfg *contract.Config) string {
	tables := cfg.Mapping.Tables
	return strings.Join([]string{tables.Teams, tables.People, tables.Epics, tables.Features, tables.Assignments}, ", ")
}

func pathOrError(path string, err error) string {
	if err != nil {
		return err.Error()
	}
	return path
}
