package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
)

// PrintFragmentation outputs the ranked fragmentation scores, dispatching
// based on the output format configured.
func PrintFragmentation(ranked []schema.FragmentationScore, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFragmentationJSON(w, ranked)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFragmentationRows(w, ranked, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFragmentationTable(ranked, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// WriteFragmentationCSV writes the full ranking to a CSV artifact on disk.
func WriteFragmentationCSV(path string, ranked []schema.FragmentationScore, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return writeArtifact(path, func(w io.Writer) error {
		return writeFragmentationRows(w, ranked, fmtFloat, intFmt)
	})
}

func writeFragmentationTable(ranked []schema.FragmentationScore, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Agent", "Score", "Label", "Teams", "Epics", "Assignments", "Charge"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range ranked {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(s.Name, getMaxTableNameWidth(cfg)),
			strconv.Itoa(s.Score),
			contract.GetColorLabel(s.Score),
			fmt.Sprintf(intFmt, s.TeamCount),
			fmt.Sprintf(intFmt, s.EpicCount),
			fmt.Sprintf(intFmt, s.AssignmentCount),
			fmtFloat(s.TotalCharge) + "%",
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	overloaded := 0
	multiTeam := 0
	for _, s := range ranked {
		if s.Overloaded() {
			overloaded++
		}
		if s.MultiTeam() {
			multiTeam++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d people (overloaded: %d, multi-team: %d)\n", len(ranked), overloaded, multiTeam); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

func writeFragmentationRows(w io.Writer, ranked []schema.FragmentationScore, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"person_id",
		"person",
		"score",
		"label",
		"teams",
		"epics",
		"assignments",
		"total_charge",
		"roles",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range ranked {
			roles := make([]string, len(s.Roles))
			for j, r := range s.Roles {
				roles[j] = string(r)
			}
			rec := []string{
				strconv.Itoa(i + 1),
				s.PersonID,
				s.Name,
				strconv.Itoa(s.Score),
				contract.GetPlainLabel(s.Score),
				fmt.Sprintf(intFmt, s.TeamCount),
				fmt.Sprintf(intFmt, s.EpicCount),
				fmt.Sprintf(intFmt, s.AssignmentCount),
				fmtFloat(s.TotalCharge),
				strings.Join(roles, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFragmentationJSON(w io.Writer, ranked []schema.FragmentationScore) error {
	type jsonScore struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.FragmentationScore
	}

	output := make([]jsonScore, len(ranked))
	for i, s := range ranked {
		output[i] = jsonScore{
			Rank:               i + 1,
			Label:              contract.GetPlainLabel(s.Score),
			FragmentationScore: s,
		}
	}
	return writeJSON(w, output)
}
