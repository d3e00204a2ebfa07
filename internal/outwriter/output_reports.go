package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
)

// WriteSynthesis writes the synthesis markdown: the fragmentation ranking
// plus the overload and multi-team callouts, ready to paste into a
// planning review.
func WriteSynthesis(path string, ranked []schema.FragmentationScore, cfg *contract.Config) error {
	return writeArtifact(path, func(w io.Writer) error {
		fmt.Fprintf(w, "# Fragmentation synthesis - %s\n\n", cfg.PI)

		limit := cfg.ResultLimit
		if limit > len(ranked) || limit <= 0 {
			limit = len(ranked)
		}
		fmt.Fprintf(w, "## Top %d fragmented people\n\n", limit)
		fmt.Fprintln(w, "| Rank | Person | Score | Label | Teams | Epics | Assignments | Charge |")
		fmt.Fprintln(w, "|------|--------|-------|-------|-------|-------|-------------|--------|")
		for i, s := range ranked[:limit] {
			fmt.Fprintf(w, "| %d | %s | %d | %s | %d | %d | %d | %.*f%% |\n",
				i+1, s.Name, s.Score, contract.GetPlainLabel(s.Score),
				s.TeamCount, s.EpicCount, s.AssignmentCount, cfg.Precision, s.TotalCharge)
		}

		fmt.Fprintf(w, "\n## Overloaded (charge above %.0f%%)\n\n", schema.OverloadCharge)
		found := false
		for _, s := range ranked {
			if s.Overloaded() {
				fmt.Fprintf(w, "- %s (%.*f%%)\n", s.Name, cfg.Precision, s.TotalCharge)
				found = true
			}
		}
		if !found {
			fmt.Fprintln(w, "Nobody is over capacity.")
		}

		fmt.Fprintf(w, "\n## Split across teams\n\n")
		found = false
		for _, s := range ranked {
			if s.MultiTeam() {
				fmt.Fprintf(w, "- %s (%d teams)\n", s.Name, s.TeamCount)
				found = true
			}
		}
		if !found {
			fmt.Fprintln(w, "Everyone works within a single team.")
		}
		return nil
	})
}

// WriteRunSummary writes the run summary markdown: where the data came
// from, the snapshot counts, team staffing, and the epics that still miss
// their intention statements.
func WriteRunSummary(path string, g *schema.OrgGraph, cls *schema.Classification, source string, cfg *contract.Config) error {
	return writeArtifact(path, func(w io.Writer) error {
		fmt.Fprintf(w, "# Run summary - %s\n\n", g.PI)
		fmt.Fprintf(w, "Source: %s\n\n", source)

		separated := 0
		for _, sep := range cls.Separated {
			if sep {
				separated++
			}
		}
		active := 0
		for _, view := range cls.Assignments {
			if view.Visible {
				active++
			}
		}
		fmt.Fprintln(w, "## Snapshot")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "- Teams: %d\n", len(g.Teams))
		fmt.Fprintf(w, "- Epics: %d (separated: %d)\n", len(g.Epics), separated)
		fmt.Fprintf(w, "- Features in %s: %d\n", g.PI, len(g.Features))
		fmt.Fprintf(w, "- People: %d\n", len(g.People))
		fmt.Fprintf(w, "- Active assignments: %d\n", active)

		fmt.Fprintln(w, "\n## Teams")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Team | Epics | Active people |")
		fmt.Fprintln(w, "|------|-------|---------------|")
		staffing := teamStaffing(g)
		for _, t := range g.Teams {
			fmt.Fprintf(w, "| %s | %d | %d |\n", t.Name, len(t.EpicIDs), len(staffing[t.ID]))
		}

		fmt.Fprintln(w, "\n## Epics missing intentions")
		fmt.Fprintln(w)
		found := false
		for _, e := range g.Epics {
			var missing []string
			if strings.TrimSpace(e.IntentionPI) == "" {
				missing = append(missing, "PI intention")
			}
			if strings.TrimSpace(e.IntentionNext) == "" {
				missing = append(missing, "next increment intention")
			}
			if len(missing) > 0 {
				fmt.Fprintf(w, "- %s (missing: %s)\n", e.Name, strings.Join(missing, ", "))
				found = true
			}
		}
		if !found {
			fmt.Fprintln(w, "All epics carry both intention statements.")
		}

		if len(g.Notes) > 0 {
			fmt.Fprintln(w, "\n## Data notes")
			fmt.Fprintln(w)
			for _, note := range g.Notes {
				fmt.Fprintf(w, "- %s\n", note)
			}
		}
		return nil
	})
}

// teamStaffing collects the active crew of each team, counting people
// assigned to the team directly or to one of its epics.
func teamStaffing(g *schema.OrgGraph) map[string]map[string]bool {
	crews := make(map[string]map[string]bool, len(g.Teams))
	add := func(teamID, personID string) {
		if teamID == "" {
			return
		}
		crew, ok := crews[teamID]
		if !ok {
			crew = make(map[string]bool)
			crews[teamID] = crew
		}
		crew[personID] = true
	}
	for _, a := range g.Assignments {
		if a.Charge <= 0 {
			continue
		}
		add(a.TeamID, a.PersonID)
		if a.EpicID != "" {
			if e := g.EpicByID(a.EpicID); e != nil {
				add(e.TeamID, a.PersonID)
			}
		}
	}
	return crews
}
