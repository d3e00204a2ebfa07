package drawio

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/orgviz/orgviz/schema"
)

// Cell values are HTML fragments; mxGraph renders them inside the shape.
// The XML encoder escapes them again at the attribute level, which is the
// double encoding diagrams.net expects in uncompressed files.

func esc(s string) string {
	return html.EscapeString(s)
}

func cartoucheValue(c schema.Cartouche) string {
	return fmt.Sprintf("🗂️ PI Planning – %s | Teams: %d | Epics: %d (%d separated) | Features: %d | People: %d | Assignments: %d",
		c.PILabel, c.Teams, c.EpicsTotal, c.EpicsSeparated, c.FeaturesPI, c.People, c.Assignments)
}

func rosterValue(b *schema.LayoutBlock) string {
	lines := []string{`<div style="text-align:center;"><b>` + esc(b.Name) + `</b></div>`}
	if len(b.Roster) == 0 {
		lines = append(lines, "- none")
	}
	for _, r := range b.Roster {
		line := "- " + esc(r.Person)
		if r.Annotation != "" {
			line += " (" + esc(r.Annotation) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "<br/>")
}

func teamInfoValue(b *schema.LayoutBlock) string {
	lines := []string{
		"<b>PM :</b> " + esc(roleList(b.RoleNames, schema.RolePM)),
		"<b>PO :</b> " + esc(roleList(b.RoleNames, schema.RolePO)),
		"<b>Members :</b>",
	}
	members := blockMembers(b)
	if len(members) == 0 {
		lines = append(lines, "- none")
	}
	for _, m := range members {
		lines = append(lines, "- "+esc(m))
	}
	return strings.Join(lines, "<br/>")
}

// epicValue renders an epic box. homeTeam is only set for separated
// epics, which also carry the intention summary section.
func epicValue(b *schema.LayoutBlock, homeTeam string) string {
	lines := []string{`<div style="text-align:center;"><b>🧩 ` + esc(b.Name) + `</b></div>`}
	if homeTeam != "" {
		lines = append(lines, "<b>Team :</b> "+esc(homeTeam))
	}
	if len(b.Rows) > 0 {
		lines = append(lines, "<b>PO :</b> "+esc(roleList(b.RoleNames, schema.RolePO)))
	}
	lines = append(lines, "—")
	if len(b.Rows) == 0 {
		lines = append(lines, "(no specific assignment)")
	}
	for _, r := range b.Rows {
		line := fmt.Sprintf("%s – %s – %s", esc(r.Person), esc(string(r.Role)), formatCharge(r.Charge))
		if r.LowCharge {
			line = `<span style="color:#555555;">` + line + `</span>`
		}
		lines = append(lines, line)
	}
	var features []string
	for _, c := range b.Children {
		if c.Kind == schema.FeatureBlock {
			features = append(features, "✨ "+esc(c.Name))
		}
	}
	if len(features) > 0 {
		lines = append(lines, "", "✨ Features (PI) :")
		lines = append(lines, features...)
	}
	if b.Summary != nil {
		lines = append(lines, "", `<div style="text-align:center;color:#1f4e79;"><b>Intention</b></div>`)
		lines = append(lines, summaryLines(b.Summary)...)
	}
	return strings.Join(lines, "<br/>")
}

func summaryLines(s *schema.SummarySlot) []string {
	if len(s.Lines) > 0 {
		out := make([]string, len(s.Lines))
		for i, l := range s.Lines {
			out[i] = esc(l)
		}
		return out
	}
	var raw []string
	for _, part := range []string{s.Description, s.IntentionPI, s.IntentionNext} {
		if t := strings.TrimSpace(part); t != "" {
			raw = append(raw, esc(t))
		}
	}
	if len(raw) == 0 {
		return []string{"No description or intention provided."}
	}
	if s.MaxLines > 0 && len(raw) > s.MaxLines {
		raw = raw[:s.MaxLines]
	}
	return raw
}

func roleList(names []schema.RoleName, role schema.Role) string {
	var out []string
	for _, rn := range names {
		if rn.Role == role {
			out = append(out, rn.Name)
		}
	}
	if len(out) == 0 {
		return "—"
	}
	return strings.Join(out, ", ")
}

func formatCharge(charge float64) string {
	if math.Abs(charge-math.Round(charge)) < 1e-9 {
		return fmt.Sprintf("%d%%", int(math.Round(charge)))
	}
	return fmt.Sprintf("%.1f%%", charge)
}
