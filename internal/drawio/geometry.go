package drawio

import (
	"sort"

	"github.com/orgviz/orgviz/schema"
)

// Page geometry in pixels. Teams fill a three-column grid; the separated
// band trails below it at single-column width.
const (
	margin      = 20
	cartoucheH  = 50
	teamW       = 460
	teamHeaderH = 52
	epicW       = teamW - 30
	colGap      = 30
	rowGap      = 20
	gridCols    = 3
	fullW       = gridCols*teamW + (gridCols-1)*colGap
)

type box struct {
	X, Y, W, H int
}

// relativeTo rebases a box into its container's coordinate space, which
// is what mxGraph expects for child cells.
func (b box) relativeTo(parent box) box {
	return box{X: b.X - parent.X, Y: b.Y - parent.Y, W: b.W, H: b.H}
}

type geometry struct {
	Cartouche box
	Rosters   map[string]box
	Teams     map[string]box
	TeamInfos map[string]box
	Epics     map[string]box
}

// computeGeometry walks the block forest once and assigns every cell its
// absolute box. Heights are estimated from wrapped line counts so boxes
// grow with their content instead of clipping it.
func computeGeometry(lay *schema.Layout) *geometry {
	geo := &geometry{
		Cartouche: box{X: margin, Y: margin, W: fullW, H: cartoucheH},
		Rosters:   make(map[string]box),
		Teams:     make(map[string]box),
		TeamInfos: make(map[string]box),
		Epics:     make(map[string]box),
	}

	y := margin + cartoucheH + 20

	multi := lay.BlocksOfKind(schema.MultiEpicRosterBlock)
	under := lay.BlocksOfKind(schema.UnderAssignedRosterBlock)
	if len(multi) > 0 || len(under) > 0 {
		const alertGap = 20
		halfW := (fullW - alertGap) / 2
		alertH := 0
		for _, b := range append(multi, under...) {
			if h := rosterHeight(b); h > alertH {
				alertH = h
			}
		}
		for _, b := range multi {
			geo.Rosters[b.ID] = box{X: margin, Y: y, W: halfW, H: alertH}
		}
		for _, b := range under {
			geo.Rosters[b.ID] = box{X: margin + halfW + alertGap, Y: y, W: halfW, H: alertH}
		}
		y += alertH + 20
	}

	col := 0
	rowMaxH := 0
	for _, block := range lay.BlocksOfKind(schema.TeamContainerBlock) {
		tx := margin + col*(teamW+colGap)
		ty := y
		infoH := teamInfoHeight(block)

		epicsH := 0
		for _, epic := range block.Children {
			epicsH += epicHeight(epic) + rowGap
		}
		pad := epicsH + 20
		if pad < 120 {
			pad = 120
		}
		teamH := teamHeaderH + infoH + pad

		geo.Teams[block.ID] = box{X: tx, Y: ty, W: teamW, H: teamH}
		geo.TeamInfos[block.ID] = box{X: tx + 15, Y: ty + teamHeaderH + 10, W: epicW, H: infoH}

		ey := ty + teamHeaderH + 10 + infoH + 12
		for _, epic := range block.Children {
			eh := epicHeight(epic)
			geo.Epics[epic.ID] = box{X: tx + 15, Y: ey, W: epicW, H: eh}
			ey += eh + rowGap
		}

		if teamH > rowMaxH {
			rowMaxH = teamH
		}
		col++
		if col >= gridCols {
			col = 0
			y += rowMaxH + 40
			rowMaxH = 0
		}
	}
	if col != 0 {
		y += rowMaxH + 40
	}

	sepY := y + 40
	for _, block := range lay.BlocksOfKind(schema.SeparatedEpicBlock) {
		eh := epicHeight(block) + 10
		geo.Epics[block.ID] = box{X: margin, Y: sepY, W: teamW, H: eh}
		sepY += eh + 15
	}

	return geo
}

// wrappedLines counts display lines after wrapping at maxChars per line.
func wrappedLines(lines []string, maxChars int) int {
	total := 0
	for _, line := range lines {
		n := len([]rune(line))
		if n == 0 {
			n = 1
		}
		total += (n + maxChars - 1) / maxChars
	}
	return total
}

func rosterHeight(b *schema.LayoutBlock) int {
	lines := []string{b.Name}
	if len(b.Roster) == 0 {
		lines = append(lines, "- none")
	}
	for _, r := range b.Roster {
		lines = append(lines, "- "+r.Person+" "+r.Annotation)
	}
	h := wrappedLines(lines, 64)*15 + 20
	if h < 72 {
		h = 72
	}
	return h
}

func teamInfoHeight(b *schema.LayoutBlock) int {
	lines := []string{"PM:", "PO:", "Members:"}
	members := blockMembers(b)
	if len(members) == 0 {
		lines = append(lines, "- none")
	}
	for _, m := range members {
		lines = append(lines, "- "+m)
	}
	h := wrappedLines(lines, 58)*15 + 20
	if h < 96 {
		h = 96
	}
	return h
}

func epicHeight(b *schema.LayoutBlock) int {
	lines := []string{b.Name, "PO:", "-"}
	if len(b.Rows) == 0 {
		lines = append(lines, "(no specific assignment)")
	}
	for _, r := range b.Rows {
		lines = append(lines, r.Person+" "+string(r.Role))
	}
	features := 0
	for _, c := range b.Children {
		if c.Kind == schema.FeatureBlock {
			lines = append(lines, "- "+c.Name)
			features++
		}
	}
	if features > 0 {
		lines = append(lines, "", "Features:")
	}
	if b.Summary != nil {
		lines = append(lines, "", "Intention:")
		for i := 0; i < summaryLineCount(b.Summary); i++ {
			lines = append(lines, "x")
		}
	}
	return 28 + wrappedLines(lines, 52)*16 + 24
}

func summaryLineCount(s *schema.SummarySlot) int {
	if len(s.Lines) > 0 {
		return len(s.Lines)
	}
	return s.MaxLines
}

// blockMembers lists the distinct people of a team container, from its
// own rows and the rows of its contained epics.
func blockMembers(b *schema.LayoutBlock) []string {
	seen := make(map[string]bool)
	var members []string
	add := func(rows []schema.AssignmentRow) {
		for _, r := range rows {
			if r.Person == "" || seen[r.Person] {
				continue
			}
			seen[r.Person] = true
			members = append(members, r.Person)
		}
	}
	add(b.Rows)
	for _, c := range b.Children {
		add(c.Rows)
	}
	sort.Strings(members)
	return members
}
