package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
)

// BuildLayout arranges a classified graph into the ordered block forest
// the renderers consume. Block order is fixed: the two attention rosters,
// then one container per team in snapshot order, then the separated epics
// in home-team relative order. Two runs over the same snapshot produce
// identical layouts. A team listing an epic id absent from the graph is
// a defect in an earlier stage and aborts with an InvariantError.
func BuildLayout(g *schema.OrgGraph, cls *schema.Classification) (*schema.Layout, error) {
	lay := &schema.Layout{Cartouche: buildCartouche(g, cls)}

	lay.Blocks = append(lay.Blocks, multiEpicRoster(cls), underAssignedRoster(cls))

	for ti := range g.Teams {
		t := &g.Teams[ti]
		block := &schema.LayoutBlock{
			Kind:      schema.TeamContainerBlock,
			ID:        t.ID,
			Name:      t.Name,
			RoleNames: teamRoleNames(g, cls, t),
			Rows:      assignmentRows(g, cls, func(a schema.Assignment) bool { return a.TeamID == t.ID && a.EpicID == "" }),
		}
		for _, eid := range t.EpicIDs {
			e := g.EpicByID(eid)
			if e == nil {
				return nil, &contract.InvariantError{
					Stage:  "layout",
					Detail: fmt.Sprintf("team %s lists epic %s absent from the graph", t.ID, eid),
				}
			}
			if cls.IsSeparated(eid) {
				continue
			}
			block.Children = append(block.Children, epicBlock(g, cls, e, schema.ContainedEpicBlock))
		}
		block.ChildCount = len(block.Children)
		lay.Blocks = append(lay.Blocks, block)
	}

	// Separated epics trail the team grid, grouped by their home team's
	// position so the band reads in the same order as the grid above it.
	for _, t := range g.Teams {
		for _, eid := range t.EpicIDs {
			if !cls.IsSeparated(eid) {
				continue
			}
			e := g.EpicByID(eid)
			block := epicBlock(g, cls, e, schema.SeparatedEpicBlock)
			block.HomeTeamID = t.ID
			block.Summary = &schema.SummarySlot{
				Description:   e.Description,
				IntentionPI:   e.IntentionPI,
				IntentionNext: e.IntentionNext,
				MaxLines:      schema.SummaryMaxLines,
			}
			lay.Blocks = append(lay.Blocks, block)
		}
	}

	return lay, nil
}

func buildCartouche(g *schema.OrgGraph, cls *schema.Classification) schema.Cartouche {
	c := schema.Cartouche{
		PILabel:    g.PI,
		Teams:      len(g.Teams),
		EpicsTotal: len(g.Epics),
		FeaturesPI: len(g.Features),
		People:     len(g.People),
	}
	for _, sep := range cls.Separated {
		if sep {
			c.EpicsSeparated++
		}
	}
	for _, view := range cls.Assignments {
		if view.Visible {
			c.Assignments++
		}
	}
	return c
}

func multiEpicRoster(cls *schema.Classification) *schema.LayoutBlock {
	block := &schema.LayoutBlock{
		Kind: schema.MultiEpicRosterBlock,
		ID:   string(schema.MultiEpicRosterBlock),
		Name: "People on several epics or teams",
	}
	for _, e := range cls.MultiEpic {
		// The row must spell out the epic count, not leave it to be
		// inferred from the name list.
		label := fmt.Sprintf("%d epics", e.EpicCount)
		if e.EpicCount == 1 {
			label = "1 epic"
		}
		annotation := label + ", multi-team"
		if len(e.EpicNames) > 0 {
			annotation = label + ": " + strings.Join(e.EpicNames, ", ")
		}
		block.Roster = append(block.Roster, schema.RosterRow{
			PersonID:   e.PersonID,
			Person:     e.Name,
			EpicCount:  e.EpicCount,
			Annotation: annotation,
		})
	}
	block.ChildCount = len(block.Roster)
	return block
}

func underAssignedRoster(cls *schema.Classification) *schema.LayoutBlock {
	block := &schema.LayoutBlock{
		Kind: schema.UnderAssignedRosterBlock,
		ID:   string(schema.UnderAssignedRosterBlock),
		Name: "People under-assigned",
	}
	for _, e := range cls.UnderAssigned {
		annotation := "unassigned"
		if e.TotalCharge > 0 {
			annotation = fmt.Sprintf("%.0f%%", e.TotalCharge)
		}
		block.Roster = append(block.Roster, schema.RosterRow{
			PersonID:   e.PersonID,
			Person:     e.Name,
			EpicCount:  e.EpicCount,
			Annotation: annotation,
		})
	}
	block.ChildCount = len(block.Roster)
	return block
}

func epicBlock(g *schema.OrgGraph, cls *schema.Classification, e *schema.Epic, kind schema.BlockKind) *schema.LayoutBlock {
	block := &schema.LayoutBlock{
		Kind:      kind,
		ID:        e.ID,
		Name:      e.Name,
		RoleNames: epicRoleNames(g, cls, e.ID),
		Rows:      assignmentRows(g, cls, func(a schema.Assignment) bool { return a.EpicID == e.ID }),
	}
	for _, fid := range e.FeatureIDs {
		f := g.FeatureByID(fid)
		block.Children = append(block.Children, &schema.LayoutBlock{
			Kind: schema.FeatureBlock,
			ID:   f.ID,
			Name: f.Name,
		})
	}
	block.ChildCount = len(block.Children)
	return block
}

// teamRoleNames surfaces the team's PM line: product managers from any
// visible assignment reaching the team, directly or through one of its
// epics, plus product owners assigned to the team itself.
func teamRoleNames(g *schema.OrgGraph, cls *schema.Classification, t *schema.Team) []schema.RoleName {
	owned := make(map[string]bool, len(t.EpicIDs))
	for _, eid := range t.EpicIDs {
		owned[eid] = true
	}
	seen := make(map[string]bool)
	var names []schema.RoleName
	for i, a := range g.Assignments {
		if !cls.Assignments[i].Visible {
			continue
		}
		touches := a.TeamID == t.ID || (a.EpicID != "" && owned[a.EpicID])
		if !touches {
			continue
		}
		keep := a.Role == schema.RolePM || (a.Role == schema.RolePO && a.TeamID == t.ID && a.EpicID == "")
		if !keep || seen[string(a.Role)+"/"+a.PersonID] {
			continue
		}
		seen[string(a.Role)+"/"+a.PersonID] = true
		names = append(names, schema.RoleName{Role: a.Role, Name: g.PersonName(a.PersonID)})
	}
	sortRoleNames(names)
	return names
}

func epicRoleNames(g *schema.OrgGraph, cls *schema.Classification, epicID string) []schema.RoleName {
	seen := make(map[string]bool)
	var names []schema.RoleName
	for i, a := range g.Assignments {
		if !cls.Assignments[i].Visible || a.EpicID != epicID || a.Role != schema.RolePO {
			continue
		}
		if seen[a.PersonID] {
			continue
		}
		seen[a.PersonID] = true
		names = append(names, schema.RoleName{Role: schema.RolePO, Name: g.PersonName(a.PersonID)})
	}
	sortRoleNames(names)
	return names
}

func sortRoleNames(names []schema.RoleName) {
	sort.SliceStable(names, func(i, j int) bool {
		if names[i].Role != names[j].Role {
			return names[i].Role < names[j].Role
		}
		return names[i].Name < names[j].Name
	})
}

func assignmentRows(g *schema.OrgGraph, cls *schema.Classification, match func(schema.Assignment) bool) []schema.AssignmentRow {
	var rows []schema.AssignmentRow
	for i, a := range g.Assignments {
		if !cls.Assignments[i].Visible || !match(a) {
			continue
		}
		rows = append(rows, schema.AssignmentRow{
			PersonID:  a.PersonID,
			Person:    g.PersonName(a.PersonID),
			Role:      a.Role,
			Charge:    a.Charge,
			LowCharge: cls.Assignments[i].LowCharge,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Person != rows[j].Person {
			return rows[i].Person < rows[j].Person
		}
		return rows[i].PersonID < rows[j].PersonID
	})
	return rows
}
