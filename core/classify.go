package core

import (
	"sort"

	"github.com/orgviz/orgviz/schema"
)

// Classify derives the rule layer from a validated graph: which epics
// render outside their owning team, which assignments are visible, and
// the two attention rosters. The graph itself is never modified.
func Classify(g *schema.OrgGraph) *schema.Classification {
	cls := &schema.Classification{
		Separated:   make(map[string]bool, len(g.Epics)),
		Assignments: make([]schema.AssignmentView, len(g.Assignments)),
	}

	for i, a := range g.Assignments {
		cls.Assignments[i] = schema.AssignmentView{
			Visible:   a.Charge > 0,
			LowCharge: a.Charge > 0 && a.Charge < schema.LowChargeMark,
		}
	}

	// Team crews count direct team references only. Crediting a team
	// with the crews of its own epics would make every epic crew a
	// trivial subset and no epic could ever separate.
	teamPeople := make(map[string]map[string]bool, len(g.Teams))
	epicPeople := make(map[string]map[string]bool, len(g.Epics))
	for _, a := range g.Assignments {
		if a.Charge <= 0 {
			continue
		}
		if a.EpicID != "" {
			addMember(epicPeople, a.EpicID, a.PersonID)
		}
		if a.TeamID != "" {
			addMember(teamPeople, a.TeamID, a.PersonID)
		}
	}

	// An epic is separated when its crew is not contained in its owning
	// team's crew. Unstaffed epics trivially stay inside.
	for _, e := range g.Epics {
		cls.Separated[e.ID] = !isSubset(epicPeople[e.ID], teamPeople[e.TeamID])
	}

	usage := collectUsage(g)
	for _, p := range g.People {
		u := usage[p.ID]
		entry := schema.RosterEntry{
			PersonID:    p.ID,
			Name:        p.Name,
			EpicCount:   len(u.Epics),
			TeamCount:   len(u.Teams),
			TotalCharge: u.TotalCharge,
			EpicNames:   epicNames(g, u.Epics),
		}
		if entry.EpicCount >= schema.MultiEpicRosterEpicMin || entry.TeamCount >= schema.MultiEpicRosterTeamMin {
			cls.MultiEpic = append(cls.MultiEpic, entry)
		}
		if u.Count == 0 || u.TotalCharge < schema.UnderAssignedChargeMax {
			cls.UnderAssigned = append(cls.UnderAssigned, entry)
		}
	}

	sort.SliceStable(cls.MultiEpic, func(i, j int) bool {
		a, b := cls.MultiEpic[i], cls.MultiEpic[j]
		if a.EpicCount != b.EpicCount {
			return a.EpicCount > b.EpicCount
		}
		if a.TeamCount != b.TeamCount {
			return a.TeamCount > b.TeamCount
		}
		if a.TotalCharge != b.TotalCharge {
			return a.TotalCharge > b.TotalCharge
		}
		return a.PersonID < b.PersonID
	})
	sort.SliceStable(cls.UnderAssigned, func(i, j int) bool {
		a, b := cls.UnderAssigned[i], cls.UnderAssigned[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PersonID < b.PersonID
	})

	return cls
}

func addMember(sets map[string]map[string]bool, key, person string) {
	s, ok := sets[key]
	if !ok {
		s = make(map[string]bool)
		sets[key] = s
	}
	s[person] = true
}

// isSubset reports whether every member of sub is also in super. The
// empty set is a subset of anything, nil maps included.
func isSubset(sub, super map[string]bool) bool {
	if len(sub) > len(super) {
		return false
	}
	for k := range sub {
		if !super[k] {
			return false
		}
	}
	return true
}
