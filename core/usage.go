package core

import (
	"sort"

	"github.com/orgviz/orgviz/schema"
)

// personUsage aggregates the active (charge > 0) assignments of one person.
type personUsage struct {
	PersonID    string
	Teams       map[string]bool
	Epics       map[string]bool
	Roles       map[schema.Role]bool
	Count       int
	TotalCharge float64
}

// collectUsage folds every active assignment into per-person usage. Team
// reach includes the owning team of any referenced epic, so working on an
// epic counts as working for the team that carries it. Every person in
// the graph gets an entry, including those with no active assignment.
func collectUsage(g *schema.OrgGraph) map[string]*personUsage {
	usage := make(map[string]*personUsage, len(g.People))
	for _, p := range g.People {
		usage[p.ID] = &personUsage{
			PersonID: p.ID,
			Teams:    make(map[string]bool),
			Epics:    make(map[string]bool),
			Roles:    make(map[schema.Role]bool),
		}
	}
	for _, a := range g.Assignments {
		if a.Charge <= 0 {
			continue
		}
		u, ok := usage[a.PersonID]
		if !ok {
			continue
		}
		u.Count++
		u.TotalCharge += a.Charge
		u.Roles[a.Role] = true
		if a.TeamID != "" {
			u.Teams[a.TeamID] = true
		}
		if a.EpicID != "" {
			u.Epics[a.EpicID] = true
			if e := g.EpicByID(a.EpicID); e != nil && e.TeamID != "" {
				u.Teams[e.TeamID] = true
			}
		}
	}
	return usage
}

// epicNames resolves an epic id set to names sorted for stable display.
func epicNames(g *schema.OrgGraph, ids map[string]bool) []string {
	names := make([]string, 0, len(ids))
	for id := range ids {
		if e := g.EpicByID(id); e != nil {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}
