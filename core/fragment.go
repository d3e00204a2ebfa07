package core

import (
	"sort"

	"github.com/orgviz/orgviz/schema"
)

// ComputeFragmentation scores every person in the graph, in snapshot
// order. The score is teams reached plus epics touched plus a penalty of
// one per active assignment beyond the free allowance, so spreading the
// same charge over more commitments always costs more.
func ComputeFragmentation(g *schema.OrgGraph) []schema.FragmentationScore {
	usage := collectUsage(g)
	scores := make([]schema.FragmentationScore, 0, len(g.People))
	for _, p := range g.People {
		u := usage[p.ID]
		penalty := u.Count - schema.FreeAssignments
		if penalty < 0 {
			penalty = 0
		}
		roles := make([]schema.Role, 0, len(u.Roles))
		for r := range u.Roles {
			roles = append(roles, r)
		}
		sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
		scores = append(scores, schema.FragmentationScore{
			PersonID:        p.ID,
			Name:            p.Name,
			TeamCount:       len(u.Teams),
			EpicCount:       len(u.Epics),
			AssignmentCount: u.Count,
			TotalCharge:     u.TotalCharge,
			Score:           len(u.Teams) + len(u.Epics) + penalty,
			Roles:           roles,
		})
	}
	return scores
}

// Rank orders scores from most to least fragmented and truncates to
// limit. Ties break on person id so repeated runs agree byte for byte.
// A non-positive limit keeps everything.
func Rank(scores []schema.FragmentationScore, limit int) []schema.FragmentationScore {
	ranked := make([]schema.FragmentationScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PersonID < ranked[j].PersonID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
