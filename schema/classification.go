package schema

// AssignmentView carries the display decisions for one assignment, parallel
// to OrgGraph.Assignments. The classifier produces these without touching
// the underlying rows.
type AssignmentView struct {
	// Visible is false for charge-0 assignments, which never appear in
	// any roster or container listing.
	Visible bool
	// LowCharge marks visible rows whose charge is below LowChargeMark.
	// Rendering concern, but derived from business state.
	LowCharge bool
}

// RosterEntry is one person's row in an auxiliary roster block.
type RosterEntry struct {
	PersonID    string
	Name        string
	EpicCount   int
	TeamCount   int
	TotalCharge float64
	// EpicNames lists the names of the epics the person is spread
	// across, sorted for stable output.
	EpicNames []string
}

// Classification is the rule classifier's output: per-epic separation,
// per-assignment visibility, and the two auxiliary rosters. It annotates
// the graph without mutating it.
type Classification struct {
	// Separated holds the ids of epics whose contributor set is not a
	// subset of their owning team's contributor set.
	Separated map[string]bool

	// Assignments is parallel to OrgGraph.Assignments.
	Assignments []AssignmentView

	// MultiEpic lists people spread across too many epics or teams,
	// ordered by epic count, team count, total charge, then person id.
	MultiEpic []RosterEntry

	// UnderAssigned lists people with no effective assignment or a total
	// charge under UnderAssignedChargeMax, ordered by name then id.
	UnderAssigned []RosterEntry
}

// IsSeparated reports whether the given epic was promoted out of its team.
func (c *Classification) IsSeparated(epicID string) bool {
	return c.Separated[epicID]
}
