package schema

// FragmentationScore is the per-person dispersion metric. All counts only
// consider assignments with charge > 0; people without any assignment are
// still represented with zero counts so the full population stays visible
// to callers.
type FragmentationScore struct {
	PersonID        string
	Name            string
	TeamCount       int     // Distinct teams reachable through charge>0 assignments
	EpicCount       int     // Distinct epics with charge>0 assignments
	AssignmentCount int     // Number of charge>0 assignments
	TotalCharge     float64 // Sum of charge over charge>0 assignments, may exceed 100
	Score           int     // TeamCount + EpicCount + max(0, AssignmentCount-FreeAssignments)
	Roles           []Role
}

// Overloaded reports whether the person's total charge exceeds 100%.
func (f FragmentationScore) Overloaded() bool {
	return f.TotalCharge > OverloadCharge
}

// MultiTeam reports whether the person is spread across more than one team.
func (f FragmentationScore) MultiTeam() bool {
	return f.TeamCount > 1
}
