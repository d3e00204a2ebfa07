package schema

// RoleName is a role-tagged display name attached to a block, e.g. PM
// names at a team container or PO names at an epic block.
type RoleName struct {
	Role Role
	Name string
}

// AssignmentRow is one visible assignment line inside an epic or team
// block. Charge-0 rows never become AssignmentRows.
type AssignmentRow struct {
	PersonID  string
	Person    string
	Role      Role
	Charge    float64
	LowCharge bool
}

// RosterRow is one line of an auxiliary roster block. On the multi-epic
// roster Annotation spells out the epic count followed by the epic
// names; on the under-assigned roster it carries the charge label.
type RosterRow struct {
	PersonID   string
	Person     string
	EpicCount  int
	Annotation string
}

// SummarySlot exposes the raw text feeding the short summary of a
// separated epic. Shortening is delegated to an external summarizer; the
// layout engine only decides that the slot exists and what feeds it.
type SummarySlot struct {
	Description   string
	IntentionPI   string
	IntentionNext string
	MaxLines      int
	// Lines holds the resolved summary once a summarizer has run.
	// Renderers fall back to the raw fields while it is empty.
	Lines []string
}

// LayoutBlock is a typed node of the renderable hierarchy, independent of
// any output format.
type LayoutBlock struct {
	Kind      BlockKind
	ID        string
	Name      string
	RoleNames []RoleName
	Rows      []AssignmentRow
	Roster    []RosterRow
	Summary   *SummarySlot
	// HomeTeamID records the nominal owning team of a separated epic.
	HomeTeamID string
	Children   []*LayoutBlock
	// ChildCount is a sizing hint so renderers can pre-compute container
	// extents without re-walking the tree.
	ChildCount int
}

// Cartouche is the header descriptor assembled from the run context: the
// PI label plus summary counts reduced from the final graph.
type Cartouche struct {
	PILabel        string
	Teams          int
	EpicsTotal     int
	EpicsSeparated int
	FeaturesPI     int
	Assignments    int
	People         int
}

// Layout is the ordered forest of blocks plus the cartouche. Block order
// is deterministic: auxiliary rosters, then teams in snapshot order, then
// the trailing separated-epic group.
type Layout struct {
	Cartouche Cartouche
	Blocks    []*LayoutBlock
}

// BlocksOfKind returns the top-level blocks of the given kind, in order.
func (l *Layout) BlocksOfKind(kind BlockKind) []*LayoutBlock {
	var out []*LayoutBlock
	for _, b := range l.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
