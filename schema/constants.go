package schema

import "strings"

// Custom string types for type safety.
type (
	// Role represents a normalized assignment role.
	Role string

	// BlockKind represents the type of a layout block.
	BlockKind string

	// OutputMode represents the format of the output.
	OutputMode string
)

// All roles supported. Free-text roles from the snapshot are normalized:
// anything that is not a PM or PO variant counts as DEV.
const (
	RolePM  Role = "PM"
	RolePO  Role = "PO"
	RoleDEV Role = "DEV"
)

// All layout block kinds.
const (
	TeamContainerBlock       BlockKind = "team"
	ContainedEpicBlock       BlockKind = "epic"
	SeparatedEpicBlock       BlockKind = "separated-epic"
	FeatureBlock             BlockKind = "feature"
	MultiEpicRosterBlock     BlockKind = "multi-epic-roster"
	UnderAssignedRosterBlock BlockKind = "under-assigned-roster"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// Business constants for classification, scoring and layout.
const (
	// MultiEpicRosterEpicMin is the epic count at which a person joins
	// the multi-epic roster.
	MultiEpicRosterEpicMin = 3

	// MultiEpicRosterTeamMin is the team count at which a person joins
	// the multi-epic roster.
	MultiEpicRosterTeamMin = 2

	// UnderAssignedChargeMax is the total charge below which a person
	// joins the under-assigned roster.
	UnderAssignedChargeMax = 25.0

	// LowChargeMark flags display rows whose charge sits below this
	// percentage.
	LowChargeMark = 10.0

	// FreeAssignments is the number of assignments a person carries
	// before each extra one adds to the fragmentation score.
	FreeAssignments = 3

	// OverloadCharge is the total charge above which a person counts as
	// overloaded in reports.
	OverloadCharge = 100.0

	// SummaryMaxLines caps the shortened text produced for the summary
	// slot of a separated epic.
	SummaryMaxLines = 5
)

// NormalizeRole maps a free-text role value onto PM, PO or DEV.
func NormalizeRole(raw string) Role {
	r := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(r, string(RolePM)):
		return RolePM
	case strings.Contains(r, string(RolePO)):
		return RolePO
	default:
		return RoleDEV
	}
}
