// Package schema has models, constants and derived structures for all parts of orgviz.
package schema

// Team is a planning team from the source snapshot. Teams own epics by
// default containment and keep their snapshot order everywhere downstream.
type Team struct {
	ID   string // Opaque stable identifier from the snapshot
	Name string // Display name
	// EpicIDs lists the epics owned by this team, in snapshot order.
	EpicIDs []string
}

// Person is a referenced individual. People never own anything; they are
// only reachable through assignments.
type Person struct {
	ID   string
	Name string
}

// Epic is a body of work owned by exactly one team. The separated flag is
// derived by the rule classifier, never read from the snapshot.
type Epic struct {
	ID            string
	Name          string
	Description   string
	IntentionPI   string // Free-text intention for the current PI
	IntentionNext string // Free-text intention for the next increment
	TeamID        string // Owning team; validated to exist
	// FeatureIDs lists this epic's features that survived the PI filter,
	// in snapshot order. Empty is a valid state (the epic renders empty).
	FeatureIDs []string
}

// Feature is a deliverable inside an epic, tagged with a PI. Only features
// whose tag matches the run's PI participate in the graph.
type Feature struct {
	ID          string
	Name        string
	Description string
	EpicID      string
	PITag       string // Normalized, e.g. "PI-10"
}

// Assignment links a person to a team and/or an epic with a role and a
// charge percentage. Charge 0 rows are retained in the graph but excluded
// from every display and from score aggregation.
type Assignment struct {
	PersonID string
	TeamID   string // May be empty when EpicID is set
	EpicID   string // May be empty when TeamID is set
	Role     Role
	Charge   float64 // 0-100+, unbounded above so overload stays detectable
	// ChargeDefaulted marks a charge that could not be coerced and fell
	// back to 0. Recorded as a data-quality note, not an error.
	ChargeDefaulted bool
}

// OrgGraph is the validated, cross-referenced model produced by the
// builder. All slices preserve snapshot order; the graph is never mutated
// after construction.
type OrgGraph struct {
	PI          string
	Teams       []Team
	People      []Person
	Epics       []Epic
	Features    []Feature
	Assignments []Assignment

	// PersonAssignments indexes assignment positions by person id,
	// including charge-0 rows.
	PersonAssignments map[string][]int

	// Notes collects non-fatal data-quality observations made while
	// building (defaulted charges, unparseable feature PI tags).
	Notes []string

	teamIndex    map[string]int
	personIndex  map[string]int
	epicIndex    map[string]int
	featureIndex map[string]int
}

// NewOrgGraph wires the lookup indexes for a fully populated graph.
// Builders call this once after assembling the entity slices.
func NewOrgGraph(g OrgGraph) *OrgGraph {
	g.teamIndex = make(map[string]int, len(g.Teams))
	for i, t := range g.Teams {
		g.teamIndex[t.ID] = i
	}
	g.personIndex = make(map[string]int, len(g.People))
	for i, p := range g.People {
		g.personIndex[p.ID] = i
	}
	g.epicIndex = make(map[string]int, len(g.Epics))
	for i, e := range g.Epics {
		g.epicIndex[e.ID] = i
	}
	g.featureIndex = make(map[string]int, len(g.Features))
	for i, f := range g.Features {
		g.featureIndex[f.ID] = i
	}
	g.PersonAssignments = make(map[string][]int)
	for i, a := range g.Assignments {
		g.PersonAssignments[a.PersonID] = append(g.PersonAssignments[a.PersonID], i)
	}
	return &g
}

// TeamByID returns the team with the given id, or nil.
func (g *OrgGraph) TeamByID(id string) *Team {
	if i, ok := g.teamIndex[id]; ok {
		return &g.Teams[i]
	}
	return nil
}

// PersonByID returns the person with the given id, or nil.
func (g *OrgGraph) PersonByID(id string) *Person {
	if i, ok := g.personIndex[id]; ok {
		return &g.People[i]
	}
	return nil
}

// EpicByID returns the epic with the given id, or nil.
func (g *OrgGraph) EpicByID(id string) *Epic {
	if i, ok := g.epicIndex[id]; ok {
		return &g.Epics[i]
	}
	return nil
}

// FeatureByID returns the feature with the given id, or nil.
func (g *OrgGraph) FeatureByID(id string) *Feature {
	if i, ok := g.featureIndex[id]; ok {
		return &g.Features[i]
	}
	return nil
}

// PersonName resolves a person id to its display name, falling back to the
// id itself for robustness in renderers.
func (g *OrgGraph) PersonName(id string) string {
	if p := g.PersonByID(id); p != nil && p.Name != "" {
		return p.Name
	}
	return id
}
