package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/internal/gristio"
	"github.com/orgviz/orgviz/schema"
)

// BuildGraph turns a raw snapshot into a validated OrgGraph for the given
// PI. Every foreign key is checked and every dangling reference found is
// reported together in a single ReferentialError, so the source data can
// be fixed in one pass. The PI filter applies to features only; teams and
// epics always survive, even with zero matching features.
func BuildGraph(snap *gristio.Snapshot, m *contract.Mapping, pi string) (*schema.OrgGraph, error) {
	normPI, err := contract.NormalizePI(pi)
	if err != nil {
		return nil, err
	}

	cols := m.Columns
	refErr := &contract.ReferentialError{}
	var notes []string

	// People
	people := make([]schema.Person, 0, len(snap.People.Rows))
	personSeen := make(map[string]bool)
	for _, row := range snap.People.Rows {
		id := row.ID()
		if id == "" {
			refErr.Add(contract.RefViolation{Table: snap.People.Name, RowID: "?", Column: "id", Reason: "row has no id"})
			continue
		}
		if personSeen[id] {
			refErr.Add(contract.RefViolation{Table: snap.People.Name, RowID: id, Column: "id", Reason: "duplicate person id"})
			continue
		}
		personSeen[id] = true
		people = append(people, schema.Person{ID: id, Name: cleanString(row.Get(cols.PersonLabel))})
	}

	// Teams
	teams := make([]schema.Team, 0, len(snap.Teams.Rows))
	teamSeen := make(map[string]bool)
	for _, row := range snap.Teams.Rows {
		id := row.ID()
		if id == "" {
			refErr.Add(contract.RefViolation{Table: snap.Teams.Name, RowID: "?", Column: "id", Reason: "row has no id"})
			continue
		}
		if teamSeen[id] {
			refErr.Add(contract.RefViolation{Table: snap.Teams.Name, RowID: id, Column: "id", Reason: "duplicate team id"})
			continue
		}
		teamSeen[id] = true
		name := cleanString(row.Get(cols.TeamName))
		if name == "" {
			name = "Team " + id
		}
		teams = append(teams, schema.Team{ID: id, Name: name})
	}

	// Epics, with ownership from the epic's own team reference first.
	epics := make([]schema.Epic, 0, len(snap.Epics.Rows))
	epicSeen := make(map[string]bool)
	for _, row := range snap.Epics.Rows {
		id := row.ID()
		if id == "" {
			refErr.Add(contract.RefViolation{Table: snap.Epics.Name, RowID: "?", Column: "id", Reason: "row has no id"})
			continue
		}
		if epicSeen[id] {
			refErr.Add(contract.RefViolation{Table: snap.Epics.Name, RowID: id, Column: "id", Reason: "duplicate epic id"})
			continue
		}
		epicSeen[id] = true
		name := cleanString(row.Get(cols.EpicName))
		if name == "" {
			name = "Epic " + id
		}
		epics = append(epics, schema.Epic{
			ID:            id,
			Name:          name,
			Description:   cleanString(row.Get(cols.EpicDescription)),
			IntentionPI:   cleanString(row.Get(cols.EpicIntentionPI)),
			IntentionNext: cleanString(row.Get(cols.EpicIntentionNext)),
			TeamID:        contract.ParseRefID(row.Get(cols.EpicTeam)),
		})
	}

	// Fallback ownership: a team's epic RefList claims epics that carry
	// no team reference of their own.
	epicPos := make(map[string]int, len(epics))
	for i, e := range epics {
		epicPos[e.ID] = i
	}
	for _, row := range snap.Teams.Rows {
		tid := row.ID()
		if tid == "" {
			continue
		}
		for _, eid := range contract.ParseRefList(row.Get(cols.TeamEpics)) {
			if i, ok := epicPos[eid]; ok && epics[i].TeamID == "" {
				epics[i].TeamID = tid
			}
		}
	}

	// Every epic must resolve to an existing team. Orphans are a hard
	// validation error, not a render state.
	for i := range epics {
		e := &epics[i]
		switch {
		case e.TeamID == "":
			refErr.Add(contract.RefViolation{Table: snap.Epics.Name, RowID: e.ID, Column: cols.EpicTeam, Reason: "epic has no owning team"})
		case !teamSeen[e.TeamID]:
			refErr.Add(contract.RefViolation{Table: snap.Epics.Name, RowID: e.ID, Column: cols.EpicTeam, TargetID: e.TeamID, Reason: "owning team does not exist"})
		}
	}

	// Containment in snapshot order: teams keep the order epics were
	// first encountered in the source.
	teamPos := make(map[string]int, len(teams))
	for i, t := range teams {
		teamPos[t.ID] = i
	}
	for _, e := range epics {
		if i, ok := teamPos[e.TeamID]; ok {
			teams[i].EpicIDs = append(teams[i].EpicIDs, e.ID)
		}
	}

	// Features: validate the epic link on every row, then keep only the
	// rows matching the run's PI. Validation happens before filtering so
	// broken references are reported even for other increments.
	var features []schema.Feature
	featureSeen := make(map[string]bool)
	for _, row := range snap.Features.Rows {
		id := row.ID()
		if id == "" {
			refErr.Add(contract.RefViolation{Table: snap.Features.Name, RowID: "?", Column: "id", Reason: "row has no id"})
			continue
		}
		if featureSeen[id] {
			refErr.Add(contract.RefViolation{Table: snap.Features.Name, RowID: id, Column: "id", Reason: "duplicate feature id"})
			continue
		}
		featureSeen[id] = true

		epicID := contract.ParseRefID(row.Get(cols.FeatureEpic))
		switch {
		case epicID == "":
			refErr.Add(contract.RefViolation{Table: snap.Features.Name, RowID: id, Column: cols.FeatureEpic, Reason: "feature has no epic"})
			continue
		case !epicSeen[epicID]:
			refErr.Add(contract.RefViolation{Table: snap.Features.Name, RowID: id, Column: cols.FeatureEpic, TargetID: epicID, Reason: "epic does not exist"})
			continue
		}

		rawPI := row.Get(cols.FeaturePI)
		normTag := contract.NormalizePIValue(rawPI)
		if normTag == "" && cleanString(rawPI) != "" {
			notes = append(notes, fmt.Sprintf("feature %s: unparseable PI tag %q treated as non-matching", id, cleanString(rawPI)))
		}
		if normTag != normPI {
			continue
		}

		features = append(features, schema.Feature{
			ID:          id,
			Name:        cleanString(row.Get(cols.FeatureName)),
			Description: cleanString(row.Get(cols.FeatureDescription)),
			EpicID:      epicID,
			PITag:       normTag,
		})
		if i, ok := epicPos[epicID]; ok {
			epics[i].FeatureIDs = append(epics[i].FeatureIDs, id)
		}
	}

	// Assignments
	var assignments []schema.Assignment
	for rowNum, row := range snap.Assignments.Rows {
		id := row.ID()
		if id == "" {
			id = fmt.Sprintf("row-%d", rowNum+1)
		}

		personID := contract.ParseRefID(row.Get(cols.AssignPerson))
		switch {
		case personID == "":
			refErr.Add(contract.RefViolation{Table: snap.Assignments.Name, RowID: id, Column: cols.AssignPerson, Reason: "assignment has no person"})
			continue
		case !personSeen[personID]:
			refErr.Add(contract.RefViolation{Table: snap.Assignments.Name, RowID: id, Column: cols.AssignPerson, TargetID: personID, Reason: "person does not exist"})
			continue
		}

		teamID := contract.ParseRefID(row.Get(cols.AssignTeam))
		if teamID != "" && !teamSeen[teamID] {
			refErr.Add(contract.RefViolation{Table: snap.Assignments.Name, RowID: id, Column: cols.AssignTeam, TargetID: teamID, Reason: "team does not exist"})
			continue
		}
		epicID := contract.ParseRefID(row.Get(cols.AssignEpic))
		if epicID != "" && !epicSeen[epicID] {
			refErr.Add(contract.RefViolation{Table: snap.Assignments.Name, RowID: id, Column: cols.AssignEpic, TargetID: epicID, Reason: "epic does not exist"})
			continue
		}
		if teamID == "" && epicID == "" {
			refErr.Add(contract.RefViolation{Table: snap.Assignments.Name, RowID: id, Column: cols.AssignTeam, Reason: "assignment references neither a team nor an epic"})
			continue
		}

		charge, defaulted := coerceCharge(row.Get(cols.AssignCharge))
		if defaulted {
			notes = append(notes, fmt.Sprintf("assignment %s: charge %q defaulted to 0", id, cleanString(row.Get(cols.AssignCharge))))
		}

		assignments = append(assignments, schema.Assignment{
			PersonID:        personID,
			TeamID:          teamID,
			EpicID:          epicID,
			Role:            schema.NormalizeRole(cleanString(row.Get(cols.AssignRole))),
			Charge:          charge,
			ChargeDefaulted: defaulted,
		})
	}

	if err := refErr.OrNil(); err != nil {
		return nil, err
	}

	return schema.NewOrgGraph(schema.OrgGraph{
		PI:          normPI,
		Teams:       teams,
		People:      people,
		Epics:       epics,
		Features:    features,
		Assignments: assignments,
		Notes:       notes,
	}), nil
}

// cleanString renders a raw cell as trimmed text, flattening nil and the
// "nan" artifacts some export paths produce into an empty string.
func cleanString(v any) string {
	if v == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if strings.EqualFold(s, "nan") || s == "<nil>" {
		return ""
	}
	return s
}

// coerceCharge converts a raw charge cell to a percentage. Missing or
// non-numeric values default to 0 so under-assignment stays countable;
// the second return value signals that the default was applied.
func coerceCharge(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case float64:
		return sanitizeCharge(x)
	case float32:
		return sanitizeCharge(float64(x))
	case int:
		return sanitizeCharge(float64(x))
	case int32:
		return sanitizeCharge(float64(x))
	case int64:
		return sanitizeCharge(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return sanitizeCharge(f)
		}
		return 0, true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%"))
		if s == "" {
			return 0, true
		}
		// French sources use a decimal comma.
		s = strings.ReplaceAll(s, ",", ".")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return sanitizeCharge(f)
		}
		return 0, true
	default:
		return 0, true
	}
}

func sanitizeCharge(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, true
	}
	return f, false
}
