package core

import (
	"testing"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/internal/gristio"
	"github.com/orgviz/orgviz/schema"
	"github.com/stretchr/testify/require"
)

// testSnapshot builds the reference scenario used across the pipeline
// tests: two teams, five people, three epics. The Search epic is staffed
// only by Carol, who is not on team Alpha, so it separates. Bob works on
// epics in both teams. Eve has no assignments at all.
func testSnapshot() *gristio.Snapshot {
	return &gristio.Snapshot{
		Teams: gristio.Table{Name: "Equipes", Rows: []gristio.Row{
			{"id": 1, "Nom": "Alpha", "Epics": []any{"L", 10, 11}},
			{"id": 2, "Nom": "Beta"},
		}},
		People: gristio.Table{Name: "Personnes", Rows: []gristio.Row{
			{"id": 1, "Nom": "Alice"},
			{"id": 2, "Nom": "Bob"},
			{"id": 3, "Nom": "Carol"},
			{"id": 4, "Nom": "Dave"},
			{"id": 5, "Nom": "Eve"},
		}},
		Epics: gristio.Table{Name: "Epics", Rows: []gristio.Row{
			{"id": 10, "Nom": "Payments", "Equipe": 1, "Description": "Card processing"},
			{"id": 11, "Nom": "Search", "Description": "Query rewrite", "Intention_du_PI": "Ship v2", "Intention_prochain_Increment": "Scale out"},
			{"id": 12, "Nom": "Mobile", "Equipe": 2},
		}},
		Features: gristio.Table{Name: "Features", Rows: []gristio.Row{
			{"id": 100, "Nom": "Checkout", "Epic": 10, "PI": "PI-10"},
			{"id": 101, "Nom": "Refunds", "Epic": 10, "PI": "PI-11"},
			{"id": 102, "Nom": "Offline", "Epic": 12, "PI": 10},
		}},
		Assignments: gristio.Table{Name: "Affectations", Rows: []gristio.Row{
			{"id": 1, "Personne": 1, "Equipe": 1, "Role": "PM", "Charge": 50},
			{"id": 2, "Personne": 1, "Equipe": 1, "Epic": 10, "Role": "DEV", "Charge": 50},
			{"id": 3, "Personne": 2, "Equipe": 1, "Epic": 10, "Role": "DEV", "Charge": 50},
			{"id": 4, "Personne": 3, "Epic": 11, "Role": "PO", "Charge": 100},
			{"id": 5, "Personne": 2, "Equipe": 2, "Epic": 12, "Role": "DEV", "Charge": 100},
			{"id": 6, "Personne": 4, "Equipe": 2, "Role": "DEV", "Charge": 15},
			{"id": 7, "Personne": 1, "Epic": 11, "Role": "DEV", "Charge": 0},
			{"id": 8, "Personne": 4, "Equipe": 2, "Epic": 12, "Role": "DEV", "Charge": 5},
		}},
		Source: "test fixture",
	}
}

// buildTestGraph runs the builder over the reference scenario for PI-10.
func buildTestGraph(t *testing.T) *schema.OrgGraph {
	t.Helper()
	g, err := BuildGraph(testSnapshot(), contract.DefaultMapping(), "PI-10")
	require.NoError(t, err)
	return g
}
