package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/internal/gristio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildGraphEntities tests that the builder resolves every table of
// the reference snapshot into typed entities.
func TestBuildGraphEntities(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, "PI-10", g.PI)
	assert.Len(t, g.Teams, 2)
	assert.Len(t, g.People, 5)
	assert.Len(t, g.Epics, 3)
	assert.Len(t, g.Assignments, 8)

	t.Run("ownership from epic team reference", func(t *testing.T) {
		require.NotNil(t, g.EpicByID("10"))
		assert.Equal(t, "1", g.EpicByID("10").TeamID)
		assert.Equal(t, "2", g.EpicByID("12").TeamID)
	})

	t.Run("ownership fallback via team epic list", func(t *testing.T) {
		// The Search epic carries no team reference of its own; Alpha's
		// Epics RefList claims it.
		require.NotNil(t, g.EpicByID("11"))
		assert.Equal(t, "1", g.EpicByID("11").TeamID)
	})

	t.Run("containment keeps snapshot order", func(t *testing.T) {
		require.NotNil(t, g.TeamByID("1"))
		assert.Equal(t, []string{"10", "11"}, g.TeamByID("1").EpicIDs)
		assert.Equal(t, []string{"12"}, g.TeamByID("2").EpicIDs)
	})
}

// TestBuildGraphPIFilter tests that only features tagged with the run's
// PI survive, while epics always do.
func TestBuildGraphPIFilter(t *testing.T) {
	g := buildTestGraph(t)

	require.Len(t, g.Features, 2)
	assert.Equal(t, "Checkout", g.Features[0].Name)
	assert.Equal(t, "Offline", g.Features[1].Name)

	t.Run("numeric PI tag normalizes", func(t *testing.T) {
		// Feature 102 carries the bare integer 10 instead of "PI-10".
		assert.Equal(t, "PI-10", g.Features[1].PITag)
	})

	t.Run("epic with no matching features survives empty", func(t *testing.T) {
		e := g.EpicByID("11")
		require.NotNil(t, e)
		assert.Empty(t, e.FeatureIDs)
	})

	t.Run("filtered feature detaches from epic", func(t *testing.T) {
		assert.Equal(t, []string{"100"}, g.EpicByID("10").FeatureIDs)
	})
}

// TestBuildGraphChargeCoercion tests the documented charge default and
// its data-quality note.
func TestBuildGraphChargeCoercion(t *testing.T) {
	tests := []struct {
		name       string
		raw        any
		wantCharge float64
		wantNote   bool
	}{
		{name: "numeric", raw: 50, wantCharge: 50, wantNote: false},
		{name: "float", raw: 12.5, wantCharge: 12.5, wantNote: false},
		{name: "percent string", raw: "80%", wantCharge: 80, wantNote: false},
		{name: "decimal comma", raw: "37,5", wantCharge: 37.5, wantNote: false},
		{name: "missing", raw: nil, wantCharge: 0, wantNote: true},
		{name: "free text", raw: "mi-temps", wantCharge: 0, wantNote: true},
		{name: "negative", raw: -10, wantCharge: 0, wantNote: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := testSnapshot()
			snap.Assignments.Rows = []gristio.Row{
				{"id": 1, "Personne": 1, "Equipe": 1, "Role": "DEV", "Charge": tc.raw},
			}
			g, err := BuildGraph(snap, contract.DefaultMapping(), "PI-10")
			require.NoError(t, err)
			require.Len(t, g.Assignments, 1)
			assert.Equal(t, tc.wantCharge, g.Assignments[0].Charge)
			assert.Equal(t, tc.wantNote, g.Assignments[0].ChargeDefaulted)
			if tc.wantNote {
				require.NotEmpty(t, g.Notes)
				assert.Contains(t, g.Notes[0], "defaulted to 0")
			}
		})
	}
}

// TestBuildGraphViolations tests that every dangling reference is
// reported together, not just the first one found.
func TestBuildGraphViolations(t *testing.T) {
	snap := testSnapshot()
	snap.Epics.Rows = append(snap.Epics.Rows,
		gristio.Row{"id": 13, "Nom": "Ghost"},             // no owning team anywhere
		gristio.Row{"id": 14, "Nom": "Lost", "Equipe": 9}, // owner does not exist
	)
	snap.Assignments.Rows = append(snap.Assignments.Rows,
		gristio.Row{"id": 20, "Personne": 99, "Equipe": 1, "Charge": 50}, // unknown person
		gristio.Row{"id": 21, "Personne": 1, "Epic": 77, "Charge": 50},   // unknown epic
		gristio.Row{"id": 22, "Personne": 1, "Charge": 50},               // neither team nor epic
	)
	snap.Features.Rows = append(snap.Features.Rows,
		gristio.Row{"id": 103, "Nom": "Adrift", "Epic": 88, "PI": "PI-10"},
	)

	_, err := BuildGraph(snap, contract.DefaultMapping(), "PI-10")
	require.Error(t, err)

	var refErr *contract.ReferentialError
	require.True(t, errors.As(err, &refErr))
	assert.Len(t, refErr.Violations, 6)

	msg := err.Error()
	for _, want := range []string{"Epics", "Affectations", "Features", "13", "99", "77", "88"} {
		assert.Contains(t, msg, want)
	}
}

func TestBuildGraphDuplicateIDs(t *testing.T) {
	snap := testSnapshot()
	snap.People.Rows = append(snap.People.Rows, gristio.Row{"id": 1, "Nom": "Alice again"})

	_, err := BuildGraph(snap, contract.DefaultMapping(), "PI-10")
	require.Error(t, err)

	var refErr *contract.ReferentialError
	require.True(t, errors.As(err, &refErr))
	require.Len(t, refErr.Violations, 1)
	assert.Equal(t, "duplicate person id", refErr.Violations[0].Reason)
}

func TestBuildGraphBadPI(t *testing.T) {
	_, err := BuildGraph(testSnapshot(), contract.DefaultMapping(), "whenever")
	require.Error(t, err)

	var malformed *contract.MalformedValueError
	assert.True(t, errors.As(err, &malformed))
}

// TestBuildGraphUnparseablePITag tests that a feature with a garbage PI
// tag is excluded with a note rather than failing the run.
func TestBuildGraphUnparseablePITag(t *testing.T) {
	snap := testSnapshot()
	snap.Features.Rows = append(snap.Features.Rows,
		gristio.Row{"id": 104, "Nom": "Someday", "Epic": 10, "PI": "next quarter maybe"},
	)

	g, err := BuildGraph(snap, contract.DefaultMapping(), "PI-10")
	require.NoError(t, err)
	assert.Len(t, g.Features, 2)

	found := false
	for _, note := range g.Notes {
		if strings.Contains(note, "unparseable PI tag") {
			found = true
		}
	}
	assert.True(t, found, "expected a data-quality note for feature 104, got %v", g.Notes)
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "x", cleanString("  x  "))
	assert.Equal(t, "", cleanString(nil))
	assert.Equal(t, "", cleanString("NaN"))
	assert.Equal(t, "", cleanString("<nil>"))
	assert.Equal(t, "42", cleanString(42))
}
