package parquet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orgviz/orgviz/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFragmentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "fragmentation.parquet")
	ranked := []schema.FragmentationScore{
		{PersonID: "2", Name: "Bob", TeamCount: 2, EpicCount: 2, AssignmentCount: 2, TotalCharge: 150, Score: 4, Roles: []schema.Role{schema.RoleDEV, schema.RolePM}},
		{PersonID: "5", Name: "Eve"},
	}
	require.NoError(t, WriteFragmentation(path, ranked))

	rows, err := parquet.ReadFile[FragmentationRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, "Bob", rows[0].Person)
	assert.Equal(t, "Moderate", rows[0].Label)
	require.NotNil(t, rows[0].Roles)
	assert.Equal(t, "DEV|PM", *rows[0].Roles)
	assert.Nil(t, rows[1].Roles, "no roles means a null cell")
	assert.Equal(t, rows[0].RunID, rows[1].RunID, "one run id per call")
	assert.NotEmpty(t, rows[0].RunID)
	assert.False(t, rows[0].ExportedAt.IsZero())
	assert.Equal(t, rows[0].ExportedAt, rows[1].ExportedAt, "one timestamp per call")
}

func TestWriteEpics(t *testing.T) {
	g := schema.NewOrgGraph(schema.OrgGraph{
		PI:    "PI-10",
		Teams: []schema.Team{{ID: "1", Name: "Alpha"}},
		Epics: []schema.Epic{
			{ID: "10", Name: "Payments", TeamID: "1", IntentionPI: "Ship card flows", FeatureIDs: []string{"100"}},
			{ID: "11", Name: "Search", TeamID: "1"},
		},
	})
	cls := &schema.Classification{Separated: map[string]bool{"10": false, "11": true}}

	path := filepath.Join(t.TempDir(), "epics.parquet")
	require.NoError(t, WriteEpics(path, g, cls))

	rows, err := parquet.ReadFile[EpicRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alpha", rows[0].Team)
	assert.False(t, rows[0].Separated)
	assert.Equal(t, int32(1), rows[0].FeatureCount)
	require.NotNil(t, rows[0].IntentionPI)
	assert.Equal(t, "Ship card flows", *rows[0].IntentionPI)

	assert.True(t, rows[1].Separated)
	assert.Nil(t, rows[1].IntentionPI)
	assert.False(t, rows[0].ExportedAt.IsZero())
}

func TestOptionalHelpers(t *testing.T) {
	assert.Nil(t, optionalRoles(nil))
	assert.Equal(t, "PO", *optionalRoles([]schema.Role{schema.RolePO}))
	assert.Nil(t, optionalString("   "))
	require.NotNil(t, optionalString("x"))
}

func TestWriteRowsCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.parquet")
	require.NoError(t, writeRows(path, []FragmentationRow{{RunID: "r", Rank: 1}}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
