package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	m := DefaultMapping()
	require.NoError(t, m.Validate())
	assert.Equal(t, "Equipes", m.Tables.Teams)
	assert.Equal(t, "Affectations", m.Tables.Assignments)
	assert.Equal(t, "Intention_du_PI", m.Columns.EpicIntentionPI)
}

func TestLoadMapping(t *testing.T) {
	t.Run("empty path keeps defaults", func(t *testing.T) {
		m, err := LoadMapping("")
		require.NoError(t, err)
		assert.Equal(t, "Personnes", m.Tables.People)
	})

	t.Run("file overrides merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.yml")
		content := []byte("tables:\n  teams: Squads\ncolumns:\n  team_name: Title\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		assert.Equal(t, "Squads", m.Tables.Teams)
		assert.Equal(t, "Title", m.Columns.TeamName)
		// Untouched entries keep their defaults.
		assert.Equal(t, "Personnes", m.Tables.People)
		assert.Equal(t, "Charge", m.Columns.AssignCharge)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadMapping(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
	})
}

func TestMappingValidate(t *testing.T) {
	m := DefaultMapping()
	m.Tables.Features = ""
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tables.features")
}
