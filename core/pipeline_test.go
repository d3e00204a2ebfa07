package core

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePipelineArchive materializes the reference scenario as a .grist
// archive so the orchestration tests cover the real loading path.
func writePipelineArchive(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "planning.grist")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	stmts := []string{
		`CREATE TABLE Equipes (id INTEGER PRIMARY KEY, Nom TEXT, Epics TEXT)`,
		`CREATE TABLE Personnes (id INTEGER PRIMARY KEY, Nom TEXT)`,
		`CREATE TABLE Epics (id INTEGER PRIMARY KEY, Nom TEXT, Equipe INTEGER, Description TEXT, Intention_du_PI TEXT, Intention_prochain_Increment TEXT)`,
		`CREATE TABLE Features (id INTEGER PRIMARY KEY, Nom TEXT, Epic INTEGER, PI TEXT)`,
		`CREATE TABLE Affectations (id INTEGER PRIMARY KEY, Personne INTEGER, Equipe INTEGER, Epic INTEGER, Role TEXT, Charge REAL)`,
		`INSERT INTO Equipes VALUES (1, 'Alpha', '[10, 11]')`,
		`INSERT INTO Equipes VALUES (2, 'Beta', NULL)`,
		`INSERT INTO Personnes VALUES (1, 'Alice'), (2, 'Bob'), (3, 'Carol')`,
		`INSERT INTO Epics VALUES (10, 'Payments', 1, 'Card processing', 'Ship card flows', NULL)`,
		`INSERT INTO Epics VALUES (11, 'Search', NULL, 'Query rewrite.', 'Ship v2.', 'Scale out.')`,
		`INSERT INTO Epics VALUES (12, 'Mobile', 2, NULL, NULL, NULL)`,
		`INSERT INTO Features VALUES (100, 'Checkout', 10, 'PI-10')`,
		`INSERT INTO Affectations VALUES (1, 1, 1, NULL, 'PM', 50)`,
		`INSERT INTO Affectations VALUES (2, 1, 1, 10, 'DEV', 50)`,
		`INSERT INTO Affectations VALUES (3, 2, 1, 10, 'DEV', 50)`,
		`INSERT INTO Affectations VALUES (4, 3, NULL, 11, 'PO', 100)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "statement %q", stmt)
	}
	return path
}

func pipelineConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	return &contract.Config{
		PI:          "PI-10",
		SourcePath:  writePipelineArchive(t, dir),
		OutputDir:   filepath.Join(dir, "output"),
		ResultLimit: 25,
		Precision:   1,
		Mapping:     contract.DefaultMapping(),
	}
}

func TestRunPipeline(t *testing.T) {
	cfg := pipelineConfig(t)
	result, err := RunPipeline(context.Background(), cfg)
	require.NoError(t, err)

	assert.Contains(t, result.Source, cfg.SourcePath)
	assert.Len(t, result.Graph.Teams, 2)
	assert.Len(t, result.Scores, 3)
	assert.True(t, result.Classification.IsSeparated("11"))
	require.NotEmpty(t, result.Layout.Blocks)
	assert.Equal(t, "PI-10", result.Layout.Cartouche.PILabel)
}

func TestLoadSnapshotResolution(t *testing.T) {
	t.Run("newest archive in data dir", func(t *testing.T) {
		dir := t.TempDir()
		writePipelineArchive(t, dir)
		cfg := &contract.Config{DataDir: dir, Mapping: contract.DefaultMapping()}

		snap, err := LoadSnapshot(context.Background(), cfg)
		require.NoError(t, err)
		assert.Len(t, snap.Teams.Rows, 2)
	})

	t.Run("empty data dir errors", func(t *testing.T) {
		cfg := &contract.Config{DataDir: t.TempDir(), Mapping: contract.DefaultMapping()}
		_, err := LoadSnapshot(context.Background(), cfg)
		require.Error(t, err)
	})

	t.Run("half configured api falls back to archive", func(t *testing.T) {
		t.Setenv("ORGVIZ_GRIST_API_KEY", "k")
		t.Setenv("ORGVIZ_GRIST_DOC_ID", "")
		dir := t.TempDir()
		writePipelineArchive(t, dir)
		cfg := &contract.Config{UseAPI: true, DataDir: dir, Mapping: contract.DefaultMapping()}

		snap, err := LoadSnapshot(context.Background(), cfg)
		require.NoError(t, err)
		assert.Contains(t, snap.Source, "file (")
	})
}

func TestExecuteExport(t *testing.T) {
	cfg := pipelineConfig(t)
	arts, err := ExecuteExport(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, arts.Paths(), 5)
	for _, p := range arts.Paths() {
		info, statErr := os.Stat(p)
		require.NoError(t, statErr, "artifact %s missing", p)
		assert.Positive(t, info.Size(), "artifact %s empty", p)
	}
}

func TestExecuteDiagram(t *testing.T) {
	cfg := pipelineConfig(t)
	arts, err := ExecuteDiagram(context.Background(), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(arts.Diagram)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "mxfile")
	assert.Contains(t, out, "Search")
	// The truncator filled the separated epic's summary before rendering.
	assert.Contains(t, out, "Query rewrite.")
}

func TestExecuteFullRun(t *testing.T) {
	cfg := pipelineConfig(t)
	arts, err := ExecuteFullRun(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, arts.Paths(), 6)
	_, err = os.Stat(arts.Diagram)
	require.NoError(t, err)
}
