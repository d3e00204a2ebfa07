// Package parquet exports fragmentation and epic data to Parquet files
// using github.com/parquet-go/parquet-go, for loading into a warehouse.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
	"github.com/parquet-go/parquet-go"
)

// FragmentationRow is the per-person export record. The schema is derived
// from the struct tags.
type FragmentationRow struct {
	// RunID is the unique identifier of the export run
	RunID string `parquet:"run_id,snappy"`

	// ExportedAt is when the run produced this file
	ExportedAt time.Time `parquet:"exported_at,snappy"`

	// Rank within the run, 1 is the most fragmented
	Rank int32 `parquet:"rank,snappy"`

	PersonID string `parquet:"person_id,snappy"`

	Person string `parquet:"person,snappy"`

	Score int32 `parquet:"score,snappy"`

	// Label is the severity bucket the score falls into
	Label string `parquet:"label,snappy"`

	TeamCount int32 `parquet:"team_count,snappy"`

	EpicCount int32 `parquet:"epic_count,snappy"`

	AssignmentCount int32 `parquet:"assignment_count,snappy"`

	// TotalCharge is the summed assignment percentage
	TotalCharge float64 `parquet:"total_charge,snappy"`

	// Roles is the pipe-joined role set (nullable)
	Roles *string `parquet:"roles,optional,snappy"`
}

// EpicRow is the per-epic export record.
type EpicRow struct {
	RunID string `parquet:"run_id,snappy"`

	// ExportedAt is when the run produced this file
	ExportedAt time.Time `parquet:"exported_at,snappy"`

	EpicID string `parquet:"epic_id,snappy"`

	Epic string `parquet:"epic,snappy"`

	TeamID string `parquet:"team_id,snappy"`

	Team string `parquet:"team,snappy"`

	// Separated marks epics drawn outside their owning team
	Separated bool `parquet:"separated,snappy"`

	FeatureCount int32 `parquet:"feature_count,snappy"`

	// IntentionPI is the epic's goal for the running increment (nullable)
	IntentionPI *string `parquet:"intention_pi,optional,snappy"`

	// IntentionNext is the epic's goal for the following increment (nullable)
	IntentionNext *string `parquet:"intention_next,optional,snappy"`
}

// WriteFragmentation writes the ranked scores to a Parquet file. All rows
// of one call share a fresh run id.
func WriteFragmentation(path string, ranked []schema.FragmentationScore) error {
	runID := uuid.NewString()
	exportedAt := time.Now().UTC()
	rows := make([]FragmentationRow, len(ranked))
	for i, s := range ranked {
		rows[i] = FragmentationRow{
			RunID:           runID,
			ExportedAt:      exportedAt,
			Rank:            int32(i + 1),
			PersonID:        s.PersonID,
			Person:          s.Name,
			Score:           int32(s.Score),
			Label:           contract.GetPlainLabel(s.Score),
			TeamCount:       int32(s.TeamCount),
			EpicCount:       int32(s.EpicCount),
			AssignmentCount: int32(s.AssignmentCount),
			TotalCharge:     s.TotalCharge,
			Roles:           optionalRoles(s.Roles),
		}
	}
	return writeRows(path, rows)
}

// WriteEpics writes one record per epic with its separation state.
func WriteEpics(path string, g *schema.OrgGraph, cls *schema.Classification) error {
	runID := uuid.NewString()
	exportedAt := time.Now().UTC()
	rows := make([]EpicRow, len(g.Epics))
	for i, e := range g.Epics {
		teamName := ""
		if t := g.TeamByID(e.TeamID); t != nil {
			teamName = t.Name
		}
		rows[i] = EpicRow{
			RunID:         runID,
			ExportedAt:    exportedAt,
			EpicID:        e.ID,
			Epic:          e.Name,
			TeamID:        e.TeamID,
			Team:          teamName,
			Separated:     cls.IsSeparated(e.ID),
			FeatureCount:  int32(len(e.FeatureIDs)),
			IntentionPI:   optionalString(e.IntentionPI),
			IntentionNext: optionalString(e.IntentionNext),
		}
	}
	return writeRows(path, rows)
}

// writeRows writes a slice of records to a Parquet file using struct
// schema inference.
func writeRows[T any](path string, data []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

func optionalRoles(roles []schema.Role) *string {
	if len(roles) == 0 {
		return nil
	}
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	joined := strings.Join(parts, "|")
	return &joined
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
