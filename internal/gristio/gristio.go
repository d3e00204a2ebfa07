// Package gristio loads planning snapshots from Grist documents, either a
// local .grist archive (a SQLite database) or the Grist REST API. It is a
// pure input boundary: rows come out as generic records and all typing and
// validation happens in the core builder.
package gristio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgviz/orgviz/internal/contract"
)

// Row is one source record: a mapping from column name to raw value.
// Loaders always include the row id under the "id" key.
type Row map[string]any

// Table is an ordered sequence of rows from one source table.
type Table struct {
	Name string
	Rows []Row
}

// Snapshot bundles the five tables the pipeline consumes, plus a label
// describing where they came from (for run summaries).
type Snapshot struct {
	Teams       Table
	People      Table
	Epics       Table
	Features    Table
	Assignments Table
	Source      string
}

// Get resolves a column on a row using the normalized-key matching rules
// shared with the builder: exact match first, then case/punctuation
// insensitive.
func (r Row) Get(column string) any {
	if v, ok := r[column]; ok {
		return v
	}
	want := contract.NormalizeKey(column)
	for k, v := range r {
		if contract.NormalizeKey(k) == want {
			return v
		}
	}
	return nil
}

// ID returns the row id as a canonical string, empty when absent.
func (r Row) ID() string {
	return contract.ParseRefID(r["id"])
}

// FindDefaultArchive returns the newest .grist file under dataDir, or an
// error when none exists.
func FindDefaultArchive(dataDir string) (string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("no data directory %q: %w", dataDir, err)
	}
	var best string
	var bestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".grist") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best = filepath.Join(dataDir, entry.Name())
			bestMod = mod
		}
	}
	if best == "" {
		return "", fmt.Errorf("no .grist file found in %q", dataDir)
	}
	return best, nil
}
