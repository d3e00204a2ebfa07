package gristio

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/orgviz/orgviz/internal/contract"
	_ "modernc.org/sqlite" // SQLite driver
)

// LoadArchive reads the five mapped tables out of a local .grist file.
// A .grist document is a SQLite database with one SQL table per user
// table, so a plain SELECT per table is all it takes.
func LoadArchive(path string, m *contract.Mapping) (*Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("grist archive not found at %q: %w", path, err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open grist archive %q: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	snap := &Snapshot{Source: fmt.Sprintf("file (%s)", path)}
	loads := []struct {
		table string
		dst   *Table
	}{
		{m.Tables.Teams, &snap.Teams},
		{m.Tables.People, &snap.People},
		{m.Tables.Epics, &snap.Epics},
		{m.Tables.Features, &snap.Features},
		{m.Tables.Assignments, &snap.Assignments},
	}
	for _, l := range loads {
		rows, err := readTable(db, l.table)
		if err != nil {
			return nil, err
		}
		*l.dst = Table{Name: l.table, Rows: rows}
	}
	return snap, nil
}

// readTable scans every row of one table into generic records, ordered by
// row id so snapshot order is stable across runs.
func readTable(db *sql.DB, table string) ([]Row, error) {
	// Table names come from the mapping config, not user row data, but
	// quote them anyway since Grist allows odd characters.
	query := fmt.Sprintf(`SELECT * FROM %q ORDER BY id`, table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("cannot read table %q from archive: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("cannot list columns of %q: %w", table, err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed on %q: %w", table, err)
		}
		record := make(Row, len(cols))
		for i, col := range cols {
			record[col] = normalizeSQLValue(values[i])
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iteration failed on %q: %w", table, err)
	}
	return out, nil
}

// normalizeSQLValue converts driver-specific scan results into the small
// set of value kinds the builder understands.
func normalizeSQLValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	default:
		return v
	}
}
