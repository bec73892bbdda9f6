// ABOUTME: Load-run audit trail for CSV ingestion.
// ABOUTME: Append-only records that survive table rebuilds.
package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambias/biometry-challenge/internal/models"
)

// initAuditSchema creates the load_runs audit table. Unlike the pipeline
// tables, load_runs is never rebuilt.
func (d *DB) initAuditSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS load_runs (
		id TEXT PRIMARY KEY,
		table_name TEXT NOT NULL,
		source TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		loaded_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_load_runs_loaded ON load_runs(loaded_at DESC);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return &SchemaError{Table: "load_runs", Err: err}
	}
	return nil
}

// RecordLoadRun appends one audit record for a completed bulk load.
func (d *DB) RecordLoadRun(r *models.LoadRun) error {
	query := `
		INSERT INTO load_runs (id, table_name, source, row_count, loaded_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		r.ID.String(),
		r.Table,
		r.Source,
		r.Rows,
		r.LoadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record load run: %w", err)
	}
	return nil
}

// ListLoadRuns returns recent load runs, most recent first.
func (d *DB) ListLoadRuns(limit int) ([]*models.LoadRun, error) {
	query := `
		SELECT id, table_name, source, row_count, loaded_at
		FROM load_runs
		ORDER BY loaded_at DESC, id
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list load runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.LoadRun
	for rows.Next() {
		var (
			r        models.LoadRun
			id       string
			loadedAt string
		)
		if err := rows.Scan(&id, &r.Table, &r.Source, &r.Rows, &loadedAt); err != nil {
			return nil, fmt.Errorf("scan load run: %w", err)
		}
		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse load run id: %w", err)
		}
		r.LoadedAt, err = time.Parse(time.RFC3339, loadedAt)
		if err != nil {
			return nil, fmt.Errorf("parse load run time: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}
