// ABOUTME: LoadRun model for the ingestion audit trail.
// ABOUTME: One record per bulk load, append-only across re-ingestions.
package models

import (
	"time"

	"github.com/google/uuid"
)

// LoadRun records one bulk load of a CSV source into a raw table.
type LoadRun struct {
	ID       uuid.UUID
	Table    string
	Source   string
	Rows     int
	LoadedAt time.Time
}

// NewLoadRun creates a load-run record stamped with the current time.
func NewLoadRun(table, source string, rows int) *LoadRun {
	return &LoadRun{
		ID:       uuid.New(),
		Table:    table,
		Source:   source,
		Rows:     rows,
		LoadedAt: time.Now().UTC(),
	}
}
