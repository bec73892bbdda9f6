// ABOUTME: Shared test helpers for aggregation and normalization tests.
// ABOUTME: Seeds raw sample tables from (X, Y, Z, key) tuples.
package summary

import (
	"path/filepath"
	"testing"

	"github.com/teambias/biometry-challenge/internal/storage"
)

func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type sample struct {
	x, y, z float64
	key     int64
}

func seedSamples(t *testing.T, db *storage.DB, spec storage.TableSpec, samples []sample) {
	t.Helper()
	if err := db.CreateTable(spec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	rows := make([][]float64, len(samples))
	for i, s := range samples {
		rows[i] = []float64{float64(i + 1), s.x, s.y, s.z, float64(s.key)}
	}
	if _, err := db.BulkInsert(spec, rows); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
}

// twoDeviceTrainingSet is the canonical acceptance fixture: Device 1 has
// magnitudes 1, 4, 9 and Device 2 has a single magnitude 1.
var twoDeviceTrainingSet = []sample{
	{x: 1, y: 0, z: 0, key: 1},
	{x: 2, y: 0, z: 0, key: 1},
	{x: 3, y: 0, z: 0, key: 1},
	{x: 0, y: 0, z: 1, key: 2},
}
