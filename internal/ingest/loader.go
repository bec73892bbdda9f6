// ABOUTME: CSV bulk loader for raw reading tables.
// ABOUTME: Rebuilds the target table, then loads all data rows in one transaction.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/teambias/biometry-challenge/internal/storage"
)

// Loader bulk-loads delimited-text sources into store tables.
type Loader struct {
	db  *storage.DB
	log *slog.Logger
}

// NewLoader creates a loader writing to db and logging to log.
func NewLoader(db *storage.DB, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{db: db, log: log}
}

// Load rebuilds spec's table and loads every data row of the CSV at
// path into it. The first row is a header and is discarded without
// validation; every field of every other row is parsed as float64
// regardless of the declared column type. Any bad row fails the whole
// load and rolls back, leaving the rebuilt table empty. Returns the
// number of data rows loaded.
func (l *Loader) Load(spec storage.TableSpec, path string) (int, error) {
	l.log.Debug("rebuilding table", "table", spec.Name)
	if err := l.db.CreateTable(spec); err != nil {
		return 0, err
	}

	rows, err := readRows(path, len(spec.Columns))
	if err != nil {
		return 0, err
	}

	n, err := l.db.BulkInsert(spec, rows)
	if err != nil {
		return 0, err
	}
	l.log.Info("loaded csv", "table", spec.Name, "source", path, "rows", n)
	return n, nil
}

// readRows parses the CSV at path into float64 tuples of the given
// width, discarding the header row.
func readRows(path string, fields int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &storage.StoreIOError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Header width is not validated against the schema
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, &storage.DataFormatError{Source: path, Row: 0, Err: fmt.Errorf("missing header row")}
		}
		return nil, &storage.DataFormatError{Source: path, Row: 0, Err: err}
	}

	var rows [][]float64
	for row := 1; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &storage.DataFormatError{Source: path, Row: row, Err: err}
		}
		if len(record) != fields {
			return nil, &storage.DataFormatError{
				Source: path,
				Row:    row,
				Err:    fmt.Errorf("got %d fields, want %d", len(record), fields),
			}
		}

		values := make([]float64, fields)
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &storage.DataFormatError{
					Source: path,
					Row:    row,
					Err:    fmt.Errorf("field %d: %w", i+1, err),
				}
			}
			values[i] = v
		}
		rows = append(rows, values)
	}
	return rows, nil
}
