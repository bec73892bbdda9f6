// ABOUTME: Min-max normalization of summary tables against training bounds.
// ABOUTME: Bounds come from the training summary only and apply to both sides.
package summary

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teambias/biometry-challenge/internal/storage"
)

// DegeneratePolicy decides what happens when a statistic column's
// training bounds collapse to a single value.
type DegeneratePolicy int

const (
	// ZeroFill writes 0 for every row of a collapsed column.
	ZeroFill DegeneratePolicy = iota
	// Strict fails with DegenerateRangeError before writing anything.
	Strict
)

// Bound holds one statistic column's training-set extrema.
type Bound struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (b Bound) Span() float64 {
	return b.Max - b.Min
}

// TrainingBounds computes per-column min and max over every row of the
// training summary table. The second return is false when the table has
// no rows, in which case the bounds map is nil.
func TrainingBounds(db *storage.DB, table string, statCols []string) (map[string]Bound, bool, error) {
	qtable, err := storage.Ident(table)
	if err != nil {
		return nil, false, &storage.SchemaError{Table: table, Err: err}
	}

	selects := make([]string, 0, len(statCols)*2)
	for _, col := range statCols {
		qcol, err := storage.Ident(col)
		if err != nil {
			return nil, false, &storage.SchemaError{Table: table, Err: err}
		}
		selects = append(selects, "MIN("+qcol+")", "MAX("+qcol+")")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), qtable)

	scans := make([]sql.NullFloat64, len(statCols)*2)
	dests := make([]any, len(scans))
	for i := range scans {
		dests[i] = &scans[i]
	}
	if err := db.QueryRow(query).Scan(dests...); err != nil {
		return nil, false, &storage.SchemaError{Table: table, Err: err}
	}

	// MIN/MAX over zero rows are NULL
	if !scans[0].Valid {
		return nil, false, nil
	}

	bounds := make(map[string]Bound, len(statCols))
	for i, col := range statCols {
		bounds[col] = Bound{Min: scans[2*i].Float64, Max: scans[2*i+1].Float64}
	}
	return bounds, true, nil
}

// Normalize rebuilds the two normalized summary tables. Bounds are
// computed from trainTable alone and the identical affine transform
// (value - min) / (max - min) is applied to both trainTable and
// testTable; test values outside the training range land outside [0,1].
// Destination names are the source names with "_norm" appended, columns
// t_-prefixed, each row keeping its group key. With an empty training
// summary both destinations are rebuilt empty.
func Normalize(db *storage.DB, log *slog.Logger, statCols []string, trainTable, testTable, trainKey, testKey string, policy DegeneratePolicy) error {
	if log == nil {
		log = slog.Default()
	}

	bounds, hasRows, err := TrainingBounds(db, trainTable, statCols)
	if err != nil {
		return err
	}

	if hasRows && policy == Strict {
		for _, col := range statCols {
			if bounds[col].Span() == 0 {
				return &storage.DegenerateRangeError{Column: col}
			}
		}
	}

	targets := []struct {
		source string
		key    string
	}{
		{source: trainTable, key: trainKey},
		{source: testTable, key: testKey},
	}

	for _, tgt := range targets {
		dest := tgt.source + storage.NormSuffix
		if err := normalizeTable(db, log, statCols, bounds, hasRows, tgt.source, dest, tgt.key); err != nil {
			return err
		}
	}
	return nil
}

// normalizeTable rebuilds one destination and fills it by a single
// INSERT..SELECT, binding the training bounds as parameters.
func normalizeTable(db *storage.DB, log *slog.Logger, statCols []string, bounds map[string]Bound, hasRows bool, sourceTable, destTable, groupKey string) error {
	source, err := storage.Ident(sourceTable)
	if err != nil {
		return &storage.SchemaError{Table: sourceTable, Err: err}
	}
	key, err := storage.Ident(groupKey)
	if err != nil {
		return &storage.SchemaError{Table: sourceTable, Err: err}
	}

	spec := storage.NormalizedSpec(destTable, groupKey)
	if err := db.CreateTable(spec); err != nil {
		return err
	}
	if !hasRows {
		log.Info("normalized", "source", sourceTable, "dest", destTable, "rows", 0)
		return nil
	}

	dest, _ := storage.Ident(destTable)
	destCols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		destCols[i], _ = storage.Ident(c.Name)
	}

	exprs := make([]string, 0, len(statCols)+1)
	var args []any
	for _, col := range statCols {
		qcol, err := storage.Ident(col)
		if err != nil {
			return &storage.SchemaError{Table: sourceTable, Err: err}
		}
		b := bounds[col]
		if b.Span() == 0 {
			// ZeroFill policy: a collapsed column normalizes to 0
			exprs = append(exprs, "0.0")
			continue
		}
		exprs = append(exprs, fmt.Sprintf("(%s - ?) / ?", qcol))
		args = append(args, b.Min, b.Span())
	}
	exprs = append(exprs, key)

	query := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		dest, strings.Join(destCols, ", "), strings.Join(exprs, ", "), source)

	log.Debug("normalization query", "sql", query)

	res, err := db.Exec(query, args...)
	if err != nil {
		return &storage.SchemaError{Table: sourceTable, Err: err}
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("normalize %s: %w", sourceTable, err)
	}

	log.Info("normalized", "source", sourceTable, "dest", destTable, "rows", rows)
	return nil
}
