// ABOUTME: Schema manager, index builder, and bulk insert over table specs.
// ABOUTME: All DDL/DML is generated from validated specs with bound values.
package storage

import (
	"fmt"
	"strings"
)

// CreateTable drops any existing table of the spec's name and recreates
// it with the spec's columns in order. Destructive by contract.
func (d *DB) CreateTable(spec TableSpec) error {
	if err := spec.Validate(); err != nil {
		return &SchemaError{Table: spec.Name, Err: err}
	}

	table, _ := Ident(spec.Name)
	if _, err := d.db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
		return &SchemaError{Table: spec.Name, Err: err}
	}

	defs := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		col, _ := Ident(c.Name)
		defs[i] = col + " " + string(c.Type)
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
	if _, err := d.db.Exec(ddl); err != nil {
		return &SchemaError{Table: spec.Name, Err: err}
	}
	return nil
}

// IndexName returns the canonical name for a single-column index.
func IndexName(table, key string) string {
	return fmt.Sprintf("idx_%s_%s", table, key)
}

// EnsureIndex drops and recreates the canonical single-column index on
// (table, key). A missing table or column is a SchemaError.
func (d *DB) EnsureIndex(table, key string) error {
	qtable, err := Ident(table)
	if err != nil {
		return &SchemaError{Table: table, Err: err}
	}
	qkey, err := Ident(key)
	if err != nil {
		return &SchemaError{Table: table, Err: err}
	}
	qname, err := Ident(IndexName(table, key))
	if err != nil {
		return &SchemaError{Table: table, Err: err}
	}

	if _, err := d.db.Exec("DROP INDEX IF EXISTS " + qname); err != nil {
		return &SchemaError{Table: table, Err: err}
	}
	ddl := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", qname, qtable, qkey)
	if _, err := d.db.Exec(ddl); err != nil {
		return &SchemaError{Table: table, Err: err}
	}
	return nil
}

// BulkInsert inserts all rows into the spec's table in one transaction.
// Row values are bound positionally in column order; a failure rolls
// back every row.
func (d *DB) BulkInsert(spec TableSpec, rows [][]float64) (int, error) {
	if err := spec.Validate(); err != nil {
		return 0, &SchemaError{Table: spec.Name, Err: err}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	table, _ := Ident(spec.Name)
	cols := make([]string, len(spec.Columns))
	marks := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i], _ = Ident(c.Name)
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))

	tx, err := d.db.Begin()
	if err != nil {
		return 0, &StoreIOError{Path: d.dbPath, Err: err}
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return 0, &SchemaError{Table: spec.Name, Err: err}
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != len(spec.Columns) {
			_ = tx.Rollback()
			return 0, &DataFormatError{
				Source: spec.Name,
				Row:    i + 1,
				Err:    fmt.Errorf("got %d fields, want %d", len(row), len(spec.Columns)),
			}
		}
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return 0, &StoreIOError{Path: d.dbPath, Err: fmt.Errorf("insert into %s row %d: %w", spec.Name, i+1, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &StoreIOError{Path: d.dbPath, Err: err}
	}
	return len(rows), nil
}

// RowCount returns the number of rows in a table.
func (d *DB) RowCount(table string) (int64, error) {
	qtable, err := Ident(table)
	if err != nil {
		return 0, &SchemaError{Table: table, Err: err}
	}
	var n int64
	if err := d.db.QueryRow("SELECT COUNT(*) FROM " + qtable).Scan(&n); err != nil {
		return 0, &SchemaError{Table: table, Err: err}
	}
	return n, nil
}

// TableExists reports whether a table of the given name exists.
func (d *DB) TableExists(table string) (bool, error) {
	var n int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, &StoreIOError{Path: d.dbPath, Err: err}
	}
	return n > 0, nil
}

// IndexExists reports whether an index of the given name exists.
func (d *DB) IndexExists(name string) (bool, error) {
	var n int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", name).Scan(&n)
	if err != nil {
		return false, &StoreIOError{Path: d.dbPath, Err: err}
	}
	return n > 0, nil
}
