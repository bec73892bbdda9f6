// ABOUTME: Typed error kinds for the biometry store.
// ABOUTME: Schema, data-format, degenerate-range, and store-IO failures.
package storage

import "fmt"

// SchemaError reports a failed table or index creation/destruction:
// rejected DDL, an invalid identifier, or a missing table/column.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on %q: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// DataFormatError reports a source row that cannot be loaded: a field
// that does not parse as numeric or a wrong field count. Row is the
// 1-based data row number, header excluded.
type DataFormatError struct {
	Source string
	Row    int
	Err    error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("bad data in %s, row %d: %v", e.Source, e.Row, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// DegenerateRangeError reports a normalization column whose training
// bounds collapsed to a single value.
type DegenerateRangeError struct {
	Column string
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("degenerate range: column %q has identical min and max across training groups", e.Column)
}

// StoreIOError reports that the store or a source file could not be
// opened, or that disk I/O failed mid-operation.
type StoreIOError struct {
	Path string
	Err  error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("store I/O error on %s: %v", e.Path, e.Err)
}

func (e *StoreIOError) Unwrap() error { return e.Err }
