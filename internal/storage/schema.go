// ABOUTME: Table and column specs kept as data, not interpolated SQL.
// ABOUTME: Identifier validation plus the fixed raw and summary schemas.
package storage

import (
	"fmt"
	"regexp"

	"github.com/teambias/biometry-challenge/internal/models"
)

// Table names persisted in the store.
const (
	TableQuestions    = "questions"
	TableTest         = "test"
	TableTrain        = "train"
	TableTrainSummary = "train_summary"
	TableTestSummary  = "test_summary"

	// NormSuffix derives a normalized table name from its summary table.
	NormSuffix = "_norm"
)

// Group key columns.
const (
	TrainKey = "Device"
	TestKey  = "SequenceId"
)

// ColumnType is a SQLite column affinity.
type ColumnType string

const (
	Integer ColumnType = "INTEGER"
	Real    ColumnType = "REAL"
)

// Column is one (name, type) pair of a table spec.
type Column struct {
	Name string
	Type ColumnType
}

// TableSpec describes a table as data: ordered columns plus the columns
// that get single-column indexes. All DDL is generated from specs so
// identifiers never come from uncontrolled input.
type TableSpec struct {
	Name      string
	Columns   []Column
	IndexKeys []string
}

// ColumnNames returns the column names in declaration order.
func (t TableSpec) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks every identifier in the spec.
func (t TableSpec) Validate() error {
	if err := ValidIdent(t.Name); err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %q has no columns", t.Name)
	}
	for _, c := range t.Columns {
		if err := ValidIdent(c.Name); err != nil {
			return err
		}
		if c.Type != Integer && c.Type != Real {
			return fmt.Errorf("column %q has unknown type %q", c.Name, c.Type)
		}
	}
	for _, k := range t.IndexKeys {
		if err := ValidIdent(k); err != nil {
			return err
		}
	}
	return nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent rejects anything but a plain SQL identifier.
func ValidIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// Ident validates and quotes an identifier for use in generated SQL.
// "range" and "min" are SQL keywords, so everything gets quoted.
func Ident(name string) (string, error) {
	if err := ValidIdent(name); err != nil {
		return "", err
	}
	return `"` + name + `"`, nil
}

// QuestionsSpec describes the question mapping table.
func QuestionsSpec() TableSpec {
	return TableSpec{
		Name: TableQuestions,
		Columns: []Column{
			{Name: "QuestionId", Type: Integer},
			{Name: "SequenceId", Type: Integer},
			{Name: "QuizDevice", Type: Integer},
		},
		IndexKeys: []string{"SequenceId", "QuizDevice"},
	}
}

// TestSpec describes the raw test readings table, grouped by SequenceId.
func TestSpec() TableSpec {
	return TableSpec{
		Name: TableTest,
		Columns: []Column{
			{Name: "T", Type: Integer},
			{Name: "X", Type: Real},
			{Name: "Y", Type: Real},
			{Name: "Z", Type: Real},
			{Name: TestKey, Type: Integer},
		},
		IndexKeys: []string{TestKey},
	}
}

// TrainSpec describes the raw training readings table, grouped by Device.
func TrainSpec() TableSpec {
	return TableSpec{
		Name: TableTrain,
		Columns: []Column{
			{Name: "T", Type: Integer},
			{Name: "X", Type: Real},
			{Name: "Y", Type: Real},
			{Name: "Z", Type: Real},
			{Name: TrainKey, Type: Integer},
		},
		IndexKeys: []string{TrainKey},
	}
}

// SummarySpec describes a per-group summary table: the five statistics
// in order, then the integer group key.
func SummarySpec(name, groupKey string) TableSpec {
	cols := make([]Column, 0, len(models.AllStats)+1)
	for _, s := range models.AllStats {
		cols = append(cols, Column{Name: string(s), Type: Real})
	}
	cols = append(cols, Column{Name: groupKey, Type: Integer})
	return TableSpec{Name: name, Columns: cols}
}

// NormalizedSpec describes a normalized summary table: t_-prefixed
// statistics, then the original group key.
func NormalizedSpec(name, groupKey string) TableSpec {
	cols := make([]Column, 0, len(models.AllStats)+1)
	for _, s := range models.AllStats {
		cols = append(cols, Column{Name: s.NormalizedName(), Type: Real})
	}
	cols = append(cols, Column{Name: groupKey, Type: Integer})
	return TableSpec{Name: name, Columns: cols}
}
