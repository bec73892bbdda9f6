// ABOUTME: Read queries over summary, normalized summary, and question tables.
// ABOUTME: Serves the status command, CSV export, and the MCP surface.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/teambias/biometry-challenge/internal/models"
)

// summaryColumns returns the quoted statistic column names for a summary
// table, t_-prefixed when normalized.
func summaryColumns(normalized bool) []string {
	cols := make([]string, 0, len(models.AllStats))
	for _, s := range models.AllStats {
		name := string(s)
		if normalized {
			name = s.NormalizedName()
		}
		q, _ := Ident(name)
		cols = append(cols, q)
	}
	return cols
}

// ListSummaries returns summary rows ordered by group key. The table's
// statistic columns are plain for summary tables and t_-prefixed for
// normalized ones.
func (d *DB) ListSummaries(table, groupKey string, normalized bool, limit int) ([]*models.GroupSummary, error) {
	qtable, err := Ident(table)
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}
	qkey, err := Ident(groupKey)
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		strings.Join(summaryColumns(normalized), ", "), qkey, qtable, qkey)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}
	defer rows.Close()

	var out []*models.GroupSummary
	for rows.Next() {
		var g models.GroupSummary
		if err := rows.Scan(&g.Range, &g.Min, &g.Max, &g.Avg, &g.Variance, &g.Key); err != nil {
			return nil, fmt.Errorf("scan summary row from %s: %w", table, err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

// GetSummary returns the summary row for one group key.
func (d *DB) GetSummary(table, groupKey string, normalized bool, key int64) (*models.GroupSummary, error) {
	qtable, err := Ident(table)
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}
	qkey, err := Ident(groupKey)
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ?",
		strings.Join(summaryColumns(normalized), ", "), qkey, qtable, qkey)

	var g models.GroupSummary
	err = d.db.QueryRow(query, key).Scan(&g.Range, &g.Min, &g.Max, &g.Avg, &g.Variance, &g.Key)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no summary in %s for %s = %d", table, groupKey, key)
	}
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}
	return &g, nil
}

// ListQuestions returns question rows, optionally filtered by sequence.
func (d *DB) ListQuestions(sequenceID *int64, limit int) ([]*models.Question, error) {
	query := `
		SELECT "QuestionId", "SequenceId", "QuizDevice"
		FROM "questions"
	`
	var args []any
	if sequenceID != nil {
		query += ` WHERE "SequenceId" = ?`
		args = append(args, *sequenceID)
	}
	query += ` ORDER BY "QuestionId"`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, &SchemaError{Table: TableQuestions, Err: err}
	}
	defer rows.Close()

	var out []*models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.QuestionID, &q.SequenceID, &q.QuizDevice); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}
