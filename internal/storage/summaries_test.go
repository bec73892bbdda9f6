// ABOUTME: Tests for summary, question, and CSV export queries.
// ABOUTME: Seeds summary tables directly and reads them back.
package storage

import (
	"strings"
	"testing"

	"github.com/teambias/biometry-challenge/internal/models"
)

func seedSummary(t *testing.T, db *DB, table, key string) {
	t.Helper()
	spec := SummarySpec(table, key)
	if err := db.CreateTable(spec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	rows := [][]float64{
		// range, min, max, avg, variance, key
		{8, 1, 9, 14.0 / 3, 10.9, 1},
		{0, 1, 1, 1, 0, 2},
	}
	if _, err := db.BulkInsert(spec, rows); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
}

func TestListSummaries(t *testing.T) {
	db := setupTestDB(t)
	seedSummary(t, db, TableTrainSummary, TrainKey)

	summaries, err := db.ListSummaries(TableTrainSummary, TrainKey, false, 0)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Key != 1 || summaries[1].Key != 2 {
		t.Errorf("summaries not ordered by key: %d, %d", summaries[0].Key, summaries[1].Key)
	}
	if summaries[0].Range != 8 {
		t.Errorf("device 1 range = %v, want 8", summaries[0].Range)
	}
}

func TestGetSummary(t *testing.T) {
	db := setupTestDB(t)
	seedSummary(t, db, TableTrainSummary, TrainKey)

	g, err := db.GetSummary(TableTrainSummary, TrainKey, false, 2)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if g.Range != 0 || g.Min != 1 || g.Max != 1 {
		t.Errorf("device 2 summary = %+v, want range 0, min 1, max 1", g)
	}

	if _, err := db.GetSummary(TableTrainSummary, TrainKey, false, 99); err == nil {
		t.Error("expected error for missing group key")
	}
}

func TestListQuestions(t *testing.T) {
	db := setupTestDB(t)

	spec := QuestionsSpec()
	if err := db.CreateTable(spec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	rows := [][]float64{
		{1, 10, 3},
		{2, 10, 4},
		{3, 11, 3},
	}
	if _, err := db.BulkInsert(spec, rows); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	all, err := db.ListQuestions(nil, 0)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(all))
	}

	seq := int64(10)
	filtered, err := db.ListQuestions(&seq, 0)
	if err != nil {
		t.Fatalf("ListQuestions by sequence failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 questions for sequence 10, got %d", len(filtered))
	}
	for _, q := range filtered {
		if q.SequenceID != 10 {
			t.Errorf("question %d has SequenceId %d, want 10", q.QuestionID, q.SequenceID)
		}
	}
}

func TestExportSummaryCSV(t *testing.T) {
	db := setupTestDB(t)
	seedSummary(t, db, TableTrainSummary, TrainKey)

	var buf strings.Builder
	n, err := db.ExportSummaryCSV(&buf, TableTrainSummary, TrainKey, false)
	if err != nil {
		t.Fatalf("ExportSummaryCSV failed: %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d rows, want 2", n)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "range,min,max,avg,variance,Device" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",1") {
		t.Errorf("first data row should end with key 1: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "0,1,1,1,0,2") {
		t.Errorf("device 2 row = %q", lines[2])
	}
}

func TestExportNormalizedHeader(t *testing.T) {
	db := setupTestDB(t)

	spec := NormalizedSpec(TableTrainSummary+NormSuffix, TrainKey)
	if err := db.CreateTable(spec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if _, err := db.BulkInsert(spec, [][]float64{{1, 0, 1, 0.5, 0.25, 1}}); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	var buf strings.Builder
	if _, err := db.ExportSummaryCSV(&buf, TableTrainSummary+NormSuffix, TrainKey, true); err != nil {
		t.Fatalf("ExportSummaryCSV failed: %v", err)
	}
	header := strings.Split(strings.TrimSpace(buf.String()), "\n")[0]
	if header != "t_range,t_min,t_max,t_avg,t_variance,Device" {
		t.Errorf("normalized header = %q", header)
	}
}

func TestSummaryRoundTripValues(t *testing.T) {
	db := setupTestDB(t)
	seedSummary(t, db, TableTestSummary, TestKey)

	g, err := db.GetSummary(TableTestSummary, TestKey, false, 1)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	want := models.GroupSummary{Key: 1, Range: 8, Min: 1, Max: 9, Avg: 14.0 / 3, Variance: 10.9}
	if *g != want {
		t.Errorf("summary = %+v, want %+v", *g, want)
	}
}
