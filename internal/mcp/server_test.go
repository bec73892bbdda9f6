// ABOUTME: Tests for the MCP inspection surface.
// ABOUTME: Exercises tool and resource handlers directly over a seeded store.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
	"github.com/teambias/biometry-challenge/internal/summary"
)

func setupServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewServer(db)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s, db
}

// seedPipeline loads the two-device fixture and runs summarize + normalize.
func seedPipeline(t *testing.T, db *storage.DB) {
	t.Helper()
	spec := storage.TrainSpec()
	if err := db.CreateTable(spec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	rows := [][]float64{
		{1, 1, 0, 0, 1},
		{2, 2, 0, 0, 1},
		{3, 3, 0, 0, 1},
		{4, 0, 0, 1, 2},
	}
	if _, err := db.BulkInsert(spec, rows); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	testSpec := storage.TestSpec()
	if err := db.CreateTable(testSpec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if _, err := db.BulkInsert(testSpec, [][]float64{{1, 2, 0, 0, 100}}); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	if _, err := summary.Summarize(db, nil, storage.TableTrain, storage.TableTrainSummary, storage.TrainKey); err != nil {
		t.Fatalf("Summarize train failed: %v", err)
	}
	if _, err := summary.Summarize(db, nil, storage.TableTest, storage.TableTestSummary, storage.TestKey); err != nil {
		t.Fatalf("Summarize test failed: %v", err)
	}
	if err := summary.Normalize(db, nil, models.StatNames(),
		storage.TableTrainSummary, storage.TableTestSummary,
		storage.TrainKey, storage.TestKey, summary.ZeroFill); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
}

func TestPipelineStatusEmptyStore(t *testing.T) {
	s, _ := setupServer(t)

	_, out, err := s.handlePipelineStatus(context.Background(), nil, statusInput{})
	if err != nil {
		t.Fatalf("pipeline_status failed: %v", err)
	}
	if len(out.Tables) != 7 {
		t.Fatalf("expected 7 table entries, got %d", len(out.Tables))
	}
	for _, st := range out.Tables {
		if st.Exists {
			t.Errorf("table %s should not exist in an empty store", st.Table)
		}
	}
}

func TestPipelineStatusSeeded(t *testing.T) {
	s, db := setupServer(t)
	seedPipeline(t, db)

	_, out, err := s.handlePipelineStatus(context.Background(), nil, statusInput{})
	if err != nil {
		t.Fatalf("pipeline_status failed: %v", err)
	}

	counts := map[string]int64{}
	for _, st := range out.Tables {
		if st.Exists {
			counts[st.Table] = st.Rows
		}
	}
	if counts[storage.TableTrain] != 4 {
		t.Errorf("train rows = %d, want 4", counts[storage.TableTrain])
	}
	if counts[storage.TableTrainSummary] != 2 {
		t.Errorf("train_summary rows = %d, want 2", counts[storage.TableTrainSummary])
	}
	if counts[storage.TableTrainSummary+storage.NormSuffix] != 2 {
		t.Errorf("train_summary_norm rows = %d, want 2", counts[storage.TableTrainSummary+storage.NormSuffix])
	}
}

func TestGetDeviceSummary(t *testing.T) {
	s, db := setupServer(t)
	seedPipeline(t, db)

	_, out, err := s.handleGetDeviceSummary(context.Background(), nil, getSummaryInput{Key: 1})
	if err != nil {
		t.Fatalf("get_device_summary failed: %v", err)
	}
	if out.Range != 8 || out.Min != 1 || out.Max != 9 {
		t.Errorf("device 1 summary = %+v", out)
	}

	// Normalized variant reads the _norm table
	_, norm, err := s.handleGetDeviceSummary(context.Background(), nil, getSummaryInput{Key: 1, Normalized: true})
	if err != nil {
		t.Fatalf("normalized get_device_summary failed: %v", err)
	}
	if norm.Range != 1 {
		t.Errorf("normalized device 1 range = %v, want 1", norm.Range)
	}

	// Missing device errors
	if _, _, err := s.handleGetDeviceSummary(context.Background(), nil, getSummaryInput{Key: 99}); err == nil {
		t.Error("expected error for missing device")
	}
}

func TestGetSequenceSummary(t *testing.T) {
	s, db := setupServer(t)
	seedPipeline(t, db)

	_, out, err := s.handleGetSequenceSummary(context.Background(), nil, getSummaryInput{Key: 100})
	if err != nil {
		t.Fatalf("get_sequence_summary failed: %v", err)
	}
	if out.Avg != 4 {
		t.Errorf("sequence 100 avg = %v, want 4", out.Avg)
	}
}

func TestListSummaries(t *testing.T) {
	s, db := setupServer(t)
	seedPipeline(t, db)

	_, out, err := s.handleListSummaries(context.Background(), nil, listSummariesInput{Set: "train"})
	if err != nil {
		t.Fatalf("list_summaries failed: %v", err)
	}
	summaries, ok := out.([]summaryOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if len(summaries) != 2 {
		t.Errorf("expected 2 summaries, got %d", len(summaries))
	}

	// Invalid set is rejected
	if _, _, err := s.handleListSummaries(context.Background(), nil, listSummariesInput{Set: "validation"}); err == nil {
		t.Error("expected error for invalid set")
	}
}

func TestListQuestions(t *testing.T) {
	s, db := setupServer(t)

	spec := storage.QuestionsSpec()
	if err := db.CreateTable(spec); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if _, err := db.BulkInsert(spec, [][]float64{{1, 10, 3}, {2, 11, 4}}); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	_, out, err := s.handleListQuestions(context.Background(), nil, listQuestionsInput{})
	if err != nil {
		t.Fatalf("list_questions failed: %v", err)
	}
	questions, ok := out.([]questionOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}

	seq := int64(10)
	_, out, err = s.handleListQuestions(context.Background(), nil, listQuestionsInput{SequenceID: &seq})
	if err != nil {
		t.Fatalf("filtered list_questions failed: %v", err)
	}
	questions, ok = out.([]questionOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if len(questions) != 1 || questions[0].QuizDevice != 3 {
		t.Errorf("filtered questions = %+v", questions)
	}
}

func TestBoundsResource(t *testing.T) {
	s, db := setupServer(t)
	seedPipeline(t, db)

	res, err := s.handleBoundsResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("bounds resource failed: %v", err)
	}
	if len(res.Contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(res.Contents))
	}
	text := res.Contents[0].Text
	if !strings.Contains(text, `"range"`) || !strings.Contains(text, `"max": 8`) {
		t.Errorf("bounds resource missing range bounds: %s", text)
	}
}

func TestBoundsResourceBeforeSummarize(t *testing.T) {
	s, _ := setupServer(t)

	res, err := s.handleBoundsResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("bounds resource failed: %v", err)
	}
	if !strings.Contains(res.Contents[0].Text, "not built yet") {
		t.Errorf("expected not-built message, got %s", res.Contents[0].Text)
	}
}

func TestTrainSummaryResource(t *testing.T) {
	s, db := setupServer(t)
	seedPipeline(t, db)

	res, err := s.handleTrainSummaryResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("train-summary resource failed: %v", err)
	}
	text := res.Contents[0].Text
	if !strings.Contains(text, `"key": 1`) || !strings.Contains(text, `"key": 2`) {
		t.Errorf("train-summary resource missing devices: %s", text)
	}
}
