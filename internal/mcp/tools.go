// ABOUTME: MCP tool implementations for pipeline inspection.
// ABOUTME: Read-only queries over raw, summary, and normalized tables.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
)

func (s *Server) registerTools() {
	// pipeline_status
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "pipeline_status",
		Description: "Row counts for every pipeline table plus recent CSV load runs",
	}, s.handlePipelineStatus)

	// get_device_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_device_summary",
		Description: "Summary statistics for one training device, raw or normalized",
	}, s.handleGetDeviceSummary)

	// get_sequence_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_sequence_summary",
		Description: "Summary statistics for one test sequence, raw or normalized",
	}, s.handleGetSequenceSummary)

	// list_summaries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_summaries",
		Description: "List group summaries for the train or test set",
	}, s.handleListSummaries)

	// list_questions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_questions",
		Description: "List quiz questions, optionally filtered by sequence",
	}, s.handleListQuestions)
}

// Tool input/output types

type statusInput struct{}

type tableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`
	Rows   int64  `json:"rows"`
}

type loadRunOutput struct {
	ID       string `json:"id"`
	Table    string `json:"table"`
	Source   string `json:"source"`
	Rows     int    `json:"rows"`
	LoadedAt string `json:"loaded_at"`
}

type statusOutput struct {
	Database string          `json:"database"`
	Tables   []tableStatus   `json:"tables"`
	LoadRuns []loadRunOutput `json:"load_runs,omitempty"`
}

type getSummaryInput struct {
	Key        int64 `json:"key" jsonschema:"Group key (Device for train, SequenceId for test)"`
	Normalized bool  `json:"normalized,omitempty" jsonschema:"Read the normalized table instead of the raw summary"`
}

type summaryOutput struct {
	Key      int64   `json:"key"`
	Range    float64 `json:"range"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Avg      float64 `json:"avg"`
	Variance float64 `json:"variance"`
	Table    string  `json:"table"`
}

type listSummariesInput struct {
	Set        string `json:"set" jsonschema:"Dataset side: train or test"`
	Normalized bool   `json:"normalized,omitempty" jsonschema:"Read the normalized table instead of the raw summary"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 50)"`
}

type listQuestionsInput struct {
	SequenceID *int64 `json:"sequence_id,omitempty" jsonschema:"Filter by test sequence"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 50)"`
}

type questionOutput struct {
	QuestionID int64 `json:"question_id"`
	SequenceID int64 `json:"sequence_id"`
	QuizDevice int64 `json:"quiz_device"`
}

// pipelineTables lists every table the status surface reports on.
var pipelineTables = []string{
	storage.TableQuestions,
	storage.TableTest,
	storage.TableTrain,
	storage.TableTrainSummary,
	storage.TableTestSummary,
	storage.TableTrainSummary + storage.NormSuffix,
	storage.TableTestSummary + storage.NormSuffix,
}

func (s *Server) handlePipelineStatus(ctx context.Context, req *mcp.CallToolRequest, input statusInput) (*mcp.CallToolResult, statusOutput, error) {
	out := statusOutput{Database: s.db.Path()}

	for _, table := range pipelineTables {
		st := tableStatus{Table: table}
		exists, err := s.db.TableExists(table)
		if err != nil {
			return nil, statusOutput{}, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		st.Exists = exists
		if exists {
			n, err := s.db.RowCount(table)
			if err != nil {
				return nil, statusOutput{}, fmt.Errorf("failed to count %s: %w", table, err)
			}
			st.Rows = n
		}
		out.Tables = append(out.Tables, st)
	}

	runs, err := s.db.ListLoadRuns(10)
	if err != nil {
		return nil, statusOutput{}, fmt.Errorf("failed to list load runs: %w", err)
	}
	for _, r := range runs {
		out.LoadRuns = append(out.LoadRuns, loadRunOutput{
			ID:       r.ID.String()[:8],
			Table:    r.Table,
			Source:   r.Source,
			Rows:     r.Rows,
			LoadedAt: r.LoadedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return nil, out, nil
}

func summaryTable(set models.Set, normalized bool) (table, key string) {
	if set == models.SetTrain {
		table, key = storage.TableTrainSummary, storage.TrainKey
	} else {
		table, key = storage.TableTestSummary, storage.TestKey
	}
	if normalized {
		table += storage.NormSuffix
	}
	return table, key
}

func (s *Server) getSummary(set models.Set, input getSummaryInput) (summaryOutput, error) {
	table, key := summaryTable(set, input.Normalized)
	g, err := s.db.GetSummary(table, key, input.Normalized, input.Key)
	if err != nil {
		return summaryOutput{}, err
	}
	return summaryOutput{
		Key:      g.Key,
		Range:    g.Range,
		Min:      g.Min,
		Max:      g.Max,
		Avg:      g.Avg,
		Variance: g.Variance,
		Table:    table,
	}, nil
}

func (s *Server) handleGetDeviceSummary(ctx context.Context, req *mcp.CallToolRequest, input getSummaryInput) (*mcp.CallToolResult, summaryOutput, error) {
	out, err := s.getSummary(models.SetTrain, input)
	if err != nil {
		return nil, summaryOutput{}, fmt.Errorf("failed to get device summary: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleGetSequenceSummary(ctx context.Context, req *mcp.CallToolRequest, input getSummaryInput) (*mcp.CallToolResult, summaryOutput, error) {
	out, err := s.getSummary(models.SetTest, input)
	if err != nil {
		return nil, summaryOutput{}, fmt.Errorf("failed to get sequence summary: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleListSummaries(ctx context.Context, req *mcp.CallToolRequest, input listSummariesInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidSet(input.Set) {
		return nil, nil, fmt.Errorf("unknown set: %s (use train or test)", input.Set)
	}
	if input.Limit <= 0 {
		input.Limit = 50
	}

	table, key := summaryTable(models.Set(input.Set), input.Normalized)
	summaries, err := s.db.ListSummaries(table, key, input.Normalized, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	if len(summaries) == 0 {
		return nil, map[string]any{"message": "No summaries found. Run the summarize stage first."}, nil
	}

	out := make([]summaryOutput, len(summaries))
	for i, g := range summaries {
		out[i] = summaryOutput{
			Key: g.Key, Range: g.Range, Min: g.Min, Max: g.Max,
			Avg: g.Avg, Variance: g.Variance, Table: table,
		}
	}
	return nil, out, nil
}

func (s *Server) handleListQuestions(ctx context.Context, req *mcp.CallToolRequest, input listQuestionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}

	questions, err := s.db.ListQuestions(input.SequenceID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list questions: %w", err)
	}

	if len(questions) == 0 {
		return nil, map[string]any{"message": "No questions found."}, nil
	}

	out := make([]questionOutput, len(questions))
	for i, q := range questions {
		out[i] = questionOutput{
			QuestionID: q.QuestionID,
			SequenceID: q.SequenceID,
			QuizDevice: q.QuizDevice,
		}
	}
	return nil, out, nil
}
