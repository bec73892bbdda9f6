// ABOUTME: MCP resource implementations for the biometry pipeline.
// ABOUTME: Provides biometry://status, biometry://bounds, and biometry://train-summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
	"github.com/teambias/biometry-challenge/internal/summary"
)

func (s *Server) registerResources() {
	// biometry://status - table counts and recent load runs
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "biometry://status",
		Name:        "Pipeline Status",
		Description: "Row counts for every pipeline table plus recent CSV load runs",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	// biometry://bounds - training min-max bounds per statistic
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "biometry://bounds",
		Name:        "Training Normalization Bounds",
		Description: "Per-statistic min and max over the training summary table",
		MIMEType:    "application/json",
	}, s.handleBoundsResource)

	// biometry://train-summary - all training device summaries
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "biometry://train-summary",
		Name:        "Training Device Summaries",
		Description: "Summary statistics for every training device",
		MIMEType:    "application/json",
	}, s.handleTrainSummaryResource)
}

// Resource handlers

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}

func (s *Server) handleStatusResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handlePipelineStatus(ctx, nil, statusInput{})
	if err != nil {
		return nil, err
	}
	return jsonResource("biometry://status", out)
}

func (s *Server) handleBoundsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exists, err := s.db.TableExists(storage.TableTrainSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to check train summary: %w", err)
	}
	if !exists {
		return jsonResource("biometry://bounds", map[string]any{
			"message": "Training summary not built yet. Run the summarize stage first.",
		})
	}

	bounds, hasRows, err := summary.TrainingBounds(s.db, storage.TableTrainSummary, models.StatNames())
	if err != nil {
		return nil, fmt.Errorf("failed to compute bounds: %w", err)
	}
	if !hasRows {
		return jsonResource("biometry://bounds", map[string]any{
			"message": "Training summary is empty.",
		})
	}

	out := map[string]map[string]float64{}
	for _, col := range models.StatNames() {
		b := bounds[col]
		out[col] = map[string]float64{"min": b.Min, "max": b.Max}
	}
	return jsonResource("biometry://bounds", out)
}

func (s *Server) handleTrainSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exists, err := s.db.TableExists(storage.TableTrainSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to check train summary: %w", err)
	}
	if !exists {
		return jsonResource("biometry://train-summary", map[string]any{
			"message": "Training summary not built yet. Run the summarize stage first.",
		})
	}

	summaries, err := s.db.ListSummaries(storage.TableTrainSummary, storage.TrainKey, false, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list training summaries: %w", err)
	}

	out := make([]summaryOutput, len(summaries))
	for i, g := range summaries {
		out[i] = summaryOutput{
			Key: g.Key, Range: g.Range, Min: g.Min, Max: g.Max,
			Avg: g.Avg, Variance: g.Variance, Table: storage.TableTrainSummary,
		}
	}
	return jsonResource("biometry://train-summary", out)
}
