// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout and exposes the
pipeline state read-only; stages still run through the CLI.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "biometry": {
        "command": "biometry",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  pipeline_status       Table row counts and recent CSV load runs
  get_device_summary    Summary statistics for one training device
  get_sequence_summary  Summary statistics for one test sequence
  list_summaries        Group summaries for the train or test set
  list_questions        Quiz questions, optionally by sequence

AVAILABLE RESOURCES:

  biometry://status          Pipeline table state
  biometry://bounds          Training normalization bounds
  biometry://train-summary   All training device summaries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
