// ABOUTME: MCP server setup for the biometry pipeline store.
// ABOUTME: Wraps the MCP server with a read-only storage connection.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/teambias/biometry-challenge/internal/storage"
)

// Server wraps the MCP server with storage access. The surface is
// read-only; pipeline stages run through the CLI.
type Server struct {
	mcpServer *mcp.Server
	db        *storage.DB
}

// NewServer creates a new MCP server over the given store.
func NewServer(db *storage.DB) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "biometry",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
