// Package mcpserver exposes the duplicate finders as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with the clonehound tools registered.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server exposing the three duplicate finders.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "clonehound",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "find_exact_duplicates",
		Description: "Find byte-identical functions across source files. " +
			"Groups functions whose normalized text hashes collide; a group " +
			"lists every file containing the duplicated function.",
	}, handleFindExactDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "find_near_duplicates",
		Description: "Find textually near-identical functions using bucketed " +
			"pairwise bigram similarity. Reports pairs scoring at or above " +
			"the threshold (default 0.8), grouped per source function.",
	}, handleFindNearDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "find_structural_duplicates",
		Description: "Find structurally identical functions that differ only " +
			"in identifier names and literal values. Functions are " +
			"canonicalized before hashing so renamed copies group together.",
	}, handleFindStructuralDuplicates)
}
