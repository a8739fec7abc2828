package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with diregram tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"diregram",
		version,
		server.WithToolCapabilities(true),
	)

	// Register tools
	s.AddTool(
		mcp.NewTool("diregram/verify",
			mcp.WithDescription("Verify a Diregram markdown document and report errors and warnings"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the Diregram markdown file")),
			mcp.WithBoolean("strict", mcp.Description("Also check metadata blocks against their JSON schemas")),
		),
		HandleVerify,
	)

	s.AddTool(
		mcp.NewTool("diregram/explain",
			mcp.WithDescription("Explain a diregram issue code"),
			mcp.WithString("code", mcp.Required(), mcp.Description("Issue code, e.g. MISSING_ACTOR_TAG")),
		),
		HandleExplain,
	)

	s.AddTool(
		mcp.NewTool("diregram/schema",
			mcp.WithDescription("Export the JSON Schema for a metadata block type"),
			mcp.WithString("type", mcp.Required(), mcp.Description("Block type: tag-store, data-objects, expanded-metadata, expanded-grid, or swimlane")),
		),
		HandleSchema,
	)

	return s
}
