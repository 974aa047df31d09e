// Package mcp exposes omd's validation, detection and setup operations as
// MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// Options carries the directories the tool handlers resolve schemas and
// templates from.
type Options struct {
	SchemasDir   string
	TemplatesDir string
}

// NewOMDMCPServer creates an MCP server with all omd tools registered.
func NewOMDMCPServer(opts Options) *server.MCPServer {
	s := server.NewMCPServer(
		"omd",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, opts)

	return s
}
