package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/omdtools/omd/internal/adapters/outbound/detector"
	"github.com/omdtools/omd/internal/adapters/outbound/fragments"
	"github.com/omdtools/omd/internal/adapters/outbound/generator"
	"github.com/omdtools/omd/internal/adapters/outbound/gitinfo"
	"github.com/omdtools/omd/internal/adapters/outbound/metadata"
	"github.com/omdtools/omd/internal/adapters/outbound/schema"
	"github.com/omdtools/omd/internal/application"
)

// registerTools registers all omd MCP tools on the given server.
func registerTools(s *server.MCPServer, opts Options) {
	s.AddTool(
		mcplib.NewTool("omd_validate",
			mcplib.WithDescription("Validate a repository's .omd configuration against the organization's schemas. Returns the full validation result as JSON."),
			mcplib.WithString("path", mcplib.Required(), mcplib.Description("Absolute path to the repository root")),
		),
		handleValidate(opts),
	)

	s.AddTool(
		mcplib.NewTool("omd_detect",
			mcplib.WithDescription("Detect a repository's languages, types and CI platform from its file tree. Returns the detected metadata as JSON."),
			mcplib.WithString("path", mcplib.Required(), mcplib.Description("Absolute path to the repository root")),
		),
		handleDetect(),
	)

	s.AddTool(
		mcplib.NewTool("omd_resolve",
			mcplib.WithDescription("Return the repository's effective configuration: .omd/repository.yaml with .omd/overrides.yaml applied."),
			mcplib.WithString("path", mcplib.Required(), mcplib.Description("Absolute path to the repository root")),
		),
		handleResolve(),
	)

	s.AddTool(
		mcplib.NewTool("omd_setup",
			mcplib.WithDescription("Scaffold workspace configuration for a repository, detecting metadata first when none exists. Returns the files generated."),
			mcplib.WithString("path", mcplib.Required(), mcplib.Description("Absolute path to the repository root")),
		),
		handleSetup(opts),
	)
}

func newSetupService(opts Options) *application.SetupService {
	return application.NewSetupService(
		metadata.New(),
		detector.New(gitinfo.New()),
		generator.New(fragments.New(opts.TemplatesDir)),
	)
}

func handleValidate(opts Options) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoPath, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		validator, err := schema.Load(opts.SchemasDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading schemas: %v", err)), nil
		}

		result := application.NewValidateService(metadata.New(), validator).ValidateRepository(repoPath)
		return jsonResult(result)
	}
}

func handleDetect() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoPath, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		meta, err := detector.New(gitinfo.New()).Detect(repoPath)
		if err != nil {
			return errorResult(fmt.Sprintf("detection failed: %v", err)), nil
		}
		return jsonResult(meta)
	}
}

func handleResolve() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoPath, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		resolved, err := newSetupService(Options{}).ResolveRepository(repoPath)
		if err != nil {
			return errorResult(fmt.Sprintf("resolve failed: %v", err)), nil
		}
		return jsonResult(resolved)
	}
}

func handleSetup(opts Options) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoPath, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newSetupService(opts).Setup(repoPath, io.Discard)
		if err != nil {
			return errorResult(fmt.Sprintf("setup failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// jsonResult marshals v and wraps it as text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
