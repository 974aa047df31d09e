package cli

import (
	mcpadapter "github.com/omdtools/omd/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the omd MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		schemasDir   string
		templatesDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start omd MCP server (stdio)",
		Long:  "Start the omd MCP server using stdio transport. This allows AI coding assistants to validate, detect and scaffold repository configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewOMDMCPServer(mcpadapter.Options{
				SchemasDir:   schemasDir,
				TemplatesDir: templatesDir,
			})
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&schemasDir, "schemas", defaultSchemasDir(), "Directory holding validation schemas")
	cmd.Flags().StringVar(&templatesDir, "templates", defaultTemplatesDir(), "Directory holding fragment templates")

	return cmd
}
