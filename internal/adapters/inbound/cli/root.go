package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "omd",
		Short:         "Repository workspace scaffolding and validation",
		Long:          "omd scaffolds VS Code workspace configuration from a repository's .omd metadata and validates that metadata against the organization's schemas.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// repoPathArg resolves the optional positional repository path argument.
func repoPathArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return filepath.Abs(path)
}

// defaultSchemasDir is where schemas live when --schemas is not given.
func defaultSchemasDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".omd", "schemas")
	}
	return filepath.Join(home, ".omd", "schemas")
}

// defaultTemplatesDir is where fragment templates live when --templates is
// not given.
func defaultTemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".omd", "templates")
	}
	return filepath.Join(home, ".omd", "templates")
}
