package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const starterMetadata = `# Repository configuration
# Fill this out and run "omd setup" to scaffold the workspace.

# Languages used in this repository (required)
languages:
  - markdown  # terraform, python, go, yaml, shell, ...

# CI/CD platform where this repository resides (required)
platform: github  # github, azuredevops, gitlab, bitbucket

# Repository types (required)
types:
  - lib  # app, lib, infra, site, template, tool, config, docs, monorepo, example

# Additional tags for categorization (optional)
tags: []

# Generate GitHub Copilot instruction files (optional)
copilot_enabled: false
`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter .omd/repository.yaml",
		Long:  "Create .omd/repository.yaml with commented defaults so a repository can be configured by hand instead of through detection.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := repoPathArg(args)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(repoPath, ".omd", "repository.yaml")
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf(".omd/repository.yaml already exists (use --force to overwrite)")
				}
			}

			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("creating .omd: %w", err)
			}
			if err := os.WriteFile(dest, []byte(starterMetadata), 0o644); err != nil {
				return fmt.Errorf("writing repository.yaml: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			fmt.Fprintln(cmd.OutOrStdout(), "Edit it and run \"omd setup\" to scaffold the workspace.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing repository.yaml")

	return cmd
}
