package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/adapters/outbound/detector"
	"github.com/omdtools/omd/internal/adapters/outbound/fragments"
	"github.com/omdtools/omd/internal/adapters/outbound/generator"
	"github.com/omdtools/omd/internal/adapters/outbound/gitinfo"
	"github.com/omdtools/omd/internal/adapters/outbound/metadata"
	"github.com/omdtools/omd/internal/adapters/outbound/schema"
	"github.com/omdtools/omd/internal/adapters/outbound/tui"
	"github.com/omdtools/omd/internal/application"
)

func newSetupCmd() *cobra.Command {
	var (
		templatesDir string
		schemasDir   string
		noValidate   bool
	)

	cmd := &cobra.Command{
		Use:   "setup [path]",
		Short: "Scaffold workspace configuration for a repository",
		Long:  "Generate the VS Code workspace, editor settings and Copilot instructions for a repository from its .omd metadata, detecting the metadata first when none exists.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := repoPathArg(args)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			store := metadata.New()
			svc := application.NewSetupService(
				store,
				detector.New(gitinfo.New()),
				generator.New(fragments.New(templatesDir)),
			)

			result, err := svc.Setup(repoPath, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMetadata("Configured", result.Resolved))

			if noValidate {
				return nil
			}
			validator, err := schema.Load(schemasDir)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "skipping validation: %v\n", err)
				return nil
			}

			validation := application.NewValidateService(store, validator).ValidateRepository(repoPath)
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderValidationResult(validation))
			if !validation.Valid {
				return fmt.Errorf("repository configuration is invalid")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&templatesDir, "templates", defaultTemplatesDir(), "Directory holding language and platform fragment templates")
	cmd.Flags().StringVar(&schemasDir, "schemas", defaultSchemasDir(), "Directory holding validation schemas")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip schema validation after setup")

	return cmd
}
