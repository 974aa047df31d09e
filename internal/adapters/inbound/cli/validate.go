package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/adapters/outbound/metadata"
	"github.com/omdtools/omd/internal/adapters/outbound/schema"
	"github.com/omdtools/omd/internal/adapters/outbound/tui"
	"github.com/omdtools/omd/internal/application"
)

func newValidateCmd() *cobra.Command {
	var (
		schemasDir string
		asJSON     bool
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a repository's .omd configuration against schemas",
		Long:  "Validate .omd/repository.yaml and the type-specific configuration files the schema index requires for the repository's declared types.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := repoPathArg(args)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			validator, err := schema.Load(schemasDir)
			if err != nil {
				return fmt.Errorf("loading schemas: %w", err)
			}

			svc := application.NewValidateService(metadata.New(), validator)
			result := svc.ValidateRepository(repoPath)

			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			case quiet:
				// Verdict through the exit code only.
			default:
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderValidationResult(result))
			}

			if !result.Valid {
				return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemasDir, "schemas", defaultSchemasDir(), "Directory holding validation schemas")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the validation result as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress output, report through the exit code")

	return cmd
}
