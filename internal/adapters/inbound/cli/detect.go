package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/adapters/outbound/detector"
	"github.com/omdtools/omd/internal/adapters/outbound/gitinfo"
	"github.com/omdtools/omd/internal/adapters/outbound/metadata"
	"github.com/omdtools/omd/internal/adapters/outbound/tui"
)

func newDetectCmd() *cobra.Command {
	var (
		asJSON bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "detect [path]",
		Short: "Detect repository characteristics from its content",
		Long:  "Scan a repository's file tree and report the languages, repository types and CI platform it appears to use, without requiring any .omd metadata.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := repoPathArg(args)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			meta, err := detector.New(gitinfo.New()).Detect(repoPath)
			if err != nil {
				return fmt.Errorf("detection failed: %w", err)
			}

			if save {
				if err := metadata.New().Save(repoPath, meta); err != nil {
					return fmt.Errorf("saving metadata: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved .omd/repository.yaml")
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(meta)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMetadata("Detected", meta))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit detected metadata as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "Write detected metadata to .omd/repository.yaml")

	return cmd
}
