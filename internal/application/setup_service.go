package application

import (
	"errors"
	"fmt"
	"io"

	"github.com/omdtools/omd/internal/domain"
)

// SetupService orchestrates the setup pipeline:
// load metadata → (detect if missing) → apply overrides → generate outputs.
type SetupService struct {
	store     domain.MetadataStore
	detector  domain.RepositoryDetector
	generator domain.OutputGenerator
}

func NewSetupService(
	store domain.MetadataStore,
	detector domain.RepositoryDetector,
	generator domain.OutputGenerator,
) *SetupService {
	return &SetupService{
		store:     store,
		detector:  detector,
		generator: generator,
	}
}

// SetupResult reports what one setup run produced.
type SetupResult struct {
	Resolved       domain.ResolvedConfiguration `json:"resolved"`
	Detected       bool                         `json:"detected"`
	GeneratedFiles []string                     `json:"generated_files"`
	Warnings       []string                     `json:"warnings,omitempty"`
}

// Setup configures one repository. When no repository.yaml exists the
// detector synthesizes one and it is persisted so subsequent runs are
// stable. Progress lines go to out; pass io.Discard to silence them.
func (s *SetupService) Setup(repoPath string, out io.Writer) (*SetupResult, error) {
	result := &SetupResult{}

	meta, err := s.store.Load(repoPath)
	switch {
	case errors.Is(err, domain.ErrMissingMetadata):
		fmt.Fprintln(out, "No repository.yaml found, detecting repository characteristics...")
		meta, err = s.detector.Detect(repoPath)
		if err != nil {
			return nil, fmt.Errorf("detecting repository: %w", err)
		}
		if err := s.store.Save(repoPath, meta); err != nil {
			return nil, fmt.Errorf("saving detected metadata: %w", err)
		}
		result.Detected = true
		fmt.Fprintf(out, "Detected: languages=%v types=%v platform=%s\n", meta.Languages, meta.Types, meta.Platform)
	case err != nil:
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	overrides, err := s.store.LoadOverrides(repoPath)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}
	resolved, err := domain.Resolve(meta, overrides)
	if err != nil {
		return nil, fmt.Errorf("applying overrides: %w", err)
	}
	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("resolved configuration: %w", err)
	}
	result.Resolved = resolved

	files, warnings, err := s.generator.Generate(repoPath, resolved, overrides)
	if err != nil {
		return nil, fmt.Errorf("generating outputs: %w", err)
	}
	result.GeneratedFiles = files
	result.Warnings = warnings
	for _, w := range warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	for _, f := range files {
		fmt.Fprintf(out, "  wrote %s\n", f)
	}

	return result, nil
}

// Resolve applies the repository's overrides to its metadata and validates
// the outcome. The base document is never modified.
func (s *SetupService) Resolve(repoPath string, meta domain.RepositoryMetadata) (domain.ResolvedConfiguration, error) {
	overrides, err := s.store.LoadOverrides(repoPath)
	if err != nil {
		return domain.ResolvedConfiguration{}, fmt.Errorf("loading overrides: %w", err)
	}

	resolved, err := domain.Resolve(meta, overrides)
	if err != nil {
		return domain.ResolvedConfiguration{}, fmt.Errorf("applying overrides: %w", err)
	}
	if err := resolved.Validate(); err != nil {
		return domain.ResolvedConfiguration{}, fmt.Errorf("resolved configuration: %w", err)
	}
	return resolved, nil
}

// ResolveRepository loads a repository's metadata and returns it with
// overrides applied. Used by callers that want the effective configuration
// without generating anything.
func (s *SetupService) ResolveRepository(repoPath string) (domain.ResolvedConfiguration, error) {
	meta, err := s.store.Load(repoPath)
	if err != nil {
		return domain.ResolvedConfiguration{}, fmt.Errorf("loading metadata: %w", err)
	}
	return s.Resolve(repoPath, meta)
}

// Detect runs detection without persisting anything.
func (s *SetupService) Detect(repoPath string) (domain.RepositoryMetadata, error) {
	return s.detector.Detect(repoPath)
}
