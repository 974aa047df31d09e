// Package metadata reads and writes the .omd documents of a repository.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omdtools/omd/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	omdDir        = ".omd"
	repositoryYML = "repository.yaml"
	overridesYML  = "overrides.yaml"
)

// Store is the filesystem-backed MetadataStore.
type Store struct{}

func New() *Store {
	return &Store{}
}

// Load reads .omd/repository.yaml. A missing file reports
// domain.ErrMissingMetadata so callers can fall back to detection.
func (s *Store) Load(repoPath string) (domain.RepositoryMetadata, error) {
	path := filepath.Join(repoPath, omdDir, repositoryYML)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RepositoryMetadata{}, domain.ErrMissingMetadata
		}
		return domain.RepositoryMetadata{}, fmt.Errorf("reading %s: %w", repositoryYML, err)
	}

	var meta domain.RepositoryMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return domain.RepositoryMetadata{}, fmt.Errorf("parsing %s: %w", repositoryYML, err)
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(repoPath)
	}
	return meta, nil
}

// LoadOverrides reads .omd/overrides.yaml. Overrides are optional: a
// missing file is (nil, nil), a malformed one is an error.
func (s *Store) LoadOverrides(repoPath string) (*domain.OverrideDocument, error) {
	path := filepath.Join(repoPath, omdDir, overridesYML)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", overridesYML, err)
	}

	var doc domain.OverrideDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", overridesYML, err)
	}
	return &doc, nil
}

// Save writes .omd/repository.yaml, creating the directory when needed.
func (s *Store) Save(repoPath string, meta domain.RepositoryMetadata) error {
	dir := filepath.Join(repoPath, omdDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", omdDir, err)
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", repositoryYML, err)
	}
	content := append([]byte("# Auto-detected repository configuration\n"), data...)

	path := filepath.Join(dir, repositoryYML)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", repositoryYML, err)
	}
	return nil
}
