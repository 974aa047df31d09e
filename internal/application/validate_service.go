package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omdtools/omd/internal/domain"
)

// OMDDir is the per-repository configuration directory.
const OMDDir = ".omd"

// RepositoryFile is the one file every configured repository must carry.
const RepositoryFile = "repository.yaml"

// ValidateService checks a repository's .omd documents against the loaded
// schema set: the base repository schema first, then whatever the declared
// types require or optionally allow.
type ValidateService struct {
	store     domain.MetadataStore
	validator domain.DocumentValidator
}

func NewValidateService(store domain.MetadataStore, validator domain.DocumentValidator) *ValidateService {
	return &ValidateService{store: store, validator: validator}
}

// ValidateRepository validates one repository and reports every problem it
// finds. Problems are reported through the result, never through an error:
// a repository that cannot be validated at all is simply invalid.
func (s *ValidateService) ValidateRepository(repoPath string) *domain.ValidationResult {
	result := domain.NewValidationResult(repoPath)
	for _, w := range s.validator.Warnings() {
		result.AddWarning("%s", w)
	}

	omdDir := filepath.Join(repoPath, OMDDir)
	if info, err := os.Stat(omdDir); err != nil || !info.IsDir() {
		result.AddError("no %s directory found in %s", OMDDir, repoPath)
		return result
	}

	repoFile := filepath.Join(omdDir, RepositoryFile)
	if _, err := os.Stat(repoFile); err != nil {
		result.AddError("required file %s not found", RepositoryFile)
		return result
	}

	valid, errs := s.validator.ValidateFile(repoFile, domain.BaseSchema)
	result.RecordFile(RepositoryFile, valid, errs)
	if !valid {
		result.AddError("%s failed schema validation", RepositoryFile)
		for _, e := range errs {
			result.AddError("%s: %s", RepositoryFile, e)
		}
		return result
	}

	meta, err := s.store.Load(repoPath)
	if err != nil {
		if errors.Is(err, domain.ErrMissingMetadata) {
			result.AddError("required file %s not found", RepositoryFile)
		} else {
			result.AddError("reading %s: %v", RepositoryFile, err)
		}
		return result
	}
	result.RepositoryType = meta.Types

	idx := s.validator.Index()
	s.checkSchemas(result, omdDir, idx.RequiredSchemas(meta.Types), true)
	s.checkSchemas(result, omdDir, idx.OptionalSchemas(meta.Types), false)

	return result
}

// checkSchemas validates the named type-specific documents. A missing
// required document is an error, as is a required document whose schema
// never loaded. A missing optional one is skipped and an invalid optional
// document is only a warning.
func (s *ValidateService) checkSchemas(result *domain.ValidationResult, omdDir string, schemas []string, required bool) {
	for _, name := range schemas {
		if name == domain.BaseSchema {
			continue
		}
		filename := name + ".yaml"
		path := filepath.Join(omdDir, filename)

		if _, err := os.Stat(path); err != nil {
			if required {
				result.AddError("required file %s not found", filename)
			}
			continue
		}

		if !s.validator.HasSchema(name) {
			if required {
				result.AddError("no schema available for required file %s", filename)
			} else {
				result.AddWarning("no schema available for %s", filename)
			}
			continue
		}

		valid, errs := s.validator.ValidateFile(path, name)
		result.RecordFile(filename, valid, errs)
		if valid {
			continue
		}
		if required {
			result.AddError("%s failed schema validation", filename)
			for _, e := range errs {
				result.AddError("%s: %s", filename, e)
			}
		} else {
			result.AddWarning("%s failed schema validation: %s", filename, joinFirst(errs))
		}
	}
}

func joinFirst(errs []string) string {
	if len(errs) == 0 {
		return "invalid document"
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return fmt.Sprintf("%s (and %d more)", errs[0], len(errs)-1)
}
