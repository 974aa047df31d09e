package domain

import "fmt"

// ValidationResult is the complete outcome of validating one repository's
// .omd directory. It is produced fresh per run and never mutated after
// being returned.
type ValidationResult struct {
	RepositoryPath string                `json:"repository_path"`
	Valid          bool                  `json:"valid"`
	Errors         []string              `json:"errors"`
	Warnings       []string              `json:"warnings"`
	FilesValidated map[string]FileResult `json:"files_validated"`
	RepositoryType []string              `json:"repository_type"`
}

// FileResult records the validation outcome for a single configuration file.
type FileResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// NewValidationResult returns an initially valid result for a repository.
func NewValidationResult(repoPath string) *ValidationResult {
	return &ValidationResult{
		RepositoryPath: repoPath,
		Valid:          true,
		Errors:         []string{},
		Warnings:       []string{},
		FilesValidated: map[string]FileResult{},
	}
}

// AddError records a fatal problem and flips the result to invalid.
func (r *ValidationResult) AddError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarning records a non-fatal problem.
func (r *ValidationResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// RecordFile stores the per-file outcome under the file's name.
func (r *ValidationResult) RecordFile(filename string, valid bool, errors []string) {
	if errors == nil {
		errors = []string{}
	}
	r.FilesValidated[filename] = FileResult{Valid: valid, Errors: errors}
}
