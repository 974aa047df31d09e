package domain

import (
	"errors"
	"fmt"
)

// ErrMissingMetadata signals that a repository has no .omd/repository.yaml.
// Callers fall back to auto-detection instead of treating this as fatal.
var ErrMissingMetadata = errors.New("repository metadata not found")

// ConfigError reports a structurally malformed metadata or override document.
// It aborts resolution for the affected repository only.
type ConfigError struct {
	Section string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Section == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration: section %q: %s", e.Section, e.Reason)
}

func configErrorf(section, format string, args ...any) *ConfigError {
	return &ConfigError{Section: section, Reason: fmt.Sprintf(format, args...)}
}
