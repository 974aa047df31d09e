package domain

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ValidPlatforms enumerates the recognized CI platforms.
var ValidPlatforms = []string{"github", "azuredevops", "gitlab", "bitbucket"}

// KnownTypes lists the repository type tags the tooling ships defaults for.
// The vocabulary is open: unknown tags are carried through untouched.
var KnownTypes = []string{
	"app", "lib", "infra", "site", "template",
	"tool", "config", "docs", "monorepo", "example",
}

const (
	DefaultPlatform = "github"
	DefaultLanguage = "markdown"
	DefaultType     = "lib"
)

// RepositoryMetadata is a repository's declared configuration, read from
// .omd/repository.yaml. The canonical external key for the CI platform is
// "platform"; "ci_platform" is accepted as an alias on read. The list
// fields accept a single scalar and normalize it to a one-element list.
type RepositoryMetadata struct {
	Name               string   `yaml:"name,omitempty" json:"name,omitempty"`
	Description        string   `yaml:"description,omitempty" json:"description,omitempty"`
	Platform           string   `yaml:"platform" json:"platform"`
	DeploymentPlatform string   `yaml:"deployment_platform,omitempty" json:"deployment_platform,omitempty"`
	Types              []string `yaml:"types" json:"types"`
	Languages          []string `yaml:"languages" json:"languages"`
	Tags               []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	CopilotEnabled     bool     `yaml:"copilot_enabled,omitempty" json:"copilot_enabled,omitempty"`
}

// ResolvedConfiguration is repository metadata after override application.
// It is read-only input to every rendering step of one orchestration run.
type ResolvedConfiguration = RepositoryMetadata

// stringList decodes either a YAML sequence of strings or a single scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = stringList(ss)
	default:
		return fmt.Errorf("line %d: expected string or list of strings", value.Line)
	}
	return nil
}

func (m *RepositoryMetadata) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return configErrorf("", "repository metadata must be a mapping")
	}

	var raw struct {
		Name                string     `yaml:"name"`
		Description         string     `yaml:"description"`
		Platform            string     `yaml:"platform"`
		CIPlatform          string     `yaml:"ci_platform"`
		DeploymentPlatform  string     `yaml:"deployment_platform"`
		Types               stringList `yaml:"types"`
		Languages           stringList `yaml:"languages"`
		Tags                stringList `yaml:"tags"`
		CopilotEnabled      *bool      `yaml:"copilot_enabled"`
		CopilotInstructions *bool      `yaml:"copilot_instructions"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	m.Name = raw.Name
	m.Description = raw.Description
	m.Platform = raw.Platform
	if m.Platform == "" {
		m.Platform = raw.CIPlatform
	}
	m.DeploymentPlatform = raw.DeploymentPlatform
	m.Types = []string(raw.Types)
	m.Languages = []string(raw.Languages)
	m.Tags = []string(raw.Tags)

	switch {
	case raw.CopilotEnabled != nil:
		m.CopilotEnabled = *raw.CopilotEnabled
	case raw.CopilotInstructions != nil:
		m.CopilotEnabled = *raw.CopilotInstructions
	}

	return nil
}

// Validate checks the required fields and the platform enum.
func (m RepositoryMetadata) Validate() error {
	if len(m.Languages) == 0 {
		return configErrorf("", "languages is required")
	}
	if len(m.Types) == 0 {
		return configErrorf("", "types is required")
	}
	if m.Platform == "" {
		return configErrorf("", "platform is required")
	}
	for _, p := range ValidPlatforms {
		if m.Platform == p {
			return nil
		}
	}
	return configErrorf("", "unknown platform %q (valid: github, azuredevops, gitlab, bitbucket)", m.Platform)
}

// Clone returns a deep copy so resolution never aliases the base document.
func (m RepositoryMetadata) Clone() RepositoryMetadata {
	out := m
	out.Types = cloneStrings(m.Types)
	out.Languages = cloneStrings(m.Languages)
	out.Tags = cloneStrings(m.Tags)
	return out
}

// DefaultMetadata returns the fallback configuration for a repository that
// declares nothing at all.
func DefaultMetadata(name string) RepositoryMetadata {
	return RepositoryMetadata{
		Name:      name,
		Platform:  DefaultPlatform,
		Types:     []string{DefaultType},
		Languages: []string{DefaultLanguage},
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// SortedUnique returns a sorted copy of s with duplicates removed.
func SortedUnique(s []string) []string {
	seen := make(map[string]bool, len(s))
	var out []string
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
