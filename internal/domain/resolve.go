package domain

import "fmt"

// repositoryOverrideKeys is the allow-list for the overrides.yaml repository
// section, in application order. ci_platform is applied before platform so
// the canonical key wins when both are present. Keys outside this list are
// dropped silently: override documents cannot inject unvalidated fields.
var repositoryOverrideKeys = []string{
	"name",
	"description",
	"ci_platform",
	"platform",
	"deployment_platform",
	"types",
	"languages",
	"tags",
}

// Resolve applies an override document to base metadata and returns the
// resolved configuration. The base is never mutated, an empty override is
// the identity, and a failed resolution applies nothing.
func Resolve(base RepositoryMetadata, override *OverrideDocument) (ResolvedConfiguration, error) {
	resolved := base.Clone()
	if override.Empty() {
		return resolved, nil
	}

	for _, key := range repositoryOverrideKeys {
		value, present := override.Repository[key]
		if !present || value == nil {
			// Absent marker: the field keeps its base value.
			continue
		}
		if err := applyRepositoryOverride(&resolved, key, value); err != nil {
			return ResolvedConfiguration{}, err
		}
	}

	// Override language keys join the resolved list with set-union
	// semantics: base order preserved, new entries appended in document
	// order, nothing ever removed.
	for _, lang := range override.Languages {
		if !contains(resolved.Languages, lang.Name) {
			resolved.Languages = append(resolved.Languages, lang.Name)
		}
	}

	return resolved, nil
}

func applyRepositoryOverride(m *RepositoryMetadata, key string, value any) error {
	switch key {
	case "name", "description", "platform", "ci_platform", "deployment_platform":
		s, ok := value.(string)
		if !ok {
			return configErrorf("repository", "%s must be a string, got %T", key, value)
		}
		switch key {
		case "name":
			m.Name = s
		case "description":
			m.Description = s
		case "platform", "ci_platform":
			m.Platform = s
		case "deployment_platform":
			m.DeploymentPlatform = s
		}

	case "types", "languages", "tags":
		list, err := coerceStringList(key, value)
		if err != nil {
			return err
		}
		switch key {
		case "types":
			m.Types = list
		case "languages":
			m.Languages = list
		case "tags":
			m.Tags = list
		}
	}
	return nil
}

// coerceStringList accepts a scalar string or a list of strings, mirroring
// the normalization applied to the metadata document itself.
func coerceStringList(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, configErrorf("repository", "%s entries must be strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, configErrorf("repository", "%s must be a string or list of strings, got %s", key, describeType(value))
	}
}

func describeType(v any) string {
	switch v.(type) {
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func contains(s []string, target string) bool {
	for _, v := range s {
		if v == target {
			return true
		}
	}
	return false
}
