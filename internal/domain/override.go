package domain

import (
	"gopkg.in/yaml.v3"
)

// OverrideDocument is the optional .omd/overrides.yaml. The repository
// section carries field overrides applied through an allow-list; the
// languages section maps language names to settings fragments. Language
// keys keep their document order so override application is deterministic.
type OverrideDocument struct {
	Repository map[string]any
	Languages  []LanguageOverride
}

// LanguageOverride patches the settings tree for one language.
type LanguageOverride struct {
	Name     string
	Settings map[string]any
}

func (d *OverrideDocument) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return configErrorf("", "overrides document must be a mapping")
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		node := value.Content[i+1]

		switch key {
		case "repository":
			if node.Tag == "!!null" {
				continue
			}
			if node.Kind != yaml.MappingNode {
				return configErrorf("repository", "must be a mapping")
			}
			var repo map[string]any
			if err := node.Decode(&repo); err != nil {
				return configErrorf("repository", "%v", err)
			}
			d.Repository = repo

		case "languages":
			if node.Tag == "!!null" {
				continue
			}
			if node.Kind != yaml.MappingNode {
				return configErrorf("languages", "must be a mapping")
			}
			// Walk the mapping node directly: a Go map would lose the
			// document order the resolver appends languages in.
			for j := 0; j+1 < len(node.Content); j += 2 {
				name := node.Content[j].Value
				var frag struct {
					Settings map[string]any `yaml:"settings"`
				}
				if node.Content[j+1].Tag != "!!null" {
					if node.Content[j+1].Kind != yaml.MappingNode {
						return configErrorf("languages", "entry %q must be a mapping", name)
					}
					if err := node.Content[j+1].Decode(&frag); err != nil {
						return configErrorf("languages", "entry %q: %v", name, err)
					}
				}
				d.Languages = append(d.Languages, LanguageOverride{
					Name:     name,
					Settings: frag.Settings,
				})
			}
		}
	}
	return nil
}

// Empty reports whether the document overrides nothing.
func (d *OverrideDocument) Empty() bool {
	return d == nil || (len(d.Repository) == 0 && len(d.Languages) == 0)
}

// SettingsFor returns the settings fragment for a language, or nil.
func (d *OverrideDocument) SettingsFor(language string) map[string]any {
	if d == nil {
		return nil
	}
	for _, l := range d.Languages {
		if l.Name == language {
			return l.Settings
		}
	}
	return nil
}
