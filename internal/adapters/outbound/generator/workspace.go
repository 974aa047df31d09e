package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WorkspaceConfig is the optional .omd/workspace.yaml: per-repository
// additions layered on top of whatever the language fragments contribute.
type WorkspaceConfig struct {
	Workspace WorkspaceSection `yaml:"workspace"`
	Copilot   CopilotSection   `yaml:"copilot"`
}

type WorkspaceSection struct {
	AdditionalFolders     []string         `yaml:"additional_folders"`
	Settings              map[string]any   `yaml:"settings"`
	RecommendedExtensions []string         `yaml:"recommended_extensions"`
	UnwantedExtensions    []string         `yaml:"unwanted_extensions"`
	Tasks                 []map[string]any `yaml:"tasks"`
	LaunchConfigurations  []map[string]any `yaml:"launch_configurations"`
}

type CopilotSection struct {
	Instructions []string `yaml:"instructions"`
	Rules        []string `yaml:"rules"`
	ApplyTo      string   `yaml:"apply_to"`
}

// loadWorkspaceConfig reads .omd/workspace.yaml, returning the zero config
// when the file does not exist.
func loadWorkspaceConfig(repoPath string) (WorkspaceConfig, error) {
	var cfg WorkspaceConfig
	data, err := os.ReadFile(filepath.Join(repoPath, ".omd", "workspace.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading workspace.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing workspace.yaml: %w", err)
	}
	return cfg, nil
}

const defaultWorkspaceYAML = `# Workspace configuration
# Additions layered on top of generated language defaults.
workspace:
  additional_folders: []
  settings: {}
  recommended_extensions: []
  unwanted_extensions: []
  tasks: []
  launch_configurations: []
copilot:
  instructions: []
  rules: []
  apply_to: "**"
`

// ensureWorkspaceFile writes a starter workspace.yaml when none exists. An
// existing file is user configuration and is never touched.
func ensureWorkspaceFile(repoPath string) (created bool, err error) {
	path := filepath.Join(repoPath, ".omd", "workspace.yaml")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(defaultWorkspaceYAML), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
