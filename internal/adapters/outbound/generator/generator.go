// Package generator renders a resolved repository configuration into VS
// Code workspace files, editor configuration, ignore rules and Copilot
// instructions.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/omdtools/omd/internal/domain"
)

// Generator implements domain.OutputGenerator. Language and platform
// fragments supply the defaults; the repository's overrides and
// workspace.yaml are layered on top.
type Generator struct {
	fragments domain.FragmentLoader
}

func New(fragments domain.FragmentLoader) *Generator {
	return &Generator{fragments: fragments}
}

// languageConfig is the per-language portion of a fragment's data, found
// under languages.<name>.
type languageConfig struct {
	Settings             map[string]any
	Extensions           []string
	UnwantedExtensions   []string
	Tasks                []any
	LaunchConfigurations []any
}

// Generate writes every output for one repository and returns the paths it
// created or changed, relative to repoPath. Broken fragments are treated as
// absent and reported through warnings; generation proceeds on whatever is
// available.
func (g *Generator) Generate(repoPath string, resolved domain.ResolvedConfiguration, overrides *domain.OverrideDocument) (written, warnings []string, err error) {
	ws, err := loadWorkspaceConfig(repoPath)
	if err != nil {
		return nil, nil, err
	}

	ctx := domain.RenderContext{
		Languages: resolved.Languages,
		Platform:  resolved.Platform,
		Types:     resolved.Types,
		RepoName:  resolved.Name,
	}

	settings := map[string]any{}
	var extensions, unwanted []string
	var tasks, launches []any

	for _, lang := range resolved.Languages {
		ctx.Language = lang
		frag, warn := g.fragments.Load(domain.FragmentLanguage, lang, ctx)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		cfg := languageSection(frag, lang)

		merged := domain.MergeSettings(settings, cfg.Settings)
		// User overrides apply per language, after that language's defaults.
		merged = domain.MergeSettings(merged, overrides.SettingsFor(lang))
		settings = merged

		extensions = append(extensions, cfg.Extensions...)
		unwanted = append(unwanted, cfg.UnwantedExtensions...)
		tasks = append(tasks, cfg.Tasks...)
		launches = append(launches, cfg.LaunchConfigurations...)
	}

	ctx.Language = ""
	frag, warn := g.fragments.Load(domain.FragmentPlatform, resolved.Platform, ctx)
	if warn != "" {
		warnings = append(warnings, warn)
	}
	if frag != nil {
		cfg := platformSection(frag, resolved.Platform)
		settings = domain.MergeSettings(settings, cfg.Settings)
		extensions = append(extensions, cfg.Extensions...)
	}

	settings = domain.MergeSettings(settings, ws.Workspace.Settings)
	extensions = append(extensions, ws.Workspace.RecommendedExtensions...)
	unwanted = append(unwanted, ws.Workspace.UnwantedExtensions...)
	for _, t := range ws.Workspace.Tasks {
		tasks = append(tasks, t)
	}
	for _, l := range ws.Workspace.LaunchConfigurations {
		launches = append(launches, l)
	}
	recommendations := filterExtensions(extensions, unwanted)

	record := func(rel string) { written = append(written, rel) }

	workspaceName := resolved.Name + ".code-workspace"
	changed, err := g.writeWorkspaceFile(repoPath, workspaceName, ws, settings, recommendations)
	if err != nil {
		return written, warnings, err
	}
	if changed {
		record(workspaceName)
	}

	vscodeFiles, err := g.writeVSCodeDir(repoPath, settings, recommendations, tasks, launches)
	if err != nil {
		return written, warnings, err
	}
	written = append(written, vscodeFiles...)

	created, err := ensureWorkspaceFile(repoPath)
	if err != nil {
		return written, warnings, fmt.Errorf("writing workspace.yaml: %w", err)
	}
	if created {
		record(filepath.Join(".omd", "workspace.yaml"))
	}

	changed, err = updateGitignore(repoPath)
	if err != nil {
		return written, warnings, err
	}
	if changed {
		record(".gitignore")
	}

	if resolved.CopilotEnabled {
		copilotFiles, err := g.writeCopilotInstructions(repoPath, resolved, ws.Copilot)
		if err != nil {
			return written, warnings, err
		}
		written = append(written, copilotFiles...)
	}

	return written, warnings, nil
}

func (g *Generator) writeWorkspaceFile(repoPath, name string, ws WorkspaceConfig, settings map[string]any, recommendations []string) (bool, error) {
	folders := []map[string]any{{"path": "."}}
	for _, f := range ws.Workspace.AdditionalFolders {
		folders = append(folders, map[string]any{"path": f})
	}

	doc := map[string]any{
		"folders":  folders,
		"settings": settings,
		"extensions": map[string]any{
			"recommendations": recommendations,
		},
	}
	return writeJSON(filepath.Join(repoPath, name), doc)
}

func (g *Generator) writeVSCodeDir(repoPath string, settings map[string]any, recommendations []string, tasks, launches []any) ([]string, error) {
	vscodeDir := filepath.Join(repoPath, ".vscode")
	if err := os.MkdirAll(vscodeDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating .vscode: %w", err)
	}

	var written []string
	write := func(name string, doc any) error {
		changed, err := writeJSON(filepath.Join(vscodeDir, name), doc)
		if err != nil {
			return err
		}
		if changed {
			written = append(written, filepath.Join(".vscode", name))
		}
		return nil
	}

	if err := write("settings.json", settings); err != nil {
		return written, err
	}
	if err := write("extensions.json", map[string]any{"recommendations": recommendations}); err != nil {
		return written, err
	}
	if tasks == nil {
		tasks = []any{}
	}
	if err := write("tasks.json", map[string]any{"version": "2.0.0", "tasks": tasks}); err != nil {
		return written, err
	}
	// launch.json is optional: only written when a language contributes.
	if len(launches) > 0 {
		if err := write("launch.json", map[string]any{"version": "0.2.0", "configurations": launches}); err != nil {
			return written, err
		}
	}
	return written, nil
}

// updateGitignore creates .gitignore with the workspace-file pattern, or
// appends the pattern to an existing one that lacks it.
func updateGitignore(repoPath string) (changed bool, err error) {
	const pattern = "*.code-workspace"
	path := filepath.Join(repoPath, ".gitignore")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return true, os.WriteFile(path, []byte(pattern+"\n"), 0o644)
	}
	if err != nil {
		return false, fmt.Errorf("reading .gitignore: %w", err)
	}

	content := string(data)
	if strings.Contains(content, pattern) {
		return false, nil
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += pattern + "\n"
	return true, os.WriteFile(path, []byte(content), 0o644)
}

func languageSection(frag *domain.Fragment, name string) languageConfig {
	return fragmentSection(frag, "languages", name)
}

func platformSection(frag *domain.Fragment, name string) languageConfig {
	return fragmentSection(frag, "platforms", name)
}

// fragmentSection extracts the named entry from a fragment's data,
// accepting the keys either nested under the group mapping or at the top
// level of the document.
func fragmentSection(frag *domain.Fragment, group, name string) languageConfig {
	var cfg languageConfig
	if frag == nil {
		return cfg
	}

	entry := frag.Data
	if grouped, ok := frag.Data[group].(map[string]any); ok {
		nested, ok := grouped[name].(map[string]any)
		if !ok {
			return cfg
		}
		entry = nested
	}

	if settings, ok := entry["settings"].(map[string]any); ok {
		cfg.Settings = settings
	}
	cfg.Extensions = stringSlice(entry["extensions"])
	cfg.UnwantedExtensions = stringSlice(entry["unwanted_extensions"])
	cfg.Tasks = anySlice(entry["tasks"])
	cfg.LaunchConfigurations = anySlice(entry["launch_configurations"])
	return cfg
}

// filterExtensions dedupes recommendations in first-seen order and drops
// any marked unwanted.
func filterExtensions(extensions, unwanted []string) []string {
	drop := make(map[string]bool, len(unwanted))
	for _, e := range unwanted {
		drop[e] = true
	}

	seen := map[string]bool{}
	out := []string{}
	for _, e := range extensions {
		if e == "" || drop[e] || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anySlice(v any) []any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	return items
}

// writeJSON marshals with sorted keys and two-space indentation so repeated
// runs produce byte-identical output.
func writeJSON(path string, doc any) (bool, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	changed, err := writeFileIfChanged(path, data)
	if err != nil {
		return false, fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return changed, nil
}

// writeFileIfChanged leaves a file alone when it already holds data, so the
// reported file list names only files this run actually touched.
func writeFileIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
