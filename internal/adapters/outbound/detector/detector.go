// Package detector infers repository metadata from the file tree when no
// repository.yaml exists yet.
package detector

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/omdtools/omd/internal/domain"
)

// languagePatterns maps a language to the extensions and exact file names
// that indicate it.
var languagePatterns = map[string][]string{
	"terraform":  {".tf", ".tfvars", ".hcl", ".tftpl"},
	"python":     {".py", ".pyx", ".pyi"},
	"go":         {".go", "go.mod", "go.sum"},
	"markdown":   {".md", ".markdown", ".mdx"},
	"yaml":       {".yml", ".yaml"},
	"json":       {".json", ".jsonc"},
	"shell":      {".sh", ".bash", ".zsh"},
	"powershell": {".ps1", ".psm1", ".psd1"},
	"sql":        {".sql"},
	"j2":         {".j2", ".jinja", ".jinja2"},
}

// ignoredDirs are skipped wholesale during the walk. Vendored and generated
// trees would otherwise dominate the language counts.
var ignoredDirs = map[string]bool{
	".git": true, ".vscode": true, ".omd": true,
	"node_modules": true, ".terraform": true,
	"__pycache__": true, ".pytest_cache": true, ".mypy_cache": true,
	"venv": true, ".venv": true, "env": true, ".env": true,
	"dist": true, "build": true,
}

// Detector implements domain.RepositoryDetector by scanning the repository
// tree. A GitInfo may be supplied to refine the name and platform from the
// origin remote; pass nil to detect from the filesystem alone.
type Detector struct {
	git domain.GitInfo
}

func New(git domain.GitInfo) *Detector {
	return &Detector{git: git}
}

// Detect scans repoPath and synthesizes metadata that passes Validate.
func (d *Detector) Detect(repoPath string) (domain.RepositoryMetadata, error) {
	if info, err := os.Stat(repoPath); err != nil || !info.IsDir() {
		return domain.RepositoryMetadata{}, fmt.Errorf("repository path %s is not a directory", repoPath)
	}

	scan, err := d.scan(repoPath)
	if err != nil {
		return domain.RepositoryMetadata{}, fmt.Errorf("scanning %s: %w", repoPath, err)
	}

	meta := domain.RepositoryMetadata{
		Name:      d.repoName(repoPath),
		Platform:  d.detectPlatform(repoPath),
		Types:     detectTypes(repoPath, scan),
		Languages: detectLanguages(scan),
	}
	return meta, nil
}

// scanResult aggregates what one walk of the tree observed.
type scanResult struct {
	extensions map[string]bool
	fileNames  map[string]bool
}

func (d *Detector) scan(repoPath string) (*scanResult, error) {
	scan := &scanResult{
		extensions: map[string]bool{},
		fileNames:  map[string]bool{},
	}

	err := filepath.WalkDir(repoPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != repoPath && ignoredDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		scan.fileNames[strings.ToLower(name)] = true
		if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
			scan.extensions[ext] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// repoName prefers the origin remote's repository name, falling back to the
// directory name.
func (d *Detector) repoName(repoPath string) string {
	if d.git != nil {
		if name, err := d.git.RemoteName(repoPath); err == nil && name != "" {
			return name
		}
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return filepath.Base(repoPath)
	}
	return filepath.Base(abs)
}

// detectPlatform checks CI directory markers first, then the origin remote
// host, then falls back to the default.
func (d *Detector) detectPlatform(repoPath string) string {
	if dirExists(filepath.Join(repoPath, ".github")) {
		return "github"
	}
	if fileExists(filepath.Join(repoPath, "azure-pipelines.yml")) ||
		fileExists(filepath.Join(repoPath, "azure-pipelines.yaml")) ||
		dirExists(filepath.Join(repoPath, ".azure")) {
		return "azuredevops"
	}
	if dirExists(filepath.Join(repoPath, ".gitlab")) || fileExists(filepath.Join(repoPath, ".gitlab-ci.yml")) {
		return "gitlab"
	}
	if d.git != nil {
		if hint, err := d.git.PlatformHint(repoPath); err == nil && hint != "" {
			return hint
		}
	}
	return domain.DefaultPlatform
}

func detectLanguages(scan *scanResult) []string {
	var detected []string
	for language, patterns := range languagePatterns {
		for _, p := range patterns {
			if scan.extensions[p] || scan.fileNames[p] {
				detected = append(detected, language)
				break
			}
		}
	}
	if len(detected) == 0 {
		return []string{domain.DefaultLanguage}
	}
	return domain.SortedUnique(detected)
}

func detectTypes(repoPath string, scan *scanResult) []string {
	var detected []string
	add := func(t string) {
		for _, v := range detected {
			if v == t {
				return
			}
		}
		detected = append(detected, t)
	}

	if fileExists(filepath.Join(repoPath, "main.tf")) || dirExists(filepath.Join(repoPath, "terraform")) {
		add("infra")
	}
	if scan.extensions[".tftpl"] {
		add("infra")
		add("template")
	}
	if fileExists(filepath.Join(repoPath, "setup.py")) || fileExists(filepath.Join(repoPath, "pyproject.toml")) {
		add("lib")
	}
	if t := nodeProjectType(filepath.Join(repoPath, "package.json")); t != "" {
		add(t)
	}
	if fileExists(filepath.Join(repoPath, "Dockerfile")) {
		add("app")
	}
	if scan.extensions[".j2"] || scan.extensions[".jinja"] || scan.extensions[".jinja2"] ||
		fileExists(filepath.Join(repoPath, "cookiecutter.json")) ||
		fileExists(filepath.Join(repoPath, "template.yaml")) {
		add("template")
	}
	// Documentation only counts when nothing more specific matched.
	if len(detected) == 0 &&
		(fileExists(filepath.Join(repoPath, "README.md")) ||
			dirExists(filepath.Join(repoPath, "docs")) ||
			dirExists(filepath.Join(repoPath, "documentation"))) {
		add("docs")
	}

	if len(detected) == 0 {
		return []string{domain.DefaultType}
	}
	return domain.SortedUnique(detected)
}

// nodeProjectType classifies a package.json: next dependency means a site,
// a build script means an app, anything else a lib. An unreadable file
// still counts as a lib.
func nodeProjectType(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		return "lib"
	}

	var pkg struct {
		Dependencies map[string]string `json:"dependencies"`
		Scripts      map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "lib"
	}
	if _, ok := pkg.Dependencies["next"]; ok {
		return "site"
	}
	if _, ok := pkg.Scripts["build"]; ok {
		return "app"
	}
	return "lib"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
