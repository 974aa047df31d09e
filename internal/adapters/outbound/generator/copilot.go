package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/omdtools/omd/internal/domain"
)

// instructionPurposes maps a language to the one-line purpose shown in the
// Copilot instructions index.
var instructionPurposes = map[string]string{
	"markdown":   "Markdown writing standards, formatting guidelines and documentation quality",
	"python":     "Python development guidelines, testing standards and environment management",
	"go":         "Go development guidelines, project structure and dependency management",
	"terraform":  "Terraform development guidelines, IaC practices and module conventions",
	"yaml":       "YAML configuration standards, validation and security",
	"json":       "JSON configuration management and schema validation",
	"shell":      "Shell scripting standards and POSIX compatibility",
	"powershell": "PowerShell scripting standards and Windows development",
	"sql":        "Database development standards, query optimization and migrations",
	"j2":         "Template development standards and formatting practices",
}

// writeCopilotInstructions renders .github/copilot-instructions.md plus one
// instruction file per declared language.
func (g *Generator) writeCopilotInstructions(repoPath string, resolved domain.ResolvedConfiguration, copilot CopilotSection) ([]string, error) {
	githubDir := filepath.Join(repoPath, ".github")
	instructionsDir := filepath.Join(githubDir, "instructions")
	if err := os.MkdirAll(instructionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating .github/instructions: %w", err)
	}

	var written []string
	for _, lang := range resolved.Languages {
		name := lang + ".instructions.md"
		content := instructionFile(resolved, lang)
		changed, err := writeFileIfChanged(filepath.Join(instructionsDir, name), []byte(content))
		if err != nil {
			return written, fmt.Errorf("writing %s: %w", name, err)
		}
		if changed {
			written = append(written, filepath.Join(".github", "instructions", name))
		}
	}

	index := copilotIndex(resolved, copilot)
	indexPath := filepath.Join(githubDir, "copilot-instructions.md")
	changed, err := writeFileIfChanged(indexPath, []byte(index))
	if err != nil {
		return written, fmt.Errorf("writing copilot-instructions.md: %w", err)
	}
	if changed {
		written = append(written, filepath.Join(".github", "copilot-instructions.md"))
	}
	return written, nil
}

func copilotIndex(resolved domain.ResolvedConfiguration, copilot CopilotSection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", resolved.Name)
	fmt.Fprintf(&b, "%s\n\n", describeRepository(resolved))

	fmt.Fprintf(&b, "## Repository\n\n")
	fmt.Fprintf(&b, "- Types: %s\n", strings.Join(resolved.Types, ", "))
	fmt.Fprintf(&b, "- Languages: %s\n", strings.Join(resolved.Languages, ", "))
	fmt.Fprintf(&b, "- CI platform: %s\n", resolved.Platform)
	if resolved.DeploymentPlatform != "" {
		fmt.Fprintf(&b, "- Deployment platform: %s\n", resolved.DeploymentPlatform)
	}
	b.WriteString("\n")

	b.WriteString("## Instruction files\n\n")
	for _, lang := range resolved.Languages {
		purpose := instructionPurposes[lang]
		if purpose == "" {
			purpose = fmt.Sprintf("%s development guidelines", lang)
		}
		fmt.Fprintf(&b, "- `instructions/%s.instructions.md`: %s\n", lang, purpose)
	}

	if len(copilot.Instructions) > 0 || len(copilot.Rules) > 0 {
		b.WriteString("\n## Repository rules\n\n")
		for _, line := range copilot.Instructions {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		for _, line := range copilot.Rules {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

func instructionFile(resolved domain.ResolvedConfiguration, lang string) string {
	purpose := instructionPurposes[lang]
	if purpose == "" {
		purpose = fmt.Sprintf("%s development guidelines", lang)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s instructions\n\n", titleCase(lang))
	fmt.Fprintf(&b, "## Purpose\n\n%s\n\n", purpose)
	fmt.Fprintf(&b, "## Guidelines\n\n")
	fmt.Fprintf(&b, "- Follow the established %s conventions in this repository\n", lang)
	fmt.Fprintf(&b, "- Keep changes consistent with existing formatting\n")
	fmt.Fprintf(&b, "- Document non-obvious behavior\n")
	return b.String()
}

// describeRepository prefers the declared description, falling back to one
// derived from the repository name.
func describeRepository(resolved domain.ResolvedConfiguration) string {
	if resolved.Description != "" {
		return resolved.Description
	}
	return fmt.Sprintf("Core %s repository for the %s component",
		strings.Join(resolved.Types, ", "), humanizeName(resolved.Name))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// humanizeName turns identifiers like "paymentsAPI" or "billing-service"
// into readable words.
func humanizeName(name string) string {
	if name == "" {
		return "unnamed"
	}
	var words []string
	for _, token := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	}) {
		for _, w := range camelcase.Split(token) {
			words = append(words, strings.ToLower(w))
		}
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}
