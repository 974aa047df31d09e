// Package tui renders validation and detection results for the terminal.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/omdtools/omd/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 56))
)

// RenderValidationResult renders one repository's validation outcome.
func RenderValidationResult(result *domain.ValidationResult) string {
	var b strings.Builder

	verdict := passStyle.Bold(true).Render("VALID")
	if !result.Valid {
		verdict = failStyle.Bold(true).Render("INVALID")
	}
	header := titleStyle.Render(result.RepositoryPath) + "  " + verdict
	if len(result.RepositoryType) > 0 {
		header += "\n" + dimStyle.Render("types: "+strings.Join(result.RepositoryType, ", "))
	}
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n")

	if len(result.FilesValidated) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + sectionStyle.Render("Files") + "\n")
		for _, name := range sortedFileNames(result.FilesValidated) {
			file := result.FilesValidated[name]
			mark := passStyle.Render("✓")
			if !file.Valid {
				mark = failStyle.Render("✗")
			}
			b.WriteString(fmt.Sprintf("    %s %s\n", mark, name))
		}
	}

	if len(result.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + sectionStyle.Render("Errors") + " " + dimStyle.Render(fmt.Sprintf("(%d)", len(result.Errors))) + "\n")
		for _, e := range result.Errors {
			b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("●"), e))
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + sectionStyle.Render("Warnings") + " " + dimStyle.Render(fmt.Sprintf("(%d)", len(result.Warnings))) + "\n")
		for _, w := range result.Warnings {
			b.WriteString(fmt.Sprintf("    %s %s\n", warnStyle.Render("●"), w))
		}
	}

	b.WriteString("\n  " + separatorLine + "\n")
	if result.Valid {
		b.WriteString("  " + passStyle.Render("Repository configuration is valid.") + "\n")
	} else {
		b.WriteString("  " + failStyle.Render("Repository configuration is invalid.") + "\n")
	}
	return b.String()
}

// RenderMetadata renders detected or resolved repository metadata.
func RenderMetadata(title string, meta domain.RepositoryMetadata) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(titleStyle.Render(title) + "  " + dimStyle.Render(meta.Name)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render(fmt.Sprintf("%-20s", label)), value))
	}
	row("platform", meta.Platform)
	row("deployment_platform", meta.DeploymentPlatform)
	row("types", strings.Join(meta.Types, ", "))
	row("languages", strings.Join(meta.Languages, ", "))
	row("tags", strings.Join(meta.Tags, ", "))
	if meta.CopilotEnabled {
		row("copilot", "enabled")
	}
	return b.String()
}

func sortedFileNames(files map[string]domain.FileResult) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
