package fragments_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omdtools/omd/internal/adapters/outbound/fragments"
	"github.com/omdtools/omd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_RendersAgainstContext(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "languages/python.yaml.tmpl", `
languages:
  python:
    settings:
      python.defaultInterpreterPath: ./venv/bin/python
{{- if has "infra" .Types }}
      python.analysis.extraPaths: [modules]
{{- end }}
`)

	loader := fragments.New(dir)

	frag, warning := loader.Load(domain.FragmentLanguage, "python", domain.RenderContext{
		Language: "python",
		Types:    []string{"lib"},
		Platform: "github",
	})
	require.Empty(t, warning)
	require.NotNil(t, frag)

	langs := frag.Data["languages"].(map[string]any)
	settings := langs["python"].(map[string]any)["settings"].(map[string]any)
	assert.Equal(t, "./venv/bin/python", settings["python.defaultInterpreterPath"])
	assert.NotContains(t, settings, "python.analysis.extraPaths")

	frag, warning = loader.Load(domain.FragmentLanguage, "python", domain.RenderContext{
		Language: "python",
		Types:    []string{"infra"},
		Platform: "github",
	})
	require.Empty(t, warning)
	settings = frag.Data["languages"].(map[string]any)["python"].(map[string]any)["settings"].(map[string]any)
	assert.Contains(t, settings, "python.analysis.extraPaths")
}

func TestLoader_AbsentFragmentIsNotAnError(t *testing.T) {
	loader := fragments.New(t.TempDir())

	frag, warning := loader.Load(domain.FragmentLanguage, "cobol", domain.RenderContext{})
	assert.Nil(t, frag)
	assert.Empty(t, warning)
}

func TestLoader_BrokenTemplateWarns(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "languages/go.yaml.tmpl", "{{ .Missing | bogus }}")

	frag, warning := fragments.New(dir).Load(domain.FragmentLanguage, "go", domain.RenderContext{})
	assert.Nil(t, frag)
	assert.NotEmpty(t, warning)
}

func TestLoader_InvalidYAMLOutputWarns(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "platforms/github.yaml.tmpl", "{invalid: [yaml")

	frag, warning := fragments.New(dir).Load(domain.FragmentPlatform, "github", domain.RenderContext{})
	assert.Nil(t, frag)
	assert.Contains(t, warning, "invalid YAML")
}

func TestLoader_EmptyOutputIsAbsent(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "languages/json.yaml.tmpl", "")

	frag, warning := fragments.New(dir).Load(domain.FragmentLanguage, "json", domain.RenderContext{})
	assert.Nil(t, frag)
	assert.Empty(t, warning)
}

func TestLoader_PlatformNamespaceSeparate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "platforms/github.yaml.tmpl", "workflows: true\n")

	frag, warning := fragments.New(dir).Load(domain.FragmentLanguage, "github", domain.RenderContext{})
	assert.Nil(t, frag)
	assert.Empty(t, warning)

	frag, warning = fragments.New(dir).Load(domain.FragmentPlatform, "github", domain.RenderContext{})
	require.Empty(t, warning)
	require.NotNil(t, frag)
	assert.Equal(t, true, frag.Data["workflows"])
}
