package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omdtools/omd/internal/adapters/outbound/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repositorySchema = `
type: object
required: [platform, types, languages]
properties:
  name:
    type: string
  platform:
    type: string
    enum: [github, azuredevops, gitlab, bitbucket]
  types:
    type: array
    items:
      type: string
  languages:
    type: array
    items:
      type: string
`

const indexYAML = `
repository_schemas:
  type_specific_schemas:
    app:
      required_schemas:
        - deployment.yaml
      optional_schemas:
        - monitoring.yaml
`

func writeSchemaDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repository.yaml"), []byte(repositorySchema), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.yaml"), []byte(indexYAML), 0o644))
	return dir
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidator_ValidDocument(t *testing.T) {
	v, err := schema.Load(writeSchemaDir(t))
	require.NoError(t, err)

	doc := writeDoc(t, t.TempDir(), "repository.yaml", `
name: payments
platform: github
types: [lib]
languages: [python]
`)

	valid, errs := v.ValidateFile(doc, "repository")
	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestValidator_InvalidDocument(t *testing.T) {
	v, err := schema.Load(writeSchemaDir(t))
	require.NoError(t, err)

	doc := writeDoc(t, t.TempDir(), "repository.yaml", `
platform: jenkins
types: [lib]
languages: [python]
`)

	valid, errs := v.ValidateFile(doc, "repository")
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestValidator_MissingRequiredProperty(t *testing.T) {
	v, err := schema.Load(writeSchemaDir(t))
	require.NoError(t, err)

	doc := writeDoc(t, t.TempDir(), "repository.yaml", "platform: github\n")

	valid, errs := v.ValidateFile(doc, "repository")
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestValidator_UnparseableDocument(t *testing.T) {
	v, err := schema.Load(writeSchemaDir(t))
	require.NoError(t, err)

	doc := writeDoc(t, t.TempDir(), "repository.yaml", "{broken: [yaml")

	valid, errs := v.ValidateFile(doc, "repository")
	assert.False(t, valid)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "parsing YAML")
}

func TestValidator_IndexParsed(t *testing.T) {
	v, err := schema.Load(writeSchemaDir(t))
	require.NoError(t, err)

	idx := v.Index()
	require.NotNil(t, idx)
	assert.Equal(t, []string{"deployment", "repository"}, idx.RequiredSchemas([]string{"app"}))
	assert.Equal(t, []string{"monitoring"}, idx.OptionalSchemas([]string{"app"}))
}

func TestValidator_MissingIndexWarnsAndDegrades(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repository.yaml"), []byte(repositorySchema), 0o644))

	v, err := schema.Load(dir)
	require.NoError(t, err)
	assert.Nil(t, v.Index())
	assert.NotEmpty(t, v.Warnings())
	assert.Equal(t, []string{"repository"}, v.Index().RequiredSchemas([]string{"app"}))
}

func TestValidator_BrokenSchemaSkippedWithWarning(t *testing.T) {
	dir := writeSchemaDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{nope: ["), 0o644))

	v, err := schema.Load(dir)
	require.NoError(t, err)
	assert.False(t, v.HasSchema("broken"))
	assert.True(t, v.HasSchema("repository"))

	found := false
	for _, w := range v.Warnings() {
		if strings.Contains(w, "broken.yaml") {
			found = true
		}
	}
	assert.True(t, found, "expected a warning naming broken.yaml")
}

func TestValidator_UnknownSchemaName(t *testing.T) {
	v, err := schema.Load(writeSchemaDir(t))
	require.NoError(t, err)

	doc := writeDoc(t, t.TempDir(), "x.yaml", "a: 1\n")
	valid, errs := v.ValidateFile(doc, "nonexistent")
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestValidator_MissingDirectory(t *testing.T) {
	_, err := schema.Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

