package application_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/omdtools/omd/internal/adapters/outbound/detector"
	"github.com/omdtools/omd/internal/adapters/outbound/fragments"
	"github.com/omdtools/omd/internal/adapters/outbound/generator"
	"github.com/omdtools/omd/internal/adapters/outbound/metadata"
	"github.com/omdtools/omd/internal/application"
	"github.com/omdtools/omd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSetupService(t *testing.T) *application.SetupService {
	t.Helper()
	return application.NewSetupService(
		metadata.New(),
		detector.New(nil),
		generator.New(fragments.New(t.TempDir())),
	)
}

func TestSetupService_ConfiguredRepository(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "repository.yaml", `
name: payments
platform: github
types: [lib]
languages: [python]
`)

	var out bytes.Buffer
	result, err := newSetupService(t).Setup(repo, &out)
	require.NoError(t, err)

	assert.False(t, result.Detected)
	assert.Equal(t, "payments", result.Resolved.Name)
	assert.Contains(t, result.GeneratedFiles, "payments.code-workspace")
	assert.FileExists(t, filepath.Join(repo, ".vscode", "settings.json"))
	assert.Contains(t, out.String(), "payments.code-workspace")
}

func TestSetupService_DetectsAndPersistsWhenMetadataMissing(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "main.tf"), []byte(""), 0o644))

	result, err := newSetupService(t).Setup(repo, io.Discard)
	require.NoError(t, err)

	assert.True(t, result.Detected)
	assert.Equal(t, []string{"infra"}, result.Resolved.Types)
	assert.FileExists(t, filepath.Join(repo, ".omd", "repository.yaml"))

	// A second run loads the persisted metadata instead of re-detecting.
	result, err = newSetupService(t).Setup(repo, io.Discard)
	require.NoError(t, err)
	assert.False(t, result.Detected)
}

func TestSetupService_OverridesApplied(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "repository.yaml", `
name: payments
platform: github
types: [lib]
languages: [python]
`)
	writeRepoFile(t, repo, "overrides.yaml", `
repository:
  types: [app]
languages:
  go: {}
`)

	result, err := newSetupService(t).Setup(repo, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, []string{"app"}, result.Resolved.Types)
	assert.Equal(t, []string{"python", "go"}, result.Resolved.Languages)

	// The base document on disk is untouched.
	meta, err := metadata.New().Load(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib"}, meta.Types)
}

func TestSetupService_BrokenFragmentWarningSurfaced(t *testing.T) {
	templates := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(templates, "languages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "languages", "python.yaml.tmpl"), []byte("{{ .NoSuchField }}"), 0o644))
	svc := application.NewSetupService(
		metadata.New(),
		detector.New(nil),
		generator.New(fragments.New(templates)),
	)

	repo := t.TempDir()
	writeRepoFile(t, repo, "repository.yaml", "name: payments\nplatform: github\ntypes: [lib]\nlanguages: [python]\n")

	var out bytes.Buffer
	result, err := svc.Setup(repo, &out)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "python")
	assert.Contains(t, out.String(), "warning:")
	assert.Contains(t, result.GeneratedFiles, "payments.code-workspace")
}

func TestSetupService_MalformedOverridesAbort(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "repository.yaml", "platform: github\ntypes: [lib]\nlanguages: [python]\n")
	writeRepoFile(t, repo, "overrides.yaml", "repository: [not, a, mapping]\n")

	_, err := newSetupService(t).Setup(repo, io.Discard)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(repo, ".vscode", "settings.json"))
}

func TestSetupService_ResolveRepository(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "repository.yaml", "name: payments\nplatform: github\ntypes: [lib]\nlanguages: [python]\n")
	writeRepoFile(t, repo, "overrides.yaml", "repository:\n  platform: gitlab\n")

	resolved, err := newSetupService(t).ResolveRepository(repo)
	require.NoError(t, err)
	assert.Equal(t, "gitlab", resolved.Platform)
}

func TestSetupService_ResolveRepository_Missing(t *testing.T) {
	_, err := newSetupService(t).ResolveRepository(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingMetadata)
}

func TestSetupService_Detect(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "Dockerfile"), []byte("FROM scratch\n"), 0o644))

	meta, err := newSetupService(t).Detect(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, meta.Types)
	// Nothing was persisted.
	assert.NoFileExists(t, filepath.Join(repo, ".omd", "repository.yaml"))
}
