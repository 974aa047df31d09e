package domain_test

import (
	"testing"

	"github.com/omdtools/omd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseMetadata(t *testing.T, doc string) domain.RepositoryMetadata {
	t.Helper()
	var m domain.RepositoryMetadata
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
	return m
}

func TestMetadata_CanonicalDocument(t *testing.T) {
	m := parseMetadata(t, `
name: payments
description: Payment processing
platform: github
deployment_platform: aws
types: [lib, tool]
languages: [python, yaml]
tags: [internal]
copilot_enabled: true
`)

	assert.Equal(t, "payments", m.Name)
	assert.Equal(t, "github", m.Platform)
	assert.Equal(t, "aws", m.DeploymentPlatform)
	assert.Equal(t, []string{"lib", "tool"}, m.Types)
	assert.Equal(t, []string{"python", "yaml"}, m.Languages)
	assert.Equal(t, []string{"internal"}, m.Tags)
	assert.True(t, m.CopilotEnabled)
	require.NoError(t, m.Validate())
}

func TestMetadata_ScalarListsNormalized(t *testing.T) {
	m := parseMetadata(t, `
platform: github
types: lib
languages: terraform
tags: aws
`)

	assert.Equal(t, []string{"lib"}, m.Types)
	assert.Equal(t, []string{"terraform"}, m.Languages)
	assert.Equal(t, []string{"aws"}, m.Tags)
}

func TestMetadata_CIPlatformAlias(t *testing.T) {
	m := parseMetadata(t, `
ci_platform: azuredevops
types: [infra]
languages: [terraform]
`)
	assert.Equal(t, "azuredevops", m.Platform)

	// Canonical key wins over the alias.
	m = parseMetadata(t, `
platform: github
ci_platform: azuredevops
types: [lib]
languages: [go]
`)
	assert.Equal(t, "github", m.Platform)
}

func TestMetadata_CopilotInstructionsAlias(t *testing.T) {
	m := parseMetadata(t, `
platform: github
types: [lib]
languages: [go]
copilot_instructions: true
`)
	assert.True(t, m.CopilotEnabled)
}

func TestMetadata_ValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"missing languages", "platform: github\ntypes: [lib]", "languages is required"},
		{"missing types", "platform: github\nlanguages: [go]", "types is required"},
		{"missing platform", "types: [lib]\nlanguages: [go]", "platform is required"},
		{"unknown platform", "platform: jenkins\ntypes: [lib]\nlanguages: [go]", "unknown platform"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := parseMetadata(t, tc.doc)
			err := m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestMetadata_NonMappingRejected(t *testing.T) {
	var m domain.RepositoryMetadata
	err := yaml.Unmarshal([]byte("- just\n- a\n- list\n"), &m)
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMetadata_CloneIsDeep(t *testing.T) {
	m := baseMetadata()
	c := m.Clone()
	c.Languages[0] = "mutated"
	c.Types = append(c.Types, "extra")

	assert.Equal(t, []string{"python", "yaml"}, m.Languages)
	assert.Equal(t, []string{"lib"}, m.Types)
}

func TestMetadata_RoundTripUsesCanonicalKeys(t *testing.T) {
	m := parseMetadata(t, `
ci_platform: github
types: lib
languages: [go]
`)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "platform: github")
	assert.NotContains(t, string(out), "ci_platform")
}

func TestDefaultMetadata(t *testing.T) {
	m := domain.DefaultMetadata("scratch")
	assert.Equal(t, "scratch", m.Name)
	require.NoError(t, m.Validate())
}
