package domain_test

import (
	"testing"

	"github.com/omdtools/omd/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMergeSettings_EmptyOverrideIsIdentity(t *testing.T) {
	base := map[string]any{"editor.formatOnSave": true, "go.lintTool": "golangci-lint"}

	result := domain.MergeSettings(base, map[string]any{})
	assert.Equal(t, base, result)
}

func TestMergeSettings_EmptyBaseTakesOverrides(t *testing.T) {
	overrides := map[string]any{"files.trimTrailingWhitespace": true}

	result := domain.MergeSettings(map[string]any{}, overrides)
	assert.Equal(t, overrides, result)
}

func TestMergeSettings_NullDeletesKey(t *testing.T) {
	base := map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
	}
	overrides := map[string]any{
		"a": map[string]any{"b": nil},
	}

	result := domain.MergeSettings(base, overrides)
	assert.Equal(t, map[string]any{"a": map[string]any{"c": 2}}, result)
}

func TestMergeSettings_DeepMerge(t *testing.T) {
	base := map[string]any{
		"a": map[string]any{"x": map[string]any{"y": 1}},
	}
	overrides := map[string]any{
		"a": map[string]any{"x": map[string]any{"z": 2}},
	}

	result := domain.MergeSettings(base, overrides)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"x": map[string]any{"y": 1, "z": 2}},
	}, result)
}

func TestMergeSettings_TypeMismatchReplaces(t *testing.T) {
	base := map[string]any{"a": map[string]any{"b": 1}}
	overrides := map[string]any{"a": []any{1, 2}}

	result := domain.MergeSettings(base, overrides)
	assert.Equal(t, map[string]any{"a": []any{1, 2}}, result)
}

func TestMergeSettings_SequencesReplaceNotMerge(t *testing.T) {
	base := map[string]any{"exclude": []any{"vendor"}}
	overrides := map[string]any{"exclude": []any{"dist"}}

	result := domain.MergeSettings(base, overrides)
	assert.Equal(t, map[string]any{"exclude": []any{"dist"}}, result)
}

func TestMergeSettings_BaseOnlyKeysPreserved(t *testing.T) {
	base := map[string]any{"keep": "me", "patch": map[string]any{"a": 1}}
	overrides := map[string]any{"patch": map[string]any{"b": 2}}

	result := domain.MergeSettings(base, overrides)
	assert.Equal(t, "me", result["keep"])
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, result["patch"])
}

func TestMergeSettings_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"nested": map[string]any{"a": 1},
	}
	overrides := map[string]any{
		"nested": map[string]any{"b": 2},
		"extra":  nil,
	}

	_ = domain.MergeSettings(base, overrides)

	assert.Equal(t, map[string]any{"nested": map[string]any{"a": 1}}, base)
	assert.Equal(t, map[string]any{"b": 2}, overrides["nested"])
	assert.Contains(t, overrides, "extra")
}

func TestMergeSettings_Deterministic(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1}, "b": 2}
	overrides := map[string]any{"a": map[string]any{"y": 2}, "c": 3}

	first := domain.MergeSettings(base, overrides)
	second := domain.MergeSettings(base, overrides)
	assert.Equal(t, first, second)
}
