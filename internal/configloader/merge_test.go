package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
)

func TestMergeScalars(t *testing.T) {
	base := config.NewConfig()
	override := &config.Config{
		PHPVersion:      config.PHP84,
		SeverityDefault: "error",
		Jobs:            4,
	}

	merged := merge(base, override)

	assert.Equal(t, config.PHP84, merged.PHPVersion)
	assert.Equal(t, "error", merged.SeverityDefault)
	assert.Equal(t, 4, merged.Jobs)
}

func TestMergeZeroValuesDoNotOverride(t *testing.T) {
	base := config.NewConfig()
	base.PHPVersion = config.PHP83
	base.Fix = true

	merged := merge(base, &config.Config{})

	assert.Equal(t, config.PHP83, merged.PHPVersion)
	assert.True(t, merged.Fix)
}

func TestMergeSlicesReplace(t *testing.T) {
	base := config.NewConfig()
	base.Ignore = []string{"vendor/**", "dist/**"}

	merged := merge(base, &config.Config{Ignore: []string{"build/**"}})

	assert.Equal(t, []string{"build/**"}, merged.Ignore)
}

func TestMergeRuleConfigsDeep(t *testing.T) {
	enabled := true
	sev := "error"

	base := config.NewConfig()
	base.Rules["PHF001"] = config.RuleConfig{
		Enabled: &enabled,
		Options: map[string]any{"suffix": "Interface", "keep": 1},
	}

	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"PHF001": {
				Severity: &sev,
				Options:  map[string]any{"suffix": "Contract"},
			},
			"PHF030": {Enabled: &enabled},
		},
	}

	merged := merge(base, override)

	rc := merged.Rules["PHF001"]
	require.NotNil(t, rc.Enabled)
	assert.True(t, *rc.Enabled)
	require.NotNil(t, rc.Severity)
	assert.Equal(t, "error", *rc.Severity)
	assert.Equal(t, "Contract", rc.Options["suffix"])
	assert.Equal(t, 1, rc.Options["keep"])

	_, ok := merged.Rules["PHF030"]
	assert.True(t, ok)
}

func TestMergeNil(t *testing.T) {
	cfg := config.NewConfig()

	assert.Same(t, cfg, merge(nil, cfg))
	assert.Same(t, cfg, merge(cfg, nil))
}

func TestMergeAll(t *testing.T) {
	lowest := config.NewConfig()
	middle := &config.Config{PHPVersion: config.PHP83}
	highest := &config.Config{PHPVersion: config.PHP84, SeverityDefault: "error"}

	merged := MergeAll(lowest, middle, highest)

	assert.Equal(t, config.PHP84, merged.PHPVersion)
	assert.Equal(t, "error", merged.SeverityDefault)

	assert.Nil(t, MergeAll())
}
