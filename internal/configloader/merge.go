package configloader

import (
	"maps"

	"github.com/yaklabco/gophpfix/pkg/config"
)

// merge layers override on top of base and returns the combined config.
// Scalars and booleans win only when non-zero, so a config file cannot
// unset a boolean a lower layer turned on. Slices replace wholesale when
// non-nil. The rules map merges per rule.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	overlay(&result.PHPVersion, override.PHPVersion)
	overlay(&result.SeverityDefault, override.SeverityDefault)
	overlay(&result.Format, override.Format)
	overlay(&result.RuleFormat, override.RuleFormat)
	overlay(&result.Jobs, override.Jobs)
	overlay(&result.Fix, override.Fix)
	overlay(&result.DryRun, override.DryRun)
	overlay(&result.NoBackups, override.NoBackups)
	overlay(&result.Backups.Mode, override.Backups.Mode)
	overlay(&result.Backups.Enabled, override.Backups.Enabled)

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}
	if override.FixRules != nil {
		result.FixRules = override.FixRules
	}

	return &result
}

// overlay writes val into dst unless val is the zero value. For booleans
// this means true always wins and false never overrides.
func overlay[T comparable](dst *T, val T) {
	var zero T
	if val != zero {
		*dst = val
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, overrideCfg := range override {
		if baseCfg, ok := result[key]; ok {
			overrideCfg = mergeRuleConfig(baseCfg, overrideCfg)
		}
		result[key] = overrideCfg
	}
	return result
}

// mergeRuleConfig combines one rule's settings; set pointers in override
// win, options merge key by key into a fresh map.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}

	if override.Options != nil {
		merged := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(merged, base.Options)
		maps.Copy(merged, override.Options)
		result.Options = merged
	}

	return result
}

// MergeAll folds configs left to right, later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
