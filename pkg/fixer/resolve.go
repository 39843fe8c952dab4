package fixer

import (
	"slices"

	"github.com/yaklabco/gophpfix/pkg/config"
)

// ResolvedRule is a Rule together with the settings it will run under after
// defaults, config file entries, and CLI flags have been combined.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules resolves every registered rule against cfg and returns the
// enabled ones in registry (rule ID) order, which is also the order fixers
// mutate the token sequence in.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var enabled []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolveRule(rule, cfg); rr.Enabled {
			enabled = append(enabled, rr)
		}
	}
	return enabled
}

func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	// Rules gated on a newer language level than the target never run.
	if gated, ok := rule.(VersionGated); ok && cfg.PHPVersion != "" {
		if !cfg.PHPVersion.AtLeast(gated.MinPHPVersion()) {
			rr.Enabled = false
			return rr
		}
	}

	// CLI enable/disable flags, disable winning on conflict.
	if slices.Contains(cfg.EnableRules, rule.ID()) {
		rr.Enabled = true
	}
	if slices.Contains(cfg.DisableRules, rule.ID()) {
		rr.Enabled = false
	}

	// Per-rule config file entries override the defaults above.
	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	// --fix-rules narrows fixing to the listed rules only.
	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && slices.Contains(cfg.FixRules, rule.ID())
	}

	// Without --fix nothing is rewritten.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
