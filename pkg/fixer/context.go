package fixer

import (
	"context"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/edit"
	"github.com/yaklabco/gophpfix/pkg/fixer/imports"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// RuleContext provides all context needed by a rule to perform one fix pass.
//
// Design note: RuleContext stores context.Context as a field (Ctx) rather than
// passing it as a method parameter. This is acceptable because RuleContext is
// a short-lived parameter object created per-rule-invocation, not a long-lived
// struct. It keeps the Rule interface to a single Apply method while still
// providing cancellation support via the Cancelled() helper.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the pass-start snapshot of the file being fixed.
	File *phptok.FileSnapshot

	// Tokens is the live sequence the rule scans. Earlier rules in the same
	// engine pass may already have rewritten it; positions recorded on Script
	// refer to this sequence.
	Tokens phptok.Sequence

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Script accumulates token edits for auto-fix.
	Script *edit.Script

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	// importTable is the cached import table, lazily initialized.
	importTable *imports.Table
}

// NewRuleContext creates a RuleContext for the given sequence and configuration.
func NewRuleContext(
	ctx context.Context,
	file *phptok.FileSnapshot,
	tokens phptok.Sequence,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Tokens:     tokens,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Script:     edit.NewScript(),
	}
}

// Cancelled reports whether Ctx has been cancelled, without blocking.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// PositionAt returns the source position of the token at pos in the live
// sequence.
func (rc *RuleContext) PositionAt(pos int) phptok.SourcePosition {
	if rc.File == nil {
		return phptok.SourcePosition{}
	}
	return rc.File.PositionAt(rc.Tokens, pos)
}

// Imports returns the import table for this file, building it lazily from the
// live sequence. The table tracks existing `use` statements plus bindings
// planned by import-hoisting rules earlier in the same pass.
func (rc *RuleContext) Imports() *imports.Table {
	if rc.importTable == nil {
		rc.importTable = imports.Collect(rc.Tokens)
	}
	return rc.importTable
}

// Option returns the raw rule option stored under key, or def when the rule
// has no config or the key is absent.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

// optionAs narrows a raw option to T, falling back to def on a type mismatch.
func optionAs[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.Option(key, def).(T); ok {
		return v
	}
	return def
}

// OptionString returns a string-typed rule option, or def.
func (rc *RuleContext) OptionString(key string, def string) string {
	return optionAs(rc, key, def)
}

// OptionBool returns a bool-typed rule option, or def.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return optionAs(rc, key, def)
}

// OptionInt returns an int-typed rule option, or def. YAML decodes some
// numbers as float64, so those are accepted and truncated.
func (rc *RuleContext) OptionInt(key string, def int) int {
	switch v := rc.Option(key, def).(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// OptionStringSlice returns a string-slice rule option, or def. Lists coming
// out of the YAML decoder arrive as []any and are converted element-wise.
func (rc *RuleContext) OptionStringSlice(key string, def []string) []string {
	switch v := rc.Option(key, def).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
