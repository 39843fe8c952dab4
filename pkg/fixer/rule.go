// Package fixer provides the rule engine, diagnostics, and registry for gophpfix.
package fixer

import (
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// Diagnostic is one style issue a rule found in a file. Line and column
// numbers are 1-based and refer to the pass-start snapshot.
type Diagnostic struct {
	// RuleID identifies the rule that raised the issue, e.g. "PHF001".
	RuleID string

	// RuleName is the rule's readable name, e.g. "interface-name-suffix".
	RuleName string

	// Message describes the issue for humans.
	Message string

	// Severity is the resolved severity the issue was raised at.
	Severity config.Severity

	// FilePath locates the offending file.
	FilePath string

	// StartLine and StartColumn mark where the issue begins.
	StartLine   int
	StartColumn int

	// EndLine and EndColumn mark where it ends.
	EndLine   int
	EndColumn int

	// Suggestion optionally tells the user how to fix the issue by hand.
	Suggestion string

	// Fixable is true when the rule recorded edits for this issue.
	Fixable bool
}

// HasFix reports whether the rule recorded edits for this diagnostic.
func (d *Diagnostic) HasFix() bool {
	return d.Fixable
}

// SourcePosition returns the diagnostic's span as a phptok.SourcePosition.
func (d *Diagnostic) SourcePosition() phptok.SourcePosition {
	return phptok.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is one house-style check over a token sequence.
type Rule interface {
	// ID returns the unique rule identifier, e.g. "PHF001".
	ID() string

	// Name returns the rule's readable name.
	Name() string

	// Description explains what the rule checks.
	Description() string

	// DefaultEnabled reports whether the rule runs without explicit config.
	DefaultEnabled() bool

	// DefaultSeverity is the severity used when config does not override it.
	DefaultSeverity() config.Severity

	// Tags categorizes the rule, e.g. ["naming", "imports"].
	Tags() []string

	// CanFix reports whether the rule can rewrite the issues it finds.
	CanFix() bool

	// Apply runs the rule over ctx.Tokens and returns its diagnostics.
	//
	// Rules must:
	//   - Return diagnostics for each violation found.
	//   - Record rewrites on ctx.Script (if CanFix() is true).
	//   - Skip any occurrence they cannot confidently rewrite, leaving its
	//     bytes untouched, rather than guessing.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// VersionGated is implemented by rules whose rewrites require a minimum PHP
// language level. Such rules are disabled at resolve time when the configured
// target version is older.
type VersionGated interface {
	MinPHPVersion() config.TargetVersion
}

// SinglePass is implemented by rules whose rewrites compound when re-applied
// to their own output, such as counter bumps. The fix loop runs these rules
// on its first pass only, so one run advances the value by exactly one step
// and the loop can still converge.
type SinglePass interface {
	SinglePassOnly()
}
