package fixer

import (
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// DiagnosticBuilder assembles a Diagnostic fluently. RuleName and the
// resolved severity are filled in by the engine after Apply returns, so
// rules normally only set a suggestion and the fix marker.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts a diagnostic for the given rule, file, and span.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos phptok.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion attaches a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix marks the diagnostic as carrying a recorded fix.
func (b *DiagnosticBuilder) WithFix() *DiagnosticBuilder {
	b.diag.Fixable = true
	return b
}

// Build returns the assembled Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
