// Package analysis folds runner results into the aggregate views the
// output renderers share, so each renderer formats rather than computes.
package analysis

import "time"

// Report is the analyzed form of a run: one flat diagnostic list plus
// per-file and per-rule aggregations, each optional per Options.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile aggregates per file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule aggregates per rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals holds the run-wide counters.
	Totals Totals `json:"summary"`

	// Version identifies the report schema.
	Version string `json:"version"`

	// Timestamp records when the analysis ran.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic with its display path resolved.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
	Fixable     bool   `json:"fixable"`
}

// Totals carries the run-wide counters.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesModified   int `json:"filesModified"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
	EditsApplied    int `json:"editsApplied"`
}

// HasIssues reports whether any diagnostics were produced.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-severity diagnostics were produced.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis aggregates one file's diagnostics.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates one rule's diagnostics across all files.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
