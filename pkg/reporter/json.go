package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gophpfix/pkg/runner"
)

const severityWarning = "warning"

// JSONOutput is the document envelope for --format json. The schema is
// versioned so CI consumers can detect breaking changes.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file's entry in the output.
type JSONFileResult struct {
	Path         string           `json:"path"`
	Diagnostics  []JSONDiagnostic `json:"diagnostics"`
	Modified     bool             `json:"modified,omitempty"`
	EditsApplied int              `json:"editsApplied,omitempty"`
	FixPasses    int              `json:"fixPasses,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// JSONDiagnostic mirrors fixer.Diagnostic with JSON field names.
type JSONDiagnostic struct {
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

// JSONSummary aggregates counts over the whole run.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	EditsApplied    int            `json:"editsApplied"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter emits machine-readable results, indented by default and on
// a single line with Options.Compact.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	for i := range result.Files {
		entry := jsonFileEntry(&result.Files[i], &output.Summary)

		if len(entry.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		if entry.Modified {
			output.Summary.FilesModified++
		}
		output.Summary.EditsApplied += entry.EditsApplied
		output.Summary.FilesChecked++
		output.Files = append(output.Files, entry)
	}

	return output
}

func jsonFileEntry(outcome *runner.FileOutcome, summary *JSONSummary) JSONFileResult {
	entry := JSONFileResult{
		Path:        outcome.Path,
		Diagnostics: make([]JSONDiagnostic, 0),
	}

	if outcome.Error != nil {
		entry.Error = outcome.Error.Error()
		summary.FilesErrored++
	}

	res := outcome.Result
	if res == nil {
		return entry
	}
	entry.Modified = res.Written
	entry.EditsApplied = res.TotalEditsApplied
	entry.FixPasses = res.FixPasses

	if res.FileResult == nil {
		return entry
	}
	for _, diag := range res.Diagnostics {
		entry.Diagnostics = append(entry.Diagnostics, JSONDiagnostic{
			RuleID:      diag.RuleID,
			RuleName:    diag.RuleName,
			Severity:    string(diag.Severity),
			Message:     diag.Message,
			StartLine:   diag.StartLine,
			StartColumn: diag.StartColumn,
			EndLine:     diag.EndLine,
			EndColumn:   diag.EndColumn,
			Suggestion:  diag.Suggestion,
			Fixable:     diag.Fixable,
		})
		summary.TotalIssues++

		severity := string(diag.Severity)
		if severity == "" {
			severity = severityWarning
		}
		summary.BySeverity[severity]++
	}

	return entry
}
