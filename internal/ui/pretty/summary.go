package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine renders run statistics on a single line, e.g.
// "12 issues (8 errors, 4 warnings), in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	editsNote := ""
	if stats.EditsApplied > 0 {
		editsNote = s.Success.Render(fmt.Sprintf("%d edits applied in %d %s",
			stats.EditsApplied, stats.FilesModified, fileNoun(stats.FilesModified)))
	}

	if stats.DiagnosticsTotal == 0 {
		line := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		// Edits can still have been applied when every issue got fixed.
		if editsNote != "" {
			line += ", " + editsNote
		}
		return line + "\n"
	}

	issueWord := "issues"
	if stats.DiagnosticsTotal == 1 {
		issueWord = "issue"
	}

	var bySeverity []string
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		bySeverity = append(bySeverity, s.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		bySeverity = append(bySeverity, s.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		bySeverity = append(bySeverity, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, issueWord)
	if len(bySeverity) > 0 {
		head += fmt.Sprintf(" (%s)", strings.Join(bySeverity, ", "))
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, fileNoun(stats.FilesWithIssues)),
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if editsNote != "" {
		parts = append(parts, editsNote)
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders run statistics as a multi-line block with a verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	b.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesWithIssues > 0 {
		b.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesModified > 0 {
		b.WriteString("  Files modified:    " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		b.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		b.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		b.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(n)) + "\n")
	}

	b.WriteString("\n")
	switch {
	case stats.DiagnosticsBySeverity["error"] > 0:
		b.WriteString(s.Failure.Render("Fix run failed with errors"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		b.WriteString(s.Warning.Render("Fix run completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Fix run passed"))
	}
	b.WriteString("\n")

	return b.String()
}

func fileNoun(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
