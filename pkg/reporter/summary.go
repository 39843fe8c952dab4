package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/analysis"
)

// Column layout for the summary tables. Both tables share tableWidth so
// they line up when printed together.
const (
	tableWidth        = 90
	ruleColWidth      = 30
	fileColWidth      = 60
	numColWidth       = 7
	warnColWidth      = 8
	fixableColWidth   = 8
	maxRuleNameLength = 28
	maxFilePathLength = 58
)

// SummaryRenderer prints per-rule and per-file aggregate tables followed
// by a totals line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	r.ruleTable(report.ByRule)
	fmt.Fprintln(r.out)
	r.fileTable(report.ByFile)
	fmt.Fprintln(r.out)
	r.totalsLine(report.Totals)

	return nil
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	r.tableHead("Rules Summary",
		padRight("Rule", ruleColWidth),
		padLeft("Count", numColWidth),
		padLeft("Errors", numColWidth),
		padLeft("Warnings", warnColWidth),
		padLeft("Fixable", fixableColWidth),
	)

	for _, rule := range rules {
		name := rule.RuleName
		if name == "" {
			name = rule.RuleID
		}
		if len(name) > maxRuleNameLength {
			name = name[:maxRuleNameLength] + "…"
		}

		fixable := padLeft("", fixableColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(padLeft("✓", fixableColWidth))
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.severityStyled(padRight(name, ruleColWidth), rule.Errors, rule.Warnings),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			fixable,
		)
	}
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	r.tableHead("Files Summary",
		padRight("File", fileColWidth),
		padLeft("Count", numColWidth),
		padLeft("Errors", numColWidth),
		padLeft("Warnings", warnColWidth),
	)

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			// Keep the tail; the filename matters more than the prefix.
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.severityStyled(padRight(path, fileColWidth), file.Errors, file.Warnings),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

// tableHead prints the bold title, a separator, the header cells, and a
// second separator. Cells must be padded before styling or the ANSI codes
// throw off the widths.
func (r *SummaryRenderer) tableHead(title string, cells ...string) {
	separator := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))

	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, separator)
	styled := make([]string, len(cells))
	for i, cell := range cells {
		styled[i] = r.styles.TableHeader.Render(cell)
	}
	fmt.Fprintln(r.out, strings.Join(styled, " "))
	fmt.Fprintln(r.out, separator)
}

func (r *SummaryRenderer) severityStyled(padded string, errors, warnings int) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(padded)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(padded)
	default:
		return padded
	}
}

func (r *SummaryRenderer) totalsLine(totals analysis.Totals) {
	issueWord := pluralize(totals.Issues, "issue")
	head := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var bySeverity []string
	if totals.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(bySeverity) > 0 {
		head = fmt.Sprintf("%d %s (%s)", totals.Issues, issueWord, strings.Join(bySeverity, ", "))
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", totals.FilesWithIssues, pluralize(totals.FilesWithIssues, "file")),
	}
	if totals.EditsApplied > 0 {
		parts = append(parts, r.styles.Success.Render(fmt.Sprintf(
			"%d edits applied in %d %s",
			totals.EditsApplied, totals.FilesModified, pluralize(totals.FilesModified, "file"))))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, " "))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
