package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// FormatDiagnostic renders one diagnostic using the plain ID rule format.
func (s *Styles) FormatDiagnostic(diag *fixer.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat renders one diagnostic, labelling the rule per
// the requested format. The main line reads:
//
//	path:line:col  severity  message  (rule)
func (s *Styles) FormatDiagnosticWithFormat(diag *fixer.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s:%d:%d  %s  %s  %s\n",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"),
	)

	if showContext && sourceLine != "" {
		b.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}
	if diag.Suggestion != "" {
		b.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return b.String()
}

// FormatSeverity styles a severity label. Unknown severities pass through
// unstyled.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	}
	return string(sev)
}

// sourceIndent lines the snippet up under the diagnostic text above it.
const sourceIndent = "        "

// FormatSourceContext renders the offending source line with a caret under
// the reported column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	out := sourceIndent + s.SourceLine.Render(line) + "\n"
	if column > 0 {
		out += sourceIndent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n"
	}
	return out
}

// FormatFileHeader renders the per-file header used by grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
