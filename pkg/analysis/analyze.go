package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

const (
	severityError   = "error"
	severityWarning = "warning"
	severityInfo    = "info"
)

// Analyze folds a runner.Result into a Report. All views (totals, per-rule,
// per-file, flat diagnostics) are computed in one pass over the outcomes.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newAccumulator()
	for i := range result.Files {
		acc.addFile(report, &result.Files[i], opts)
	}

	if opts.IncludeByRule {
		report.ByRule = acc.rulesView(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = acc.filesView(opts)
	}
	return report
}

// accumulator carries the per-rule and per-file buckets while folding
// outcomes. The nested string sets track which files each rule touched
// and vice versa.
type accumulator struct {
	rules     map[string]*RuleAnalysis
	files     map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{
		rules:     make(map[string]*RuleAnalysis),
		files:     make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (acc *accumulator) addFile(report *Report, outcome *runner.FileOutcome, opts Options) {
	report.Totals.Files++
	res := outcome.Result
	if res == nil || res.FileResult == nil {
		return
	}
	if len(res.Diagnostics) > 0 {
		report.Totals.FilesWithIssues++
	}
	if res.Written {
		report.Totals.FilesModified++
	}
	report.Totals.EditsApplied += res.TotalEditsApplied

	shown := displayPath(outcome.Path, opts.WorkingDir)
	fileEntry := acc.fileEntry(shown)

	for i := range res.Diagnostics {
		acc.addDiagnostic(report, fileEntry, shown, &res.Diagnostics[i], opts)
	}
}

func (acc *accumulator) addDiagnostic(
	report *Report,
	fileEntry *FileAnalysis,
	path string,
	diag *fixer.Diagnostic,
	opts Options,
) {
	report.Totals.Issues++
	severity := string(diag.Severity)
	if severity == "" {
		severity = severityWarning
	}

	switch severity {
	case severityError:
		report.Totals.Errors++
		fileEntry.Errors++
	case severityWarning:
		report.Totals.Warnings++
		fileEntry.Warnings++
	case severityInfo:
		report.Totals.Infos++
		fileEntry.Infos++
	}
	if diag.Fixable {
		report.Totals.Fixable++
	}

	fileEntry.Issues++
	acc.fileRules[path][diag.RuleID] = true

	ruleEntry := acc.ruleEntry(diag.RuleID, diag.RuleName)
	ruleEntry.Issues++
	switch severity {
	case severityError:
		ruleEntry.Errors++
	case severityWarning:
		ruleEntry.Warnings++
	case severityInfo:
		ruleEntry.Infos++
	}
	if diag.Fixable {
		ruleEntry.Fixable = true
	}
	acc.ruleFiles[diag.RuleID][path] = true

	if opts.IncludeDiagnostics {
		report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
			FilePath:    path,
			RuleID:      diag.RuleID,
			RuleName:    diag.RuleName,
			Severity:    severity,
			Message:     diag.Message,
			StartLine:   diag.StartLine,
			StartColumn: diag.StartColumn,
			EndLine:     diag.EndLine,
			EndColumn:   diag.EndColumn,
			Suggestion:  diag.Suggestion,
			Fixable:     diag.Fixable,
		})
	}
}

func (acc *accumulator) fileEntry(path string) *FileAnalysis {
	entry, ok := acc.files[path]
	if !ok {
		entry = &FileAnalysis{Path: path}
		acc.files[path] = entry
		acc.fileRules[path] = make(map[string]bool)
	}
	return entry
}

func (acc *accumulator) ruleEntry(ruleID, ruleName string) *RuleAnalysis {
	entry, ok := acc.rules[ruleID]
	if !ok {
		entry = &RuleAnalysis{RuleID: ruleID, RuleName: ruleName}
		acc.rules[ruleID] = entry
		acc.ruleFiles[ruleID] = make(map[string]bool)
	}
	return entry
}

func (acc *accumulator) rulesView(opts Options) []RuleAnalysis {
	view := make([]RuleAnalysis, 0, len(acc.rules))
	for ruleID, entry := range acc.rules {
		entry.Files = sortedKeys(acc.ruleFiles[ruleID])
		view = append(view, *entry)
	}
	slices.SortFunc(view, func(left, right RuleAnalysis) int {
		return orderBy(opts,
			left.RuleID, right.RuleID,
			severityKey{left.Errors, left.Warnings, left.Issues},
			severityKey{right.Errors, right.Warnings, right.Issues},
		)
	})
	return view
}

// filesView drops clean files; a file with zero issues carries no signal.
func (acc *accumulator) filesView(opts Options) []FileAnalysis {
	var view []FileAnalysis
	for path, entry := range acc.files {
		if entry.Issues == 0 {
			continue
		}
		entry.Rules = sortedKeys(acc.fileRules[path])
		view = append(view, *entry)
	}
	slices.SortFunc(view, func(left, right FileAnalysis) int {
		return orderBy(opts,
			left.Path, right.Path,
			severityKey{left.Errors, left.Warnings, left.Issues},
			severityKey{right.Errors, right.Warnings, right.Issues},
		)
	})
	return view
}

type severityKey struct {
	errors, warnings, issues int
}

// orderBy implements the shared sort semantics for both views. Alphabetical
// order ignores SortDesc; severity order puts errors before warnings.
func orderBy(opts Options, leftName, rightName string, left, right severityKey) int {
	switch opts.SortBy {
	case SortByAlpha:
		return cmp.Compare(leftName, rightName)
	case SortBySeverity:
		if diff := cmp.Compare(right.errors, left.errors); diff != 0 {
			return diff
		}
		if diff := cmp.Compare(right.warnings, left.warnings); diff != 0 {
			return diff
		}
		return cmp.Compare(right.issues, left.issues)
	default: // SortByCount
		diff := cmp.Compare(left.issues, right.issues)
		if opts.SortDesc {
			diff = -diff
		}
		return diff
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// displayPath rewrites an absolute path relative to workDir for output.
// The original path is kept when workDir is empty or Rel fails.
func displayPath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
