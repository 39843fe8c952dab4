package runner

import "github.com/yaklabco/gophpfix/pkg/fixer"

// FileOutcome pairs a discovered path with its pipeline result or the
// error that prevented one.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *fixer.PipelineResult

	Error error
}

// Stats are the run-wide counters the reporters summarize.
type Stats struct {
	// FilesDiscovered counts everything discovery matched.
	FilesDiscovered int

	// FilesProcessed counts files that went through the pipeline,
	// including skipped ones.
	FilesProcessed int

	// FilesSkipped counts files the pipeline declined, e.g. non-PHP
	// content or a concurrent modification.
	FilesSkipped int

	// FilesErrored counts files whose processing failed outright.
	FilesErrored int

	// DiagnosticsTotal counts diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsFixable counts diagnostics with an available rewrite.
	DiagnosticsFixable int

	// DiagnosticsBySeverity buckets diagnostics by severity string.
	DiagnosticsBySeverity map[string]int

	// FilesWithIssues counts files with at least one diagnostic.
	FilesWithIssues int

	// FilesModified counts files rewritten on disk.
	FilesModified int

	// EditsApplied sums applied edits across all files and passes.
	EditsApplied int
}

// Result is what a Runner.Run returns: per-file outcomes in path order
// plus the aggregated stats.
type Result struct {
	Files []FileOutcome
	Stats Stats

	// Errors holds failures not tied to a single file.
	Errors []error
}

// HasFailures reports whether any error-severity diagnostics occurred.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity["error"] > 0
}

// HasIssues reports whether any diagnostics occurred at all.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

// accumulate folds one outcome into the result.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Written {
		r.Stats.FilesModified++
	}
	r.Stats.EditsApplied += res.TotalEditsApplied

	if res.FileResult == nil {
		return
	}
	if len(res.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(res.Diagnostics)
	r.Stats.DiagnosticsFixable += res.FixableCount()
	for _, diag := range res.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
