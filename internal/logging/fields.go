package logging

// Structured log field keys, named once so call sites cannot drift apart.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Resolved run configuration.
	FieldPHPVersion = "php_version"
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"
	FieldPack       = "pack"

	// Run statistics.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"
	FieldEditsApplied     = "edits_applied"
	FieldFixPasses        = "fix_passes"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Repository metadata.
	FieldAuthor = "author"
	FieldStatus = "status"

	// Rule listings.
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
