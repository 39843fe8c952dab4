package analysis

import "github.com/yaklabco/gophpfix/pkg/config"

// SortField selects the ordering of the ByRule and ByFile views.
type SortField string

const (
	// SortByCount orders by issue count.
	SortByCount SortField = "count"
	// SortByAlpha orders by rule ID or path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts entries with errors before warning-only ones.
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	}
	return false
}

// Options selects which report sections Analyze builds and how they are
// sorted. The zero value produces totals only.
type Options struct {
	// IncludeDiagnostics emits the flat per-diagnostic list.
	IncludeDiagnostics bool

	// IncludeByFile emits the per-file aggregation.
	IncludeByFile bool

	// IncludeByRule emits the per-rule aggregation.
	IncludeByRule bool

	// SortBy orders ByFile and ByRule.
	SortBy SortField

	// SortDesc flips count ordering to highest first.
	SortDesc bool

	// RuleFormat controls how rule identifiers are rendered downstream.
	RuleFormat config.RuleFormat

	// WorkingDir, when set, rewrites paths relative to it for display.
	WorkingDir string
}

// DefaultOptions enables every section, counted highest first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
