package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the dotted path of the offending key, e.g. "rules.PHF001.severity".
	Field string

	// Value is the rejected value.
	Value any

	// Message says what was wrong with it.
	Message string

	// FilePath names the config file the value came from, when known.
	FilePath string

	// Line is the line number within that file, when known.
	Line int
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		loc := e.FilePath
		if e.Line > 0 {
			loc = fmt.Sprintf("%s:%d", e.FilePath, e.Line)
		}
		parts = append(parts, loc)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects everything Validate found. Errors block
// loading; Warnings are surfaced to the user but do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether loading may proceed.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) warn(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	validSeverities = map[string]bool{
		"error":   true,
		"warning": true,
		"info":    true,
	}
	validFormats = map[config.OutputFormat]bool{
		config.FormatText:    true,
		config.FormatJSON:    true,
		config.FormatDiff:    true,
		config.FormatSummary: true,
	}
	validBackupModes = map[string]bool{
		"sidecar": true,
		"none":    true,
	}
)

// Validate checks a merged configuration before it is handed to the engine.
// An unsupported php_version is an error: rules gate their rewrites on the
// target level, so running with an unknown target must never start.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.PHPVersion != "" && !cfg.PHPVersion.IsValid() {
		result.fail("php_version", cfg.PHPVersion,
			fmt.Sprintf("unsupported php_version %q; must be one of: 8.0, 8.1, 8.2, 8.3, 8.4", cfg.PHPVersion))
	}

	if cfg.SeverityDefault != "" && !validSeverities[cfg.SeverityDefault] {
		result.fail("severity_default", cfg.SeverityDefault,
			fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault))
	}

	if cfg.Format != "" && !validFormats[cfg.Format] {
		result.fail("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, diff, summary", cfg.Format))
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !validBackupModes[cfg.Backups.Mode] {
		result.fail("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}

	checkRules(cfg, result)
	checkIgnoreGlobs(cfg, result)

	return result
}

// checkRules warns about rule keys the registry does not know and rejects
// bad per-rule severities. Keys reach here already normalized, so an
// unknown key really is unknown rather than an unresolved alias.
func checkRules(cfg *config.Config, result *ValidationResult) {
	for ruleID, ruleCfg := range cfg.Rules {
		if _, known := fixer.DefaultRegistry.Get(ruleID); !known {
			result.warn("rules."+ruleID, ruleID,
				fmt.Sprintf("unknown rule %q; it will be ignored", ruleID))
		}
		if ruleCfg.Severity != nil && !validSeverities[*ruleCfg.Severity] {
			result.fail("rules."+ruleID+".severity", *ruleCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity))
		}
	}
}

func checkIgnoreGlobs(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern")
		}
	}
}
