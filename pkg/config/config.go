// Package config defines core configuration types for gophpfix.
// These types are pure data structures with no dependency on config loaders.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity classifies how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig carries the per-rule settings from a config file. Nil pointer
// fields mean "not set", so the rule's defaults apply.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix"`
	Options  map[string]any `yaml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat names one of the supported diagnostic output formats.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "interface-name-suffix"
	RuleFormatID       RuleFormat = "id"       // "PHF001"
	RuleFormatCombined RuleFormat = "combined" // "PHF001/interface-name-suffix"
)

// TargetVersion is the PHP language level the fixers may assume.
// Rules whose rewrites require newer syntax than the target are disabled at
// resolve time; an unsupported value is a fatal configuration error.
type TargetVersion string

// Supported PHP target versions.
const (
	PHP80 TargetVersion = "8.0"
	PHP81 TargetVersion = "8.1"
	PHP82 TargetVersion = "8.2"
	PHP83 TargetVersion = "8.3"
	PHP84 TargetVersion = "8.4"
)

// IsValid returns true for a supported target version.
func (v TargetVersion) IsValid() bool {
	switch v {
	case PHP80, PHP81, PHP82, PHP83, PHP84:
		return true
	}
	return false
}

// AtLeast reports whether v is the same as or newer than other.
// Unsupported versions compare as older than everything.
func (v TargetVersion) AtLeast(other TargetVersion) bool {
	ord := versionOrdinal(v)
	return ord > 0 && ord >= versionOrdinal(other)
}

func versionOrdinal(v TargetVersion) int {
	majorStr, minorStr, ok := strings.Cut(string(v), ".")
	if !ok {
		return 0
	}
	major, err1 := strconv.Atoi(majorStr)
	minor, err2 := strconv.Atoi(minorStr)
	if err1 != nil || err2 != nil {
		return 0
	}
	return major*100 + minor
}

// Config is the root configuration structure for gophpfix. File-backed
// settings carry yaml tags; the trailing block holds CLI-only options that
// never round-trip through a config file.
type Config struct {
	// PHPVersion is the PHP language level the fixers may target.
	PHPVersion TargetVersion `yaml:"php_version"`

	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		PHPVersion:      PHP82,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// Validate checks invariants that must hold before any file is processed.
// Violations are fatal at configuration-build time, never mid-run.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.PHPVersion != "" && !c.PHPVersion.IsValid() {
		return fmt.Errorf("unsupported php_version %q (supported: 8.0 through 8.4)", c.PHPVersion)
	}
	if !validSeverity(c.SeverityDefault, true) {
		return fmt.Errorf("invalid severity_default %q", c.SeverityDefault)
	}
	for id, rc := range c.Rules {
		if rc.Severity != nil && !validSeverity(*rc.Severity, false) {
			return fmt.Errorf("rule %s: invalid severity %q", id, *rc.Severity)
		}
	}
	return nil
}

func validSeverity(s string, allowEmpty bool) bool {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	case "":
		return allowEmpty
	}
	return false
}
