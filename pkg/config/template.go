package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth caps the width of wrapped rule descriptions.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every registered rule instead of the short
	// commented-out starter.
	Full bool

	// IncludeRules restricts the full template to these rule IDs.
	IncludeRules []string
}

// RuleInfo is the rule metadata the template generator needs.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider supplies rule metadata. Indirection keeps this package
// from importing the fixer package, which imports this one.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the fixer rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return fullTemplate(opts)
	}
	return minimalTemplate()
}

func minimalTemplate() ([]byte, error) {
	return []byte(`# gophpfix configuration
# See: https://github.com/yaklabco/gophpfix

# PHP language level the fixers may target
php_version: "8.2"

# Default severity for all rules: error, warning, or info
# severity_default: warning

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "var/cache/**"

# Rule-specific configuration
# rules:
#   PHF001:
#     enabled: true
#     severity: error
#   PHF020:
#     enabled: true
#     options:
#       author_name: "Jane Dev"
#       author_email: "jane@example.com"
`), nil
}

func fullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# gophpfix configuration - Full Template
# See: https://github.com/yaklabco/gophpfix
#
# This template includes all available rules with their default settings.

# PHP language level the fixers may target
php_version: "8.2"

# Default severity for all rules: error, warning, or info
severity_default: warning

# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "var/cache/**"

# Rule-specific configuration
rules:
`)

	rules := ruleInfos()
	if len(opts.IncludeRules) > 0 {
		rules = slices.DeleteFunc(slices.Clone(rules), func(r RuleInfo) bool {
			return !slices.Contains(opts.IncludeRules, r.ID)
		})
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes(), nil
}

func ruleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Static fallback covering the core rules, used when the rules package
	// was not linked in.
	return []RuleInfo{
		{
			ID: "PHF001", Name: "interface-name-suffix", Enabled: true, Severity: SeverityWarning,
			Description: "Interface names should end with the configured suffix",
			Tags:        []string{"naming"}, CanFix: true,
		},
		{
			ID: "PHF010", Name: "import-fqcn-new", Enabled: true, Severity: SeverityWarning,
			Description: "Fully qualified names in new expressions should be imported",
			Tags:        []string{"imports"}, CanFix: true,
		},
		{
			ID: "PHF023", Name: "no-duplicate-docblock", Enabled: true, Severity: SeverityWarning,
			Description: "Docblocks duplicated after attribute groups should be removed",
			Tags:        []string{"docblocks"}, CanFix: true,
		},
	}
}

// wrapComment word-wraps text, continuing each line with the YAML comment
// indent so the result drops straight into the template.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= maxWidth:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the comment header for generated configs.
func DefaultTemplateHeader() string {
	return `# gophpfix configuration
# See: https://github.com/yaklabco/gophpfix`
}
