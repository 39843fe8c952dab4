package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
)

const envPrefix = "GOPHPFIX_"

// envSetters maps variable names (minus the GOPHPFIX_ prefix) to a setter
// applying the raw value to the config. Each setter receives the full
// variable name for its error messages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envSetters = map[string]func(cfg *config.Config, raw, name string) error{
	"PHP_VERSION": func(cfg *config.Config, raw, _ string) error {
		cfg.PHPVersion = config.TargetVersion(raw)
		return nil
	},
	"SEVERITY_DEFAULT": func(cfg *config.Config, raw, _ string) error {
		cfg.SeverityDefault = raw
		return nil
	},
	"FORMAT": func(cfg *config.Config, raw, _ string) error {
		cfg.Format = config.OutputFormat(raw)
		return nil
	},
	"BACKUPS_MODE": func(cfg *config.Config, raw, _ string) error {
		cfg.Backups.Mode = raw
		return nil
	},
	"FIX": func(cfg *config.Config, raw, name string) error {
		return envBool(&cfg.Fix, raw, name)
	},
	"DRY_RUN": func(cfg *config.Config, raw, name string) error {
		return envBool(&cfg.DryRun, raw, name)
	},
	"BACKUPS_ENABLED": func(cfg *config.Config, raw, name string) error {
		return envBool(&cfg.Backups.Enabled, raw, name)
	},
	"NO_BACKUPS": func(cfg *config.Config, raw, name string) error {
		return envBool(&cfg.NoBackups, raw, name)
	},
	"JOBS": func(cfg *config.Config, raw, name string) error {
		jobs, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, raw)
		}
		cfg.Jobs = jobs
		return nil
	},
	"IGNORE": func(cfg *config.Config, raw, _ string) error {
		cfg.Ignore = splitCommaList(raw)
		return nil
	},
}

// LoadFromEnv applies GOPHPFIX_* environment overrides to cfg in place.
// Unset and empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for suffix, set := range envSetters {
		name := envPrefix + suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := set(cfg, raw, name); err != nil {
			return err
		}
	}
	return nil
}

func envBool(dst *bool, raw, name string) error {
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, raw)
	}
	*dst = parsed
	return nil
}

// splitCommaList splits on commas, trimming whitespace and dropping empty
// elements, so "a, b ,,c" yields [a b c].
func splitCommaList(raw string) []string {
	if raw == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars describes every supported environment variable, for help
// output.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOPHPFIX_PHP_VERSION":      "Target PHP version: 8.0 through 8.4",
		"GOPHPFIX_SEVERITY_DEFAULT": "Default severity: error, warning, or info",
		"GOPHPFIX_FIX":              "Enable auto-fix: true or false",
		"GOPHPFIX_DRY_RUN":          "Dry-run mode: true or false",
		"GOPHPFIX_JOBS":             "Number of parallel workers (0 = auto)",
		"GOPHPFIX_FORMAT":           "Output format: text, json, diff, or summary",
		"GOPHPFIX_BACKUPS_ENABLED":  "Enable backups when fixing: true or false",
		"GOPHPFIX_BACKUPS_MODE":     "Backup mode: sidecar or none",
		"GOPHPFIX_IGNORE":           "Comma-separated list of ignore patterns",
		"GOPHPFIX_NO_BACKUPS":       "Disable backups: true or false",
	}
}
