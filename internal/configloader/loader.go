// Package configloader resolves the effective configuration from every
// source gophpfix knows about: built-in defaults, XDG and system config
// files, an upward project search, environment variables, and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors the upward project-config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config flag value, loaded above all files.
	ExplicitPath string

	// Ignore* switch off individual layers, mostly for tests and CI.
	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Verbose logs resolution steps.
	Verbose bool

	// NonInteractive suppresses hints that only make sense on a terminal.
	NonInteractive bool

	// CLIConfig holds flag-derived settings, merged last so they win.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration plus where it came from.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths lists every config file location that was discovered.
	Paths *ConfigPaths

	// LoadedFrom lists the files actually read, lowest precedence first.
	LoadedFrom []string

	// Warnings holds non-fatal findings such as unknown rule keys.
	Warnings []string
}

// Load builds the effective configuration. Precedence, highest first:
// CLI flags, GOPHPFIX_* environment variables, the --config file, the
// project .gophpfix.yml, the user XDG config, the system config, defaults.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Paths: &ConfigPaths{}}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths
	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	warnAboutLegacyConfig(paths, opts, result)

	// File layers, lowest precedence first.
	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Users may key rules by name ("interface-name-suffix") or alias;
	// fold everything onto canonical IDs before validating.
	normalizeRuleKeys(cfg, fixer.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// warnAboutLegacyConfig points users at a PHP-CS-Fixer config when no
// gophpfix config exists. It cannot be converted automatically (it is PHP
// code), so a hint is all we offer.
func warnAboutLegacyConfig(paths *ConfigPaths, opts LoadOptions, result *LoadResult) {
	if paths.Legacy == "" {
		return
	}
	if paths.Project != "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("both %s and %s exist; using %s", paths.Project, paths.Legacy, paths.Project))
		return
	}
	if !opts.NonInteractive && term.IsTerminal(int(os.Stdin.Fd())) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no .gophpfix.yml; run 'gophpfix init' to create one", paths.Legacy))
	}
}

func readConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	return cfg, nil
}

// normalizeRuleKeys rewrites cfg.Rules so every known rule is keyed by its
// canonical ID. Unknown keys stay untouched for Validate to warn about.
// When two keys resolve to the same rule the last one read wins, with a
// warning, since map iteration gives no better ordering guarantee.
func normalizeRuleKeys(cfg *config.Config, registry *fixer.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	firstKeyFor := make(map[string]string)

	for key, ruleCfg := range cfg.Rules {
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}
		if earlier, dup := firstKeyFor[canonicalID]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					earlier, key, canonicalID))
		}
		firstKeyFor[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	cfg.Rules = normalized
}
