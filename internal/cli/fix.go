package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/fixer/rules"
	"github.com/yaklabco/gophpfix/pkg/parser/phplex"
	"github.com/yaklabco/gophpfix/pkg/reporter"
	"github.com/yaklabco/gophpfix/pkg/runner"
	"github.com/yaklabco/gophpfix/pkg/vcs"
)

// ErrIssuesFound is returned when style issues are found.
var ErrIssuesFound = errors.New("style issues found")

type fixFlags struct {
	format     string
	phpVersion string
	pack       string
	ignore     []string
	enable     []string
	disable    []string
	fixRules   []string
	strict     bool
	noContext  bool
	compact    bool
	noDetect   bool
	ruleFormat string
}

func newFixCommand() *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Check and fix PHP files",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

const fixLongDescription = `Check PHP files against the house style and optionally rewrite them.

By default, checks all .php and .phtml files in the current directory
and subdirectories without modifying anything. Specify paths to process
specific files or directories; pass --fix to apply the rewrites.

Examples:
  gophpfix fix                     # Check current directory
  gophpfix fix src/                # Check src directory
  gophpfix fix User.php            # Check single file
  gophpfix fix --fix               # Apply fixes
  gophpfix fix --fix --dry-run     # Show fixes as a diff without applying
  gophpfix fix --pack strict       # Use the strict rule pack
  gophpfix fix --format json       # Output as JSON for CI
  gophpfix fix --strict            # Treat warnings as errors`

func runFix(cmd *cobra.Command, args []string, cfg *config.Config, flags *fixFlags) error {
	logger := logging.Default()

	// String flags become typed config values here; php-version only when
	// the user actually passed it, so config files can still set it.
	cfg.Format = config.OutputFormat(flags.format)
	if cmd.Flags().Changed("php-version") {
		cfg.PHPVersion = config.TargetVersion(flags.phpVersion)
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// --config lives on the root command.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	// A pack is a base layer: everything loaded above it still wins.
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("unknown pack %q; available packs: %v", flags.pack, rules.PackNames())
		}
		finalCfg = configloader.MergeAll(&config.Config{Rules: pack.Rules}, finalCfg)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldPHPVersion, finalCfg.PHPVersion,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldPack, flags.pack,
	)

	// Resolve the author identity and working-tree status once per run.
	// Both degrade gracefully outside a git checkout.
	identity := vcs.EnvGitResolver{Dir: workDir}.Resolve(ctx)
	if identity.IsComplete() {
		logger.Debug("resolved author identity", logging.FieldAuthor, identity.Tag())
	}

	registry := fixer.NewRegistry()
	rules.RegisterAll(registry, rules.Deps{
		Identity: identity,
		Status:   vcs.GitStatus{},
	})
	rules.RegisterAliases(registry)

	engine := fixer.NewEngine(&phplex.Lexer{}, registry)
	pipeline := fixer.NewPipeline(engine)
	fixRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		ExcludeGlobs:   finalCfg.Ignore,
		DetectLanguage: !flags.noDetect,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := fixRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("fix run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  config.RuleFormat(flags.ruleFormat),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	exitCode := ExitCodeFromResult(result, flags.strict)
	if exitCode != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	f := cmd.Flags()
	f.BoolVar(&cfg.Fix, "fix", false, "rewrite files that violate the house style")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "show rewrites without touching any file")
	f.StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	f.IntVar(&cfg.Jobs, "jobs", 0, "parallel workers, 0 picks one per CPU")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of files to skip")
	f.StringSliceVar(&flags.enable, "enable", nil, "rule IDs to force on")
	f.StringSliceVar(&flags.disable, "disable", nil, "rule IDs to force off")
	f.StringSliceVar(&flags.fixRules, "fix-rules", nil, "only rewrite issues from these rule IDs")
	f.BoolVar(&cfg.NoBackups, "no-backups", false, "skip sidecar backups before rewriting")
	f.StringVar(&flags.phpVersion, "php-version", string(config.PHP82),
		"target PHP version: 8.0 through 8.4")
	f.StringVar(&flags.pack, "pack", "", "rule pack to use as a base: core, strict, imports, docblocks")
	f.BoolVar(&flags.strict, "strict", false, "warnings also fail the exit code")
	f.BoolVar(&flags.noContext, "no-context", false, "omit source line context from output")
	f.BoolVar(&flags.compact, "compact", false, "use compact output format")
	f.BoolVar(&flags.noDetect, "no-detect", false, "skip content-based language detection")
	f.StringVar(&flags.ruleFormat, "rule-format", "name",
		"how to label rules in output: name, id, or combined")
}
