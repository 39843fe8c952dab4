// Package cli provides the Cobra command structure for gophpfix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand assembles the gophpfix command tree and its global flags.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
	)

	root := &cobra.Command{
		Use:   "gophpfix",
		Short: "A token-level PHP house-style fixer",
		Long: `gophpfix rewrites PHP source to match a house style, working directly
on the token stream so every byte it does not touch survives unchanged.

It normalizes declaration names, hoists fully qualified class names into
use statements, maintains docblock tags, and promotes classes to
final readonly where the target PHP version allows it. Fixes are applied
through a conflict-checked edit script with dry-run mode and optional
backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.StringVar(&configPath, "config", "", "path to config file")
	flags.StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	root.AddCommand(
		newFixCommand(),
		newRulesCommand(),
		newInitCommand(),
		newVersionCommand(info),
		newEnvironmentTopic(),
	)

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(root)

	return root
}
