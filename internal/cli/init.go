package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
)

// Config files are world-readable.
const configFileMode = 0644

const defaultConfigName = ".gophpfix.yml"

func newInitCommand() *cobra.Command {
	var (
		force  bool
		full   bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gophpfix configuration file",
		Long: `Create a new .gophpfix.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable/disable rules,
change severities, and configure other options.

Examples:
  gophpfix init                      Create minimal .gophpfix.yml
  gophpfix init --full               Create full config with all rules documented
  gophpfix init --output custom.yml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(output, full, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: "+defaultConfigName+")")

	return cmd
}

func runInit(output string, full, force bool) error {
	logger := logging.NewInteractive()

	if output == "" {
		output = defaultConfigName
	}
	absPath, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, output)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, output)
	if full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'gophpfix rules' to see all available rules")

	return nil
}
