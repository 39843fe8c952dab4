package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/fixer/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	packs      bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
}

// packInfo represents a rule pack in JSON output.
type packInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available fixer rules",
		Long: `List all available fixer rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.

Pass --packs to list the rule packs instead.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if flags.packs {
				return listPacks(flags)
			}
			return listRules(flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list rule packs instead of rules")

	return cmd
}

func listRules(flags *rulesFlags) error {
	ruleList := fixer.DefaultRegistry.Rules()

	if flags.format == formatJSON {
		return outputRulesJSON(ruleList)
	}

	logger := logging.NewInteractive()

	if len(ruleList) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	logger.Info("available rules")

	ruleFormat := config.RuleFormat(flags.ruleFormat)

	for _, rule := range ruleList {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}

		ruleIdentifier := config.FormatRuleID(ruleFormat, rule.ID(), rule.Name())

		logger.Info(ruleIdentifier,
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		)
	}

	return nil
}

func listPacks(flags *rulesFlags) error {
	packs := rules.Packs()

	if flags.format == formatJSON {
		infos := make([]packInfo, 0, len(packs))
		for _, pack := range packs {
			ids := make([]string, 0, len(pack.Rules))
			for id := range pack.Rules {
				ids = append(ids, id)
			}
			infos = append(infos, packInfo{
				Name:        pack.Name,
				Description: pack.Description,
				Rules:       ids,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding packs: %w", err)
		}
		return nil
	}

	logger := logging.NewInteractive()
	logger.Info("available packs")

	for _, pack := range packs {
		logger.Info(pack.Name,
			logging.FieldDescription, pack.Description,
			"rules", len(pack.Rules),
		)
	}

	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(ruleList []fixer.Rule) error {
	infos := make([]ruleInfo, 0, len(ruleList))
	for _, rule := range ruleList {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Fixable:     rule.CanFix(),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
