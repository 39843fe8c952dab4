package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/parser/phplex"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// applyRule runs a single rule over src and returns its diagnostics plus the
// source after the recorded edits are applied.
func applyRule(t *testing.T, rule fixer.Rule, src string) ([]fixer.Diagnostic, string) {
	t.Helper()
	return applyRuleWithConfig(t, rule, src, nil)
}

// applyRuleWithConfig is applyRule with a rule-specific configuration.
func applyRuleWithConfig(
	t *testing.T,
	rule fixer.Rule,
	src string,
	ruleCfg *config.RuleConfig,
) ([]fixer.Diagnostic, string) {
	t.Helper()

	snap, err := phplex.New().Tokenize(context.Background(), "test.php", []byte(src))
	require.NoError(t, err)

	ruleCtx := fixer.NewRuleContext(context.Background(), snap, snap.Tokens, config.NewConfig(), ruleCfg)
	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err)

	fixed := ruleCtx.Script.Apply(snap.Tokens)
	return diags, string(phptok.Render(fixed))
}

// fixToStable reruns the rule through re-tokenization until the output stops
// changing, mirroring the multi-pass pipeline. Returns the stable source.
func fixToStable(t *testing.T, rule fixer.Rule, src string) string {
	t.Helper()

	for range fixer.DefaultMaxFixPasses {
		_, out := applyRule(t, rule, src)
		if out == src {
			return out
		}
		src = out
	}
	t.Fatalf("rule %s did not converge", rule.ID())
	return ""
}
