package fixer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/parser/phplex"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

func TestEngineFixPassSkipsSinglePassRulesAfterFirst(t *testing.T) {
	reg := NewRegistry()
	reg.Register(appendIdentRule("PHF803", "rev", "_x"))

	cfg := config.NewConfig()
	cfg.Fix = true

	engine := NewEngine(phplex.New(), reg)

	first, err := engine.FixPass(context.Background(), "t.php", []byte("<?php\nrev;\n"), cfg, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.EditsApplied)
	assert.Equal(t, "<?php\nrev_x;\n", string(phptok.Render(first.Tokens)))

	second, err := engine.FixPass(context.Background(), "t.php", []byte("<?php\nrev;\n"), cfg, 1)
	require.NoError(t, err)
	assert.Zero(t, second.EditsApplied)
	assert.Empty(t, second.Diagnostics)
}

func TestEngineFixFileAppliesEditsInRuleOrder(t *testing.T) {
	reg := NewRegistry()
	// PHF801 renames a->b, PHF802 renames b->c. Running in ID order, the
	// second rule must see the first rule's output and finish the chain.
	reg.Register(renameIdentRule("PHF801", "alpha", "beta"))
	reg.Register(renameIdentRule("PHF802", "beta", "gamma"))

	cfg := config.NewConfig()
	cfg.Fix = true

	engine := NewEngine(phplex.New(), reg)
	result, err := engine.FixFile(context.Background(), "t.php", []byte("<?php\n$x = alpha;\n"), cfg)
	require.NoError(t, err)

	assert.Equal(t, "<?php\n$x = gamma;\n", string(phptok.Render(result.Tokens)))
	assert.True(t, result.Modified())
	assert.Equal(t, 2, result.EditsApplied)
	assert.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "PHF801", result.Diagnostics[0].RuleID)
	assert.Equal(t, "PHF802", result.Diagnostics[1].RuleID)
}

func TestEngineFixFileNoFixMode(t *testing.T) {
	reg := NewRegistry()
	reg.Register(renameIdentRule("PHF801", "alpha", "beta"))

	engine := NewEngine(phplex.New(), reg)
	result, err := engine.FixFile(context.Background(), "t.php", []byte("<?php\nalpha;\n"), config.NewConfig())
	require.NoError(t, err)

	assert.False(t, result.Modified(), "without --fix the script is discarded")
	assert.Equal(t, "<?php\nalpha;\n", string(phptok.Render(result.Tokens)))
	require.Len(t, result.Diagnostics, 1)
	assert.True(t, result.Diagnostics[0].Fixable)
	assert.Equal(t, 1, result.FixableCount())
}

func TestEngineFixFileRuleErrorIsIsolated(t *testing.T) {
	reg := NewRegistry()
	broken := newStubRule("PHF801", "broken", true)
	broken.apply = func(_ *RuleContext) ([]Diagnostic, error) {
		return nil, errors.New("boom")
	}
	reg.Register(broken)
	reg.Register(renameIdentRule("PHF802", "alpha", "beta"))

	cfg := config.NewConfig()
	cfg.Fix = true

	engine := NewEngine(phplex.New(), reg)
	result, err := engine.FixFile(context.Background(), "t.php", []byte("<?php\nalpha;\n"), cfg)
	require.NoError(t, err)

	require.Contains(t, result.RuleErrors, "PHF801")
	assert.Equal(t, "<?php\nbeta;\n", string(phptok.Render(result.Tokens)),
		"a failing rule does not stop the others")
}

func TestEngineFixFileSeverityAndMetadataStamped(t *testing.T) {
	reg := NewRegistry()
	reg.Register(renameIdentRule("PHF801", "alpha", "beta"))

	cfg := config.NewConfig()
	cfg.Rules = map[string]config.RuleConfig{
		"PHF801": {Severity: strPtr("error")},
	}

	engine := NewEngine(phplex.New(), reg)
	result, err := engine.FixFile(context.Background(), "t.php", []byte("<?php\nalpha;\n"), cfg)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	d := result.Diagnostics[0]
	assert.Equal(t, config.SeverityError, d.Severity, "resolved severity overrides the rule's own")
	assert.Equal(t, "t.php", d.FilePath)
	assert.Equal(t, "rename-alpha", d.RuleName)
	assert.Equal(t, 2, d.StartLine)
}

func TestEngineFixFileCancelled(t *testing.T) {
	reg := NewRegistry()
	reg.Register(renameIdentRule("PHF801", "alpha", "beta"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(phplex.New(), reg)
	_, err := engine.FixFile(ctx, "t.php", []byte("<?php\n"), config.NewConfig())
	require.Error(t, err)
}
