package fixer

import (
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// stubRule is a configurable test rule.
type stubRule struct {
	BaseRule

	enabled bool
	minPHP  config.TargetVersion
	apply   func(ctx *RuleContext) ([]Diagnostic, error)
}

func newStubRule(id, name string, fixable bool) *stubRule {
	return &stubRule{
		BaseRule: NewBaseRule(id, name, "stub rule "+id, []string{"test"}, fixable),
		enabled:  true,
	}
}

func (r *stubRule) DefaultEnabled() bool {
	return r.enabled
}

func (r *stubRule) Apply(ctx *RuleContext) ([]Diagnostic, error) {
	if r.apply == nil {
		return nil, nil
	}
	return r.apply(ctx)
}

// gatedStubRule is a stub rule with a minimum PHP version.
type gatedStubRule struct {
	stubRule
}

func (r *gatedStubRule) MinPHPVersion() config.TargetVersion {
	return r.minPHP
}

// singlePassStub is a stubRule carrying the SinglePass marker.
type singlePassStub struct {
	stubRule
}

func (r *singlePassStub) SinglePassOnly() {}

// appendIdentRule appends suffix to every identifier starting with prefix.
// Each application produces a fresh edit, so the rule never converges on its
// own output, like a counter bump.
func appendIdentRule(id, prefix, suffix string) *singlePassStub {
	r := &singlePassStub{stubRule: *newStubRule(id, "append-"+prefix, true)}
	r.apply = func(ctx *RuleContext) ([]Diagnostic, error) {
		var diags []Diagnostic
		for i, tok := range ctx.Tokens {
			if tok.Kind != phptok.TokIdent || !strings.HasPrefix(tok.Text, prefix) {
				continue
			}
			diags = append(diags, NewDiagnosticAt(id, ctx.File.Path, ctx.PositionAt(i),
				"append "+suffix+" to "+tok.Text).
				WithSeverity(config.SeverityWarning).
				WithFix().
				Build())
			ctx.Script.ReplaceText(ctx.Tokens, i, tok.Text+suffix)
		}
		return diags, nil
	}
	return r
}

// renameIdentRule replaces every identifier token matching from with to,
// reporting one fixable diagnostic per replacement. Used to drive the engine
// and pipeline through real edits.
func renameIdentRule(id, from, to string) *stubRule {
	r := newStubRule(id, "rename-"+from, true)
	r.apply = func(ctx *RuleContext) ([]Diagnostic, error) {
		var diags []Diagnostic
		for i, tok := range ctx.Tokens {
			if tok.Kind != phptok.TokIdent || tok.Text != from {
				continue
			}
			diags = append(diags, NewDiagnosticAt(id, ctx.File.Path, ctx.PositionAt(i),
				"rename "+from+" to "+to).
				WithSeverity(config.SeverityWarning).
				WithFix().
				Build())
			ctx.Script.ReplaceText(ctx.Tokens, i, to)
		}
		return diags, nil
	}
	return r
}
