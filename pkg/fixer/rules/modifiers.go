package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// FinalReadonlyClassRule is PHF030: classes that do not extend, are not
// abstract, and show no property mutation outside the constructor are marked
// `final readonly`. A class already marked readonly that extends a parent or
// mutates a property gets the modifier removed: emitting valid code beats
// strict add-only idempotence.
//
// Readonly classes require PHP 8.2, so the rule is version gated.
type FinalReadonlyClassRule struct {
	fixer.BaseRule
}

// NewFinalReadonlyClassRule creates PHF030.
func NewFinalReadonlyClassRule() *FinalReadonlyClassRule {
	return &FinalReadonlyClassRule{
		BaseRule: fixer.NewBaseRule(
			"PHF030",
			"final-readonly-class",
			"Classes without inheritance or mutation should be final readonly",
			[]string{"modifiers"},
			true,
		),
	}
}

// MinPHPVersion implements fixer.VersionGated.
func (r *FinalReadonlyClassRule) MinPHPVersion() config.TargetVersion {
	return config.PHP82
}

// Apply normalizes class-level final/readonly modifiers.
func (r *FinalReadonlyClassRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	seq := ctx.Tokens
	addFinal := ctx.OptionBool("add_final", true)

	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if decl.Kind != phptok.DeclClass || decl.HasModifier(seq, "abstract") {
			continue
		}

		bodyOpen, bodyClose := classBody(seq, decl)
		if bodyOpen < 0 {
			// Unbalanced or missing body: do not rewrite.
			continue
		}

		hasExtends := clauseHasKeyword(seq, decl.NamePos, bodyOpen, "extends")
		mutation := classHasMutation(seq, bodyOpen, bodyClose)
		isReadonly := decl.HasModifier(seq, "readonly")
		name := seq[decl.NamePos].Text

		if isReadonly && (hasExtends || mutation) {
			reason := "extends a parent class"
			if !hasExtends {
				reason = "mutates properties outside the constructor"
			}

			pos := ctx.PositionAt(decl.NamePos)
			diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				fmt.Sprintf("Class %q is readonly but %s", name, reason)).
				WithSeverity(config.SeverityError).
				WithSuggestion("Remove the readonly modifier").
				WithFix().
				Build()
			diags = append(diags, diag)

			removeModifier(ctx, decl, "readonly")
			continue
		}

		if isReadonly || hasExtends || mutation {
			continue
		}

		pos := ctx.PositionAt(decl.NamePos)
		diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("Class %q can be final readonly", name)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Add the final readonly modifiers").
			WithFix().
			Build()
		diags = append(diags, diag)

		if addFinal && !decl.HasModifier(seq, "final") {
			anchor := decl.KeywordPos
			if len(decl.Modifiers) > 0 {
				anchor = decl.Modifiers[0]
			}
			ctx.Script.Insert(anchor,
				phptok.Token{Kind: phptok.TokKeyword, Text: "final"},
				phptok.Token{Kind: phptok.TokWhitespace, Text: " "},
			)
		}
		ctx.Script.Insert(decl.KeywordPos,
			phptok.Token{Kind: phptok.TokKeyword, Text: "readonly"},
			phptok.Token{Kind: phptok.TokWhitespace, Text: " "},
		)
	}

	return diags, nil
}

// classBody returns the body brace span of the declaration, or (-1, -1) when
// the body is missing or unbalanced.
func classBody(seq phptok.Sequence, decl phptok.Declaration) (int, int) {
	for p := decl.NamePos; p >= 0; p = phptok.NextMeaningful(seq, p) {
		if seq[p].Kind == phptok.TokBraceOpen {
			end := phptok.FindBlockEnd(seq, p)
			if end < 0 {
				return -1, -1
			}
			return p, end
		}
		if seq[p].Kind == phptok.TokOperator && seq[p].Text == ";" {
			return -1, -1
		}
	}
	return -1, -1
}

// clauseHasKeyword reports whether the keyword appears between from and to,
// exclusive.
func clauseHasKeyword(seq phptok.Sequence, from, to int, word string) bool {
	for p := from + 1; p < to; p++ {
		if phptok.KeywordIs(seq, p, word) {
			return true
		}
	}
	return false
}

// assignmentOperators are the operators that mutate their left-hand side.
var assignmentOperators = map[string]struct{}{
	"=": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {}, ".=": {},
	"**=": {}, "??=": {}, "|=": {}, "&=": {}, "^=": {}, "<<=": {}, ">>=": {},
	"++": {}, "--": {},
}

// classHasMutation scans the class body for writes to $this properties
// outside the constructor. Array-index access, chained arrow access, unset,
// and compound assignment are each treated conservatively as mutations; the
// heuristic prefers false positives over emitting an invalid readonly class.
func classHasMutation(seq phptok.Sequence, bodyOpen, bodyClose int) bool {
	ctorOpen, ctorClose := constructorBody(seq, bodyOpen, bodyClose)

	for p := bodyOpen + 1; p < bodyClose; p++ {
		if ctorOpen >= 0 && p >= ctorOpen && p <= ctorClose {
			p = ctorClose
			continue
		}
		if seq[p].Kind != phptok.TokVariable || seq[p].Text != "$this" {
			continue
		}

		arrow := phptok.NextMeaningful(seq, p)
		if arrow < 0 || seq[arrow].Kind != phptok.TokOperator ||
			(seq[arrow].Text != "->" && seq[arrow].Text != "?->") {
			continue
		}
		prop := phptok.NextMeaningful(seq, arrow)
		if prop < 0 || seq[prop].Kind != phptok.TokIdent {
			continue
		}

		// unset($this->prop) destroys the property.
		if before := phptok.PrevMeaningful(seq, p); before >= 0 && seq[before].Kind == phptok.TokParenOpen {
			if fn := phptok.PrevMeaningful(seq, before); fn >= 0 && phptok.KeywordIs(seq, fn, "unset") {
				return true
			}
		}

		after := phptok.NextMeaningful(seq, prop)
		if after < 0 {
			continue
		}
		switch {
		case seq[after].Kind == phptok.TokBracketOpen:
			// $this->items[...] = ...; treated as mutation without proving
			// the assignment.
			return true
		case seq[after].Kind == phptok.TokOperator:
			if _, ok := assignmentOperators[seq[after].Text]; ok {
				return true
			}
			if seq[after].Text == "->" || seq[after].Text == "?->" {
				// Chained property access may mutate the nested object.
				return true
			}
		}
	}
	return false
}

// constructorBody returns the brace span of __construct within the class
// body, or (-1, -1) when the class has no constructor.
func constructorBody(seq phptok.Sequence, bodyOpen, bodyClose int) (int, int) {
	for p := bodyOpen + 1; p < bodyClose; p++ {
		if !phptok.KeywordIs(seq, p, "function") {
			continue
		}
		name := phptok.NextMeaningful(seq, p)
		if name < 0 || seq[name].Kind != phptok.TokIdent ||
			!strings.EqualFold(seq[name].Text, "__construct") {
			continue
		}
		paren := phptok.NextMeaningful(seq, name)
		if paren < 0 || seq[paren].Kind != phptok.TokParenOpen {
			continue
		}
		parenEnd := phptok.FindBlockEnd(seq, paren)
		if parenEnd < 0 {
			return -1, -1
		}
		// Skip over a possible colon/return-type region to the body brace.
		for q := phptok.NextMeaningful(seq, parenEnd); q >= 0 && q < bodyClose; q = phptok.NextMeaningful(seq, q) {
			if seq[q].Kind == phptok.TokBraceOpen {
				return q, phptok.FindBlockEnd(seq, q)
			}
			if seq[q].Kind == phptok.TokOperator && seq[q].Text == ";" {
				// Abstract/interface constructor signature, no body.
				return -1, -1
			}
		}
		return -1, -1
	}
	return -1, -1
}

// anonymousClassEnd returns the body-close position of an anonymous class
// expression starting at the `new` keyword, or -1 when the expression is not
// an anonymous class or its body cannot be delimited. Argument lists and
// extends/implements clauses between `class` and the body are stepped over.
func anonymousClassEnd(seq phptok.Sequence, newPos, limit int) int {
	p := phptok.NextMeaningful(seq, newPos)
	if p >= 0 && phptok.KeywordIs(seq, p, "readonly") {
		p = phptok.NextMeaningful(seq, p)
	}
	if p < 0 || p >= limit || !phptok.KeywordIs(seq, p, "class") {
		return -1
	}

	for p = phptok.NextMeaningful(seq, p); p >= 0 && p < limit; {
		switch {
		case seq[p].Kind == phptok.TokParenOpen:
			end := phptok.FindBlockEnd(seq, p)
			if end < 0 {
				return -1
			}
			p = phptok.NextMeaningful(seq, end)
		case seq[p].Kind == phptok.TokBraceOpen:
			return phptok.FindBlockEnd(seq, p)
		case seq[p].Kind == phptok.TokOperator && seq[p].Text == ";":
			return -1
		default:
			p = phptok.NextMeaningful(seq, p)
		}
	}
	return -1
}

// removeModifier deletes the named modifier token and its trailing space.
func removeModifier(ctx *fixer.RuleContext, decl phptok.Declaration, word string) {
	seq := ctx.Tokens
	for _, m := range decl.Modifiers {
		if !strings.EqualFold(seq[m].Text, word) {
			continue
		}
		ctx.Script.Delete(m)
		if m+1 < len(seq) && seq[m+1].Kind == phptok.TokWhitespace {
			ctx.Script.Delete(m + 1)
		}
		return
	}
}

// NoRedundantReadonlyPropertyRule is PHF031: inside a readonly class, the
// per-property readonly modifier is redundant and removed, including on
// promoted constructor parameters. Surrounding single spaces are merged back
// to exactly one space.
type NoRedundantReadonlyPropertyRule struct {
	fixer.BaseRule
}

// NewNoRedundantReadonlyPropertyRule creates PHF031.
func NewNoRedundantReadonlyPropertyRule() *NoRedundantReadonlyPropertyRule {
	return &NoRedundantReadonlyPropertyRule{
		BaseRule: fixer.NewBaseRule(
			"PHF031",
			"no-redundant-readonly-property",
			"Properties in readonly classes do not need their own readonly modifier",
			[]string{"modifiers"},
			true,
		),
	}
}

// MinPHPVersion implements fixer.VersionGated.
func (r *NoRedundantReadonlyPropertyRule) MinPHPVersion() config.TargetVersion {
	return config.PHP82
}

// Apply strips redundant readonly modifiers inside readonly class bodies.
func (r *NoRedundantReadonlyPropertyRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if decl.Kind != phptok.DeclClass || !decl.HasModifier(seq, "readonly") {
			continue
		}

		bodyOpen, bodyClose := classBody(seq, decl)
		if bodyOpen < 0 {
			continue
		}

		for p := bodyOpen + 1; p < bodyClose; p++ {
			// Anonymous classes own their modifiers: their properties are
			// only redundant if the anonymous class itself is readonly, and
			// the class-level readonly of `new readonly class` must survive.
			if phptok.KeywordIs(seq, p, "new") {
				if end := anonymousClassEnd(seq, p, bodyClose); end > p {
					p = end
					continue
				}
			}
			if !phptok.KeywordIs(seq, p, "readonly") {
				continue
			}

			pos := ctx.PositionAt(p)
			diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				"Redundant readonly modifier inside a readonly class").
				WithSeverity(config.SeverityWarning).
				WithSuggestion("Remove the property-level readonly modifier").
				WithFix().
				Build()
			diags = append(diags, diag)

			ctx.Script.Delete(p)
			if p+1 < bodyClose && seq[p+1].Kind == phptok.TokWhitespace {
				ctx.Script.Delete(p + 1)
			}
		}
	}

	return diags, nil
}
