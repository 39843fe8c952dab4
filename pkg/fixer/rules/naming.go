package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// affix describes where the configured name fragment attaches.
type affix uint8

const (
	affixSuffix affix = iota
	affixPrefix
)

// NamingRule enforces that declarations of one kind carry a configured name
// fragment. It generalizes the interface/trait/abstract/exception naming
// fixers: each is this rule with a different kind, fragment, and trigger.
//
// Renaming only touches the declaration site. References elsewhere in the
// file or project are not updated; that is an accepted limitation.
type NamingRule struct {
	fixer.BaseRule

	kind     phptok.DeclKind
	fragment string
	position affix

	// requireModifier limits the rule to declarations carrying this modifier
	// (e.g., "abstract"). Empty means all declarations of the kind.
	requireModifier string

	// extendsTriggered limits the rule to declarations whose extends parent
	// already carries the fragment. Inheritance-triggered renaming only.
	extendsTriggered bool
}

// NewInterfaceNameSuffixRule creates PHF001: interface names must end with
// "Interface".
func NewInterfaceNameSuffixRule() *NamingRule {
	return &NamingRule{
		BaseRule: fixer.NewBaseRule(
			"PHF001",
			"interface-name-suffix",
			"Interface names should end with the Interface suffix",
			[]string{"naming"},
			true,
		),
		kind:     phptok.DeclInterface,
		fragment: "Interface",
		position: affixSuffix,
	}
}

// NewTraitNameSuffixRule creates PHF002: trait names must end with "Trait".
func NewTraitNameSuffixRule() *NamingRule {
	return &NamingRule{
		BaseRule: fixer.NewBaseRule(
			"PHF002",
			"trait-name-suffix",
			"Trait names should end with the Trait suffix",
			[]string{"naming"},
			true,
		),
		kind:     phptok.DeclTrait,
		fragment: "Trait",
		position: affixSuffix,
	}
}

// NewAbstractClassNameRule creates PHF003: abstract class names must start
// with "Abstract".
func NewAbstractClassNameRule() *NamingRule {
	return &NamingRule{
		BaseRule: fixer.NewBaseRule(
			"PHF003",
			"abstract-class-name",
			"Abstract class names should start with the Abstract prefix",
			[]string{"naming"},
			true,
		),
		kind:            phptok.DeclClass,
		fragment:        "Abstract",
		position:        affixPrefix,
		requireModifier: "abstract",
	}
}

// NewExceptionNameSuffixRule creates PHF004: classes extending a parent whose
// name ends with "Exception" must themselves end with "Exception".
func NewExceptionNameSuffixRule() *NamingRule {
	return &NamingRule{
		BaseRule: fixer.NewBaseRule(
			"PHF004",
			"exception-name-suffix",
			"Classes extending an Exception should end with the Exception suffix",
			[]string{"naming"},
			true,
		),
		kind:             phptok.DeclClass,
		fragment:         "Exception",
		position:         affixSuffix,
		extendsTriggered: true,
	}
}

// Apply scans all named declarations and renames those missing the fragment.
func (r *NamingRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	seq := ctx.Tokens
	fragment := ctx.OptionString("fragment", r.fragment)

	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		if decl.Kind != r.kind {
			continue
		}
		if r.requireModifier != "" && !decl.HasModifier(seq, r.requireModifier) {
			continue
		}
		if r.extendsTriggered && !extendsParentWithSuffix(seq, decl, fragment) {
			continue
		}

		name := seq[decl.NamePos].Text
		fixed := r.fixedName(name, fragment)
		if fixed == name {
			continue
		}

		pos := ctx.PositionAt(decl.NamePos)
		diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("%s %q should be named %q", decl.Kind, name, fixed)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion(fmt.Sprintf("Rename to %q", fixed)).
			WithFix().
			Build()
		diags = append(diags, diag)

		ctx.Script.ReplaceText(seq, decl.NamePos, fixed)
	}

	return diags, nil
}

// fixedName returns the identifier with the fragment attached, or the input
// unchanged if it already carries the fragment.
func (r *NamingRule) fixedName(name, fragment string) string {
	switch r.position {
	case affixPrefix:
		if strings.HasPrefix(name, fragment) {
			return name
		}
		return fragment + name
	default:
		if strings.HasSuffix(name, fragment) {
			return name
		}
		return name + fragment
	}
}

// extendsParentWithSuffix reports whether the declaration extends a parent
// whose name (last segment for qualified parents) ends with the suffix.
func extendsParentWithSuffix(seq phptok.Sequence, decl phptok.Declaration, suffix string) bool {
	// The extends clause sits between the name and the opening brace.
	for p := decl.NamePos; p >= 0 && p < len(seq); p = phptok.NextMeaningful(seq, p) {
		if seq[p].Kind == phptok.TokBraceOpen {
			return false
		}
		if !phptok.KeywordIs(seq, p, "extends") {
			continue
		}

		// Parent name: a run of identifier/separator tokens.
		last := ""
		for q := phptok.NextMeaningful(seq, p); q >= 0; q = phptok.NextMeaningful(seq, q) {
			switch seq[q].Kind {
			case phptok.TokIdent:
				last = seq[q].Text
			case phptok.TokNsSeparator:
			default:
				return strings.HasSuffix(last, suffix)
			}
		}
		return strings.HasSuffix(last, suffix)
	}
	return false
}
