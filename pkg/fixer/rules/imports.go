package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/fixer/imports"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// importContext selects the syntactic context an ImportRule scans.
type importContext uint8

const (
	contextNew importContext = iota
	contextAttribute
	contextStaticCall
	contextType
)

// ImportRule normalizes fully-qualified class names in one syntactic context
// to short names backed by hoisted `use` statements. It generalizes the four
// import fixers; each is this rule scanning a different context.
//
// A name qualifies when it has a leading namespace separator or more than one
// segment. Bare identifiers and built-in type names are never touched. An
// occurrence whose short name is already bound to a different fully-qualified
// name is left unchanged; collision avoidance beats normalization.
type ImportRule struct {
	fixer.BaseRule

	context importContext
}

// NewImportFqcnNewRule creates PHF010: import fully-qualified names used in
// new expressions.
func NewImportFqcnNewRule() *ImportRule {
	return &ImportRule{
		BaseRule: fixer.NewBaseRule(
			"PHF010",
			"import-fqcn-new",
			"Fully qualified names in new expressions should be imported",
			[]string{"imports"},
			true,
		),
		context: contextNew,
	}
}

// NewImportFqcnAttributeRule creates PHF011: import fully-qualified names
// used inside attribute groups.
func NewImportFqcnAttributeRule() *ImportRule {
	return &ImportRule{
		BaseRule: fixer.NewBaseRule(
			"PHF011",
			"import-fqcn-attribute",
			"Fully qualified names in attributes should be imported",
			[]string{"imports"},
			true,
		),
		context: contextAttribute,
	}
}

// NewImportFqcnStaticCallRule creates PHF012: import fully-qualified names
// left of a static access operator.
func NewImportFqcnStaticCallRule() *ImportRule {
	return &ImportRule{
		BaseRule: fixer.NewBaseRule(
			"PHF012",
			"import-fqcn-static-call",
			"Fully qualified names in static calls should be imported",
			[]string{"imports"},
			true,
		),
		context: contextStaticCall,
	}
}

// NewImportFqcnTypeRule creates PHF013: import fully-qualified names used in
// property and parameter type positions.
func NewImportFqcnTypeRule() *ImportRule {
	return &ImportRule{
		BaseRule: fixer.NewBaseRule(
			"PHF013",
			"import-fqcn-type",
			"Fully qualified names in property and parameter types should be imported",
			[]string{"imports"},
			true,
		),
		context: contextType,
	}
}

// Apply scans the configured context and rewrites qualified occurrences.
func (r *ImportRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	var diags []fixer.Diagnostic

	switch r.context {
	case contextNew:
		diags = r.scanNew(ctx)
	case contextAttribute:
		diags = r.scanAttributes(ctx)
	case contextStaticCall:
		diags = r.scanStaticCalls(ctx)
	case contextType:
		diags = r.scanTypes(ctx)
	}

	if ctx.Cancelled() {
		return diags, ctx.Ctx.Err()
	}

	r.emitPlannedImports(ctx)
	return diags, nil
}

// nameRun is one qualified-name occurrence: an inclusive token span plus its
// decomposed segments.
type nameRun struct {
	start, end int
	parts      []string
	leadingSep bool
}

// qualified reports whether the run is fully qualified.
func (n nameRun) qualified() bool {
	return n.leadingSep || len(n.parts) > 1
}

// short returns the last segment.
func (n nameRun) short() string {
	return n.parts[len(n.parts)-1]
}

// fqn returns the joined name without a leading separator.
func (n nameRun) fqn() string {
	return strings.Join(n.parts, "\\")
}

// readNameRun reads a contiguous run of identifier and separator tokens
// starting at pos. Trivia inside a name is not allowed; the run stops at the
// first non-name token. Returns false when no identifier is found.
func readNameRun(seq phptok.Sequence, pos int) (nameRun, bool) {
	run := nameRun{start: pos, end: -1}
	for i := pos; i < len(seq); i++ {
		switch seq[i].Kind {
		case phptok.TokIdent:
			run.parts = append(run.parts, seq[i].Text)
			run.end = i
		case phptok.TokNsSeparator:
			if i == pos {
				run.leadingSep = true
			}
		default:
			if len(run.parts) == 0 {
				return nameRun{}, false
			}
			return run, true
		}
	}
	if len(run.parts) == 0 {
		return nameRun{}, false
	}
	return run, true
}

// rewriteRun shortens one qualified occurrence if the import table permits,
// and appends a diagnostic. Returns the run end so scanning can resume past
// the occurrence.
func (r *ImportRule) rewriteRun(ctx *fixer.RuleContext, run nameRun, diags *[]fixer.Diagnostic) {
	if !run.qualified() {
		return
	}
	short := run.short()
	if imports.ReservedTypeName(short) {
		return
	}
	if !ctx.Imports().Bind(short, run.fqn()) {
		// Collision with a different binding; leave the occurrence alone.
		return
	}

	seq := ctx.Tokens
	pos := ctx.PositionAt(run.start)
	diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
		fmt.Sprintf("Use imported %q instead of fully qualified %q", short, renderRun(seq, run))).
		WithSeverity(config.SeverityWarning).
		WithSuggestion(fmt.Sprintf("Import %s and use the short name", run.fqn())).
		WithFix().
		Build()
	*diags = append(*diags, diag)

	ctx.Script.Replace(run.start, phptok.Token{Kind: phptok.TokIdent, Text: short})
	for p := run.start + 1; p <= run.end; p++ {
		ctx.Script.Delete(p)
	}
}

// renderRun returns the source text of the run span.
func renderRun(seq phptok.Sequence, run nameRun) string {
	var b strings.Builder
	for p := run.start; p <= run.end && p < len(seq); p++ {
		b.WriteString(seq[p].Text)
	}
	return b.String()
}

// emitPlannedImports inserts one `use` statement per planned binding, in
// first-discovery order, at the hoisting anchor.
func (r *ImportRule) emitPlannedImports(ctx *fixer.RuleContext) {
	table := ctx.Imports()
	if !table.HasPlanned() {
		return
	}
	anchor := table.InsertionPoint()
	if anchor < 0 {
		return
	}

	for _, b := range table.Planned() {
		toks := []phptok.Token{
			{Kind: phptok.TokWhitespace, Text: "\n"},
			{Kind: phptok.TokKeyword, Text: "use"},
			{Kind: phptok.TokWhitespace, Text: " "},
		}
		for i, seg := range strings.Split(b.FQN, "\\") {
			if i > 0 {
				toks = append(toks, phptok.Token{Kind: phptok.TokNsSeparator, Text: "\\"})
			}
			toks = append(toks, phptok.Token{Kind: phptok.TokIdent, Text: seg})
		}
		toks = append(toks, phptok.Token{Kind: phptok.TokOperator, Text: ";"})
		ctx.Script.Insert(anchor, toks...)
	}
}

// scanNew finds qualified names immediately after `new` keywords. The walk
// stops at the first token that is not part of a name, so constructor-call
// parentheses are untouched. Anonymous classes are skipped.
func (r *ImportRule) scanNew(ctx *fixer.RuleContext) []fixer.Diagnostic {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for i := 0; i < len(seq); i++ {
		if !phptok.KeywordIs(seq, i, "new") {
			continue
		}
		j := phptok.NextMeaningful(seq, i)
		if j < 0 || phptok.KeywordIs(seq, j, "class") {
			continue
		}
		if seq[j].Kind != phptok.TokIdent && seq[j].Kind != phptok.TokNsSeparator {
			continue
		}
		run, ok := readNameRun(seq, j)
		if !ok {
			continue
		}
		r.rewriteRun(ctx, run, &diags)
		i = run.end
	}
	return diags
}

// scanAttributes finds qualified names inside attribute groups, at nesting
// depth zero only: names inside an attribute's argument list are not
// attribute names.
func (r *ImportRule) scanAttributes(ctx *fixer.RuleContext) []fixer.Diagnostic {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for i := 0; i < len(seq); i++ {
		if seq[i].Kind != phptok.TokAttributeOpen {
			continue
		}
		end := phptok.FindBlockEnd(seq, i)
		if end < 0 {
			// Unbalanced group: skip it entirely.
			continue
		}

		depth := 0
		for k := i + 1; k < end; k++ {
			switch seq[k].Kind {
			case phptok.TokParenOpen, phptok.TokBracketOpen, phptok.TokAttributeOpen:
				depth++
			case phptok.TokParenClose, phptok.TokBracketClose:
				depth--
			case phptok.TokIdent, phptok.TokNsSeparator:
				if depth != 0 {
					continue
				}
				run, ok := readNameRun(seq, k)
				if !ok {
					continue
				}
				r.rewriteRun(ctx, run, &diags)
				k = run.end
			}
		}
		i = end
	}
	return diags
}

// scanStaticCalls finds qualified names immediately left of a `::` operator.
// The relative references self, static, and parent are excluded by the
// reserved-name set.
func (r *ImportRule) scanStaticCalls(ctx *fixer.RuleContext) []fixer.Diagnostic {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for i := 0; i < len(seq); i++ {
		if seq[i].Kind != phptok.TokOperator || seq[i].Text != "::" {
			continue
		}

		// Walk left over the contiguous name run ending just before '::'.
		start := -1
		for q := i - 1; q >= 0; q-- {
			k := seq[q].Kind
			if k != phptok.TokIdent && k != phptok.TokNsSeparator {
				break
			}
			start = q
		}
		if start < 0 {
			continue
		}
		run, ok := readNameRun(seq, start)
		if !ok || run.end >= i {
			continue
		}
		r.rewriteRun(ctx, run, &diags)
	}
	return diags
}

// typeExprToken reports whether the token can appear in a property/parameter
// type expression: name segments plus union, intersection, and nullable
// markers.
func typeExprToken(t phptok.Token) bool {
	switch t.Kind {
	case phptok.TokIdent, phptok.TokNsSeparator, phptok.TokWhitespace:
		return true
	case phptok.TokOperator:
		return t.Text == "|" || t.Text == "&" || t.Text == "?"
	default:
		return false
	}
}

// typeBoundary reports whether the token before a candidate type expression
// marks a property or parameter position.
func typeBoundary(t phptok.Token) bool {
	switch t.Kind {
	case phptok.TokParenOpen, phptok.TokBraceOpen, phptok.TokKeyword:
		return true
	case phptok.TokOperator:
		return t.Text == "," || t.Text == ";"
	default:
		return false
	}
}

// scanTypes finds qualified names in type expressions immediately preceding a
// variable token: typed properties and typed parameters, including promoted
// constructor parameters.
func (r *ImportRule) scanTypes(ctx *fixer.RuleContext) []fixer.Diagnostic {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for v := 0; v < len(seq); v++ {
		if seq[v].Kind != phptok.TokVariable {
			continue
		}

		// Collect the contiguous type expression ending just before the
		// variable.
		start := v
		for q := v - 1; q >= 0 && typeExprToken(seq[q]); q-- {
			start = q
		}
		if start == v {
			continue
		}

		// Only fire when the expression sits in a declaration position.
		if start > 0 && !typeBoundary(seq[start-1]) {
			continue
		}

		for k := start; k < v; k++ {
			if seq[k].Kind != phptok.TokIdent && seq[k].Kind != phptok.TokNsSeparator {
				continue
			}
			run, ok := readNameRun(seq, k)
			if !ok {
				continue
			}
			r.rewriteRun(ctx, run, &diags)
			k = run.end
		}
	}
	return diags
}
