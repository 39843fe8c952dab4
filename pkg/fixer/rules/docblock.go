package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/phptok"
	"github.com/yaklabco/gophpfix/pkg/vcs"
)

// tagPattern matches a docblock tag followed by a boundary, so "@author"
// never matches inside "@authored".
func tagPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(tag) + `(\s|\*|$)`)
}

var (
	authorTagRe  = tagPattern("@author")
	versionTagRe = tagPattern("@version")
	psalmTagRe   = tagPattern("@psalm-immutable")

	// versionValueRe captures the three components of a semantic version
	// carried by a @version tag.
	versionValueRe = regexp.MustCompile(`(@version\s+)(\d+)\.(\d+)\.(\d+)`)
)

// docIndent returns the line indentation of the token at pos, read from the
// trailing line of the preceding whitespace token.
func docIndent(seq phptok.Sequence, pos int) string {
	if pos <= 0 || seq[pos-1].Kind != phptok.TokWhitespace {
		return ""
	}
	ws := seq[pos-1].Text
	if i := strings.LastIndexByte(ws, '\n'); i >= 0 {
		return ws[i+1:]
	}
	return ""
}

// injectBeforeClose returns the docblock with a new tag line inserted
// immediately before the closing delimiter. Single-line docblocks are
// expanded to multi-line form.
func injectBeforeClose(doc, indent, line string) string {
	closeIdx := strings.LastIndex(doc, "*/")
	if closeIdx < 0 {
		return doc
	}
	head := strings.TrimRight(doc[:closeIdx], " \t")
	if !strings.HasSuffix(head, "\n"+indent) {
		head = strings.TrimRight(head, "\n") + "\n" + indent
	}
	return head + " * " + line + "\n" + indent + " */"
}

// injectAfterTag returns the docblock with a new tag line inserted after the
// line containing the given tag. Falls back to injectBeforeClose when the tag
// is absent.
func injectAfterTag(doc, indent, tag, line string) string {
	loc := tagPattern(tag).FindStringIndex(doc)
	if loc == nil {
		return injectBeforeClose(doc, indent, line)
	}
	lineEnd := strings.IndexByte(doc[loc[0]:], '\n')
	if lineEnd < 0 {
		return injectBeforeClose(doc, indent, line)
	}
	at := loc[0] + lineEnd + 1
	return doc[:at] + indent + " * " + line + "\n" + doc[at:]
}

// synthesizeDocblock builds a fresh docblock containing a single tag line.
func synthesizeDocblock(indent, line string) string {
	return "/**\n" + indent + " * " + line + "\n" + indent + " */"
}

// injectDocblockTag records edits that ensure the declaration's docblock
// contains the tag line, creating the docblock if the declaration has none.
func injectDocblockTag(ctx *fixer.RuleContext, decl phptok.Declaration, line string) {
	seq := ctx.Tokens
	if decl.DocblockPos >= 0 {
		indent := docIndent(seq, decl.DocblockPos)
		ctx.Script.ReplaceText(seq, decl.DocblockPos,
			injectBeforeClose(seq[decl.DocblockPos].Text, indent, line))
		return
	}
	indent := docIndent(seq, decl.StartPos)
	ctx.Script.Insert(decl.StartPos,
		phptok.Token{Kind: phptok.TokDocblock, Text: synthesizeDocblock(indent, line)},
		phptok.Token{Kind: phptok.TokWhitespace, Text: "\n" + indent},
	)
}

// AuthorTagRule is PHF020: every named declaration's docblock carries an
// @author tag with the resolved run identity. Without a complete identity the
// rule is a no-op.
type AuthorTagRule struct {
	fixer.BaseRule

	identity vcs.Identity
}

// NewAuthorTagRule creates PHF020 with the given run identity.
func NewAuthorTagRule(identity vcs.Identity) *AuthorTagRule {
	return &AuthorTagRule{
		BaseRule: fixer.NewBaseRule(
			"PHF020",
			"docblock-author-tag",
			"Declaration docblocks should carry an @author tag",
			[]string{"docblocks"},
			true,
		),
		identity: identity,
	}
}

// DefaultEnabled returns false: the rule writes personal identity into source
// files and must be opted into.
func (r *AuthorTagRule) DefaultEnabled() bool {
	return false
}

// runIdentity returns the effective identity, letting per-rule options
// override the constructor-injected one.
func (r *AuthorTagRule) runIdentity(ctx *fixer.RuleContext) vcs.Identity {
	return vcs.Identity{
		Name:  ctx.OptionString("author_name", r.identity.Name),
		Email: ctx.OptionString("author_email", r.identity.Email),
	}
}

// Apply injects @author tags into docblocks that lack one.
func (r *AuthorTagRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	id := r.runIdentity(ctx)
	if !id.IsComplete() {
		return nil, nil
	}

	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if decl.DocblockPos >= 0 && authorTagRe.MatchString(seq[decl.DocblockPos].Text) {
			continue
		}

		pos := ctx.PositionAt(decl.NamePos)
		diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("%s %q is missing an @author tag", decl.Kind, seq[decl.NamePos].Text)).
			WithSeverity(config.SeverityInfo).
			WithSuggestion("Add @author " + id.Tag()).
			WithFix().
			Build()
		diags = append(diags, diag)

		injectDocblockTag(ctx, decl, "@author "+id.Tag())
	}

	return diags, nil
}

// VersionTagRule is PHF021: declaration docblocks carry a @version tag, and
// the patch component is bumped when the file has uncommitted changes.
//
// The bump is intentionally non-idempotent while changes are pending, which
// is why this rule is disabled by default and runs on the first fix pass
// only. A nil or failing status querier degrades to "treat as unchanged":
// tags are still injected, never bumped.
type VersionTagRule struct {
	fixer.BaseRule

	identity vcs.Identity
	status   vcs.StatusQuerier
}

// NewVersionTagRule creates PHF021 with the given identity and status querier.
func NewVersionTagRule(identity vcs.Identity, status vcs.StatusQuerier) *VersionTagRule {
	return &VersionTagRule{
		BaseRule: fixer.NewBaseRule(
			"PHF021",
			"docblock-version-tag",
			"Declaration docblocks should carry a @version tag, bumped on local changes",
			[]string{"docblocks"},
			true,
		),
		identity: identity,
		status:   status,
	}
}

// DefaultEnabled returns false: the version bump is non-idempotent.
func (r *VersionTagRule) DefaultEnabled() bool {
	return false
}

// SinglePassOnly implements fixer.SinglePass: re-running the bump on its own
// output would advance the patch level once per pass instead of once per run.
func (r *VersionTagRule) SinglePassOnly() {}

// initialVersion is the version written when a docblock has no @version tag.
const initialVersion = "1.0.0"

// Apply injects missing @version tags and bumps existing ones on changed
// files.
func (r *VersionTagRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	if !r.identity.IsComplete() {
		return nil, nil
	}

	seq := ctx.Tokens

	changed := false
	if r.status != nil && ctx.File != nil {
		changed = r.status.FileStatus(ctx.Ctx, ctx.File.Path) == vcs.StatusChanged
	}

	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		name := seq[decl.NamePos].Text

		if decl.DocblockPos >= 0 && versionTagRe.MatchString(seq[decl.DocblockPos].Text) {
			if !changed {
				continue
			}
			doc := seq[decl.DocblockPos].Text
			bumped := bumpPatch(doc)
			if bumped == doc {
				continue
			}

			pos := ctx.PositionAt(decl.DocblockPos)
			diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				fmt.Sprintf("%s %q has pending changes; bumping @version patch level", decl.Kind, name)).
				WithSeverity(config.SeverityInfo).
				WithFix().
				Build()
			diags = append(diags, diag)

			ctx.Script.ReplaceText(seq, decl.DocblockPos, bumped)
			continue
		}

		pos := ctx.PositionAt(decl.NamePos)
		diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("%s %q is missing a @version tag", decl.Kind, name)).
			WithSeverity(config.SeverityInfo).
			WithSuggestion("Add @version " + initialVersion).
			WithFix().
			Build()
		diags = append(diags, diag)

		if decl.DocblockPos >= 0 {
			indent := docIndent(seq, decl.DocblockPos)
			ctx.Script.ReplaceText(seq, decl.DocblockPos,
				injectAfterTag(seq[decl.DocblockPos].Text, indent, "@author", "@version "+initialVersion))
		} else {
			injectDocblockTag(ctx, decl, "@version "+initialVersion)
		}
	}

	return diags, nil
}

// bumpPatch increments the patch component of the first @version semantic
// version in the docblock. Returns the input unchanged when no parseable
// version is present.
func bumpPatch(doc string) string {
	return versionValueRe.ReplaceAllStringFunc(doc, func(m string) string {
		parts := versionValueRe.FindStringSubmatch(m)
		patch, err := strconv.Atoi(parts[4])
		if err != nil {
			return m
		}
		return parts[1] + parts[2] + "." + parts[3] + "." + strconv.Itoa(patch+1)
	})
}

// PsalmImmutableRule is PHF022: readonly classes carry a @psalm-immutable
// docblock tag so static analysis matches the language-level guarantee.
type PsalmImmutableRule struct {
	fixer.BaseRule
}

// NewPsalmImmutableRule creates PHF022.
func NewPsalmImmutableRule() *PsalmImmutableRule {
	return &PsalmImmutableRule{
		BaseRule: fixer.NewBaseRule(
			"PHF022",
			"psalm-immutable-tag",
			"Readonly classes should carry a @psalm-immutable tag",
			[]string{"docblocks"},
			true,
		),
	}
}

// Apply injects @psalm-immutable into readonly class docblocks.
func (r *PsalmImmutableRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if decl.Kind != phptok.DeclClass || !decl.HasModifier(seq, "readonly") {
			continue
		}
		if decl.DocblockPos >= 0 && psalmTagRe.MatchString(seq[decl.DocblockPos].Text) {
			continue
		}

		pos := ctx.PositionAt(decl.NamePos)
		diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("Readonly class %q is missing @psalm-immutable", seq[decl.NamePos].Text)).
			WithSeverity(config.SeverityInfo).
			WithSuggestion("Add @psalm-immutable to the docblock").
			WithFix().
			Build()
		diags = append(diags, diag)

		injectDocblockTag(ctx, decl, "@psalm-immutable")
	}

	return diags, nil
}

// NoDuplicateDocblockRule is PHF023: a docblock sitting between an attribute
// group and its declaration duplicates the one before the attributes and is
// removed. A docblock before the attribute group is the real one and is
// always preserved.
type NoDuplicateDocblockRule struct {
	fixer.BaseRule
}

// NewNoDuplicateDocblockRule creates PHF023.
func NewNoDuplicateDocblockRule() *NoDuplicateDocblockRule {
	return &NoDuplicateDocblockRule{
		BaseRule: fixer.NewBaseRule(
			"PHF023",
			"no-duplicate-docblock",
			"Docblocks duplicated after attribute groups should be removed",
			[]string{"docblocks"},
			true,
		),
	}
}

// Apply removes attribute-adjacent duplicate docblocks.
func (r *NoDuplicateDocblockRule) Apply(ctx *fixer.RuleContext) ([]fixer.Diagnostic, error) {
	seq := ctx.Tokens
	var diags []fixer.Diagnostic

	for _, decl := range phptok.Declarations(seq) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		// Walk backward from the keyword across the declaration preamble.
		cursor := decl.KeywordPos
		for {
			p := phptok.PrevMeaningful(seq, cursor)
			if p < 0 {
				break
			}
			switch {
			case phptok.IsModifierKeyword(seq[p]):
				cursor = p
			case seq[p].Kind == phptok.TokBracketClose:
				open := phptok.FindBlockStart(seq, p)
				if open < 0 || seq[open].Kind != phptok.TokAttributeOpen {
					cursor = -1
					break
				}
				cursor = open
			case seq[p].Kind == phptok.TokDocblock:
				q := phptok.PrevMeaningful(seq, p)
				if q < 0 || seq[q].Kind != phptok.TokBracketClose {
					// The leading docblock proper; preamble ends here.
					cursor = -1
					break
				}
				if open := phptok.FindBlockStart(seq, q); open < 0 || seq[open].Kind != phptok.TokAttributeOpen {
					cursor = -1
					break
				}

				pos := ctx.PositionAt(p)
				diag := fixer.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
					"Duplicate docblock after attribute group").
					WithSeverity(config.SeverityWarning).
					WithSuggestion("Remove the docblock; the one before the attributes is authoritative").
					WithFix().
					Build()
				diags = append(diags, diag)

				ctx.Script.Delete(p)
				if p+1 < len(seq) && seq[p+1].Kind == phptok.TokWhitespace {
					ctx.Script.Delete(p + 1)
				}
				cursor = p
			default:
				cursor = -1
			}
			if cursor < 0 {
				break
			}
		}
	}

	return diags, nil
}
