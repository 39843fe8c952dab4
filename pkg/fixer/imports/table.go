// Package imports maintains the per-file import table: the `use` statements a
// PHP file already has plus the bindings an import-hoisting rule plans to add
// during one scan. A table lives for a single rule invocation; statements the
// rule emits reappear as existing bindings when the next rule collects its
// own table from the rewritten sequence.
package imports

import (
	"strings"

	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// Binding associates a short name with the fully-qualified class name it
// resolves to inside the file.
type Binding struct {
	// Short is the name usable without a leading backslash.
	Short string

	// FQN is the fully-qualified class name, without the leading backslash.
	FQN string
}

// Table tracks existing and planned import bindings for one file. Short-name
// lookups are case-insensitive, matching PHP's class name resolution.
type Table struct {
	existing map[string]Binding // lower(short) -> binding from a `use` line
	planned  map[string]Binding // lower(short) -> binding to be written
	order    []string           // planned keys in first-discovery order

	lastUseSemi int // index of the ';' ending the last top-level use, or -1
	nsAnchor    int // index of the ';' or '{' ending the namespace decl, or -1
	openTag     int // index of the first open tag, or -1
}

func newTable() *Table {
	return &Table{
		existing:    make(map[string]Binding),
		planned:     make(map[string]Binding),
		lastUseSemi: -1,
		nsAnchor:    -1,
		openTag:     -1,
	}
}

// Collect scans the sequence and builds the import table from its top-level
// `use` statements. Function and const imports are ignored, as are closure
// capture lists and trait uses inside class bodies. Grouped use statements
// (`use A\B\{C, D as E};`) contribute one binding per group entry.
func Collect(seq phptok.Sequence) *Table {
	t := newTable()

	depth := 0
	for i := 0; i < len(seq); i++ {
		tok := seq[i]
		switch tok.Kind {
		case phptok.TokOpenTag:
			if t.openTag < 0 {
				t.openTag = i
			}
		case phptok.TokBraceOpen:
			depth++
		case phptok.TokBraceClose:
			if depth > 0 {
				depth--
			}
		case phptok.TokKeyword:
			if depth != 0 {
				continue
			}
			switch {
			case phptok.KeywordIs(seq, i, "namespace"):
				i = t.scanNamespace(seq, i)
			case phptok.KeywordIs(seq, i, "use"):
				i = t.scanUse(seq, i)
			}
		}
	}

	return t
}

// scanNamespace records the namespace declaration's anchor and returns the
// index scanning should resume from.
func (t *Table) scanNamespace(seq phptok.Sequence, pos int) int {
	for i := pos + 1; i < len(seq); i++ {
		switch seq[i].Kind {
		case phptok.TokOperator:
			if seq[i].Text == ";" {
				t.nsAnchor = i
				return i
			}
		case phptok.TokBraceOpen:
			t.nsAnchor = i
			return i
		}
	}
	return len(seq)
}

// scanUse parses one top-level `use` statement starting at the keyword and
// records its bindings. Returns the index of the terminating ';' (or the last
// scanned token when the statement is malformed).
func (t *Table) scanUse(seq phptok.Sequence, pos int) int {
	next := phptok.NextMeaningful(seq, pos)
	if next < 0 {
		return len(seq)
	}

	// Closure capture list: use ($a, $b).
	if seq[next].Kind == phptok.TokParenOpen {
		return pos
	}

	// Function/const imports never collide with class names.
	classImport := true
	if phptok.KeywordIs(seq, next, "function") || phptok.KeywordIs(seq, next, "const") {
		classImport = false
		next = phptok.NextMeaningful(seq, next)
		if next < 0 {
			return len(seq)
		}
	}

	var segments []string
	alias := ""
	groupPrefix := ""
	inAlias := false

	record := func() {
		if !classImport || len(segments) == 0 {
			segments, alias, inAlias = nil, "", false
			return
		}
		fqn := groupPrefix + strings.Join(segments, "\\")
		short := alias
		if short == "" {
			short = segments[len(segments)-1]
		}
		t.existing[strings.ToLower(short)] = Binding{Short: short, FQN: fqn}
		segments, alias, inAlias = nil, "", false
	}

	for i := next; i < len(seq); i++ {
		tok := seq[i]
		if !tok.IsMeaningful() {
			continue
		}
		switch {
		case tok.Kind == phptok.TokIdent:
			if inAlias {
				alias = tok.Text
			} else {
				segments = append(segments, tok.Text)
			}
		case tok.Kind == phptok.TokNsSeparator:
			// Segment joins happen in record; nothing to do here.
		case tok.Kind == phptok.TokKeyword && strings.EqualFold(tok.Text, "as"):
			inAlias = true
		case tok.Kind == phptok.TokBraceOpen:
			groupPrefix = strings.Join(segments, "\\") + "\\"
			segments, alias, inAlias = nil, "", false
		case tok.Kind == phptok.TokBraceClose:
			record()
			groupPrefix = ""
		case tok.Kind == phptok.TokOperator && tok.Text == ",":
			record()
		case tok.Kind == phptok.TokOperator && tok.Text == ";":
			record()
			if classImport {
				t.lastUseSemi = i
			}
			return i
		default:
			// Unexpected token inside a use statement. Abandon it rather
			// than guess.
			return i
		}
	}
	return len(seq)
}

// Lookup returns the binding for a short name, checking planned bindings
// first, then existing `use` lines.
func (t *Table) Lookup(short string) (Binding, bool) {
	key := strings.ToLower(short)
	if b, ok := t.planned[key]; ok {
		return b, true
	}
	if b, ok := t.existing[key]; ok {
		return b, true
	}
	return Binding{}, false
}

// ShortFor returns the short name already bound to the given fully-qualified
// name, if any.
func (t *Table) ShortFor(fqn string) (string, bool) {
	key := strings.ToLower(strings.TrimPrefix(fqn, "\\"))
	for _, b := range t.existing {
		if strings.ToLower(b.FQN) == key {
			return b.Short, true
		}
	}
	for _, b := range t.planned {
		if strings.ToLower(b.FQN) == key {
			return b.Short, true
		}
	}
	return "", false
}

// Bind requests that short resolve to fqn within the file. Returns true when
// the binding is available: either fresh, or already mapping to the same
// fully-qualified name. Returns false on a collision with a different name,
// in which case the caller must leave its occurrence untouched.
func (t *Table) Bind(short, fqn string) bool {
	fqn = strings.TrimPrefix(fqn, "\\")
	if b, ok := t.Lookup(short); ok {
		return strings.EqualFold(b.FQN, fqn)
	}
	key := strings.ToLower(short)
	t.planned[key] = Binding{Short: short, FQN: fqn}
	t.order = append(t.order, key)
	return true
}

// Bound returns true when the exact (short, fqn) pair is already in the table,
// from either an existing `use` line or a planned binding.
func (t *Table) Bound(short, fqn string) bool {
	b, ok := t.Lookup(short)
	return ok && strings.EqualFold(b.FQN, strings.TrimPrefix(fqn, "\\"))
}

// Planned returns the bindings requested via Bind this pass, in
// first-discovery order.
func (t *Table) Planned() []Binding {
	out := make([]Binding, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.planned[key])
	}
	return out
}

// HasPlanned returns true when at least one new `use` line must be written.
func (t *Table) HasPlanned() bool {
	return len(t.order) > 0
}

// InsertionPoint returns the token index where new `use` statement tokens
// should be inserted: immediately after the last existing use statement, else
// after the namespace declaration, else after the opening PHP tag. Returns -1
// when the file has no PHP open tag at all.
func (t *Table) InsertionPoint() int {
	switch {
	case t.lastUseSemi >= 0:
		return t.lastUseSemi + 1
	case t.nsAnchor >= 0:
		return t.nsAnchor + 1
	case t.openTag >= 0:
		return t.openTag + 1
	default:
		return -1
	}
}

// reservedTypeNames is the closed set of PHP built-in type names that must
// never be shortened or imported. Comparison is case-insensitive.
var reservedTypeNames = map[string]struct{}{
	"int": {}, "float": {}, "string": {}, "bool": {},
	"array": {}, "object": {}, "callable": {}, "iterable": {},
	"void": {}, "never": {}, "mixed": {}, "null": {},
	"false": {}, "true": {},
	"self": {}, "static": {}, "parent": {},
}

// ReservedTypeName returns true for PHP built-in type names and relative class
// references that import rules must never touch.
func ReservedTypeName(name string) bool {
	_, ok := reservedTypeNames[strings.ToLower(name)]
	return ok
}
