package phptok

// DeclKind identifies the kind of a type declaration.
type DeclKind uint8

const (
	DeclClass DeclKind = iota
	DeclInterface
	DeclTrait
	DeclEnum
)

// String returns the PHP keyword for the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclTrait:
		return "trait"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Declaration is a derived view over a contiguous token range identifying a
// named type declaration. It is computed fresh per fixer invocation from the
// current sequence and never persisted.
type Declaration struct {
	// Kind is the declaration kind.
	Kind DeclKind

	// KeywordPos is the index of the declaration keyword token.
	KeywordPos int

	// NamePos is the index of the identifier token naming the declaration.
	NamePos int

	// Modifiers holds the indices of leading modifier keywords
	// (final/abstract/readonly), in source order.
	Modifiers []int

	// AttrGroups holds [open, close] index pairs for each leading attribute
	// group, in source order.
	AttrGroups [][2]int

	// DocblockPos is the index of the docblock immediately preceding the
	// declaration start (before attributes and modifiers), or -1.
	DocblockPos int

	// StartPos is the first token of the declaration site: the first attribute
	// group if present, else the first modifier, else the keyword itself.
	StartPos int
}

// HasModifier returns true if the declaration carries the given modifier.
func (d Declaration) HasModifier(seq Sequence, word string) bool {
	for _, p := range d.Modifiers {
		if p >= 0 && p < len(seq) && equalFold(seq[p].Text, word) {
			return true
		}
	}
	return false
}

// declKindFor maps a keyword text to a declaration kind.
func declKindFor(text string) (DeclKind, bool) {
	switch {
	case equalFold(text, "class"):
		return DeclClass, true
	case equalFold(text, "interface"):
		return DeclInterface, true
	case equalFold(text, "trait"):
		return DeclTrait, true
	case equalFold(text, "enum"):
		return DeclEnum, true
	default:
		return 0, false
	}
}

// DeclarationAt builds the Declaration view for the declaration keyword at pos.
// Returns (zero, false) when pos is not a named declaration keyword: anonymous
// classes, `::class` constants, and `use` imports all yield false.
func DeclarationAt(seq Sequence, pos int) (Declaration, bool) {
	if pos < 0 || pos >= len(seq) || seq[pos].Kind != TokKeyword {
		return Declaration{}, false
	}
	kind, ok := declKindFor(seq[pos].Text)
	if !ok {
		return Declaration{}, false
	}

	// `Foo::class` — the class keyword after '::' is a constant, not a declaration.
	if p := PrevMeaningful(seq, pos); p >= 0 && seq[p].Kind == TokOperator && seq[p].Text == "::" {
		return Declaration{}, false
	}

	// Anonymous declarations have no identifier after the keyword and are
	// skipped entirely: no rule rewrites anonymous classes.
	namePos := NextMeaningful(seq, pos)
	if namePos < 0 || seq[namePos].Kind != TokIdent {
		return Declaration{}, false
	}

	d := Declaration{
		Kind:        kind,
		KeywordPos:  pos,
		NamePos:     namePos,
		DocblockPos: -1,
	}

	// Walk backward over modifiers.
	cursor := pos
	for {
		p := PrevMeaningful(seq, cursor)
		if p < 0 || !IsModifierKeyword(seq[p]) {
			break
		}
		d.Modifiers = append([]int{p}, d.Modifiers...)
		cursor = p
	}

	// Walk backward over attribute groups.
	for {
		p := PrevMeaningful(seq, cursor)
		if p < 0 || seq[p].Kind != TokBracketClose {
			break
		}
		open := FindBlockStart(seq, p)
		if open < 0 || seq[open].Kind != TokAttributeOpen {
			break
		}
		d.AttrGroups = append([][2]int{{open, p}}, d.AttrGroups...)
		cursor = open
	}

	d.StartPos = cursor

	if p := PrevMeaningful(seq, d.StartPos); p >= 0 && seq[p].Kind == TokDocblock {
		d.DocblockPos = p
	}

	return d, true
}

// Declarations returns all named type declarations in the sequence, in source
// order. Anonymous classes are excluded.
func Declarations(seq Sequence) []Declaration {
	var decls []Declaration
	for i := range seq {
		if seq[i].Kind != TokKeyword {
			continue
		}
		if _, ok := declKindFor(seq[i].Text); !ok {
			continue
		}
		if d, ok := DeclarationAt(seq, i); ok {
			decls = append(decls, d)
		}
	}
	return decls
}
