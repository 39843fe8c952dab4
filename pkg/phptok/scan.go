package phptok

// Anchor scanning helpers. These are pure functions over a sequence and a
// position; no cursor state is shared between calls. A return value of -1
// always means "not found" and callers must treat it as "do not rewrite this
// occurrence", never as an error.

// NextMeaningful returns the index of the nearest meaningful token strictly
// after pos, or -1 at the sequence boundary.
func NextMeaningful(seq Sequence, pos int) int {
	for i := pos + 1; i < len(seq); i++ {
		if seq[i].IsMeaningful() {
			return i
		}
	}
	return -1
}

// PrevMeaningful returns the index of the nearest meaningful token strictly
// before pos, or -1 at the sequence boundary.
func PrevMeaningful(seq Sequence, pos int) int {
	if pos > len(seq) {
		pos = len(seq)
	}
	for i := pos - 1; i >= 0; i-- {
		if seq[i].IsMeaningful() {
			return i
		}
	}
	return -1
}

// closerFor returns the closing kind matching an opening delimiter kind.
// An attribute group '#[' closes with an ordinary ']'.
func closerFor(kind TokenKind) (TokenKind, bool) {
	switch kind {
	case TokParenOpen:
		return TokParenClose, true
	case TokBraceOpen:
		return TokBraceClose, true
	case TokBracketOpen, TokAttributeOpen:
		return TokBracketClose, true
	default:
		return 0, false
	}
}

// opensSame reports whether kind opens another nesting level of the pair
// identified by open. '[' and '#[' share the ']' closer and nest together.
func opensSame(open, kind TokenKind) bool {
	if open == TokBracketOpen || open == TokAttributeOpen {
		return kind == TokBracketOpen || kind == TokAttributeOpen
	}
	return kind == open
}

// FindBlockEnd returns the index of the closing delimiter matching the opening
// delimiter at openPos, handling nesting. Returns -1 when openPos is not an
// opening delimiter or the block is unbalanced.
func FindBlockEnd(seq Sequence, openPos int) int {
	if openPos < 0 || openPos >= len(seq) {
		return -1
	}
	open := seq[openPos].Kind
	closeKind, ok := closerFor(open)
	if !ok {
		return -1
	}

	depth := 0
	for i := openPos; i < len(seq); i++ {
		switch {
		case opensSame(open, seq[i].Kind):
			depth++
		case seq[i].Kind == closeKind:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// FindBlockStart is the backward counterpart of FindBlockEnd: given the index
// of a closing delimiter, it returns the index of the matching opening
// delimiter, or -1 when unbalanced.
func FindBlockStart(seq Sequence, closePos int) int {
	if closePos < 0 || closePos >= len(seq) {
		return -1
	}
	closeKind := seq[closePos].Kind

	var opens []TokenKind
	switch closeKind {
	case TokParenClose:
		opens = []TokenKind{TokParenOpen}
	case TokBraceClose:
		opens = []TokenKind{TokBraceOpen}
	case TokBracketClose:
		opens = []TokenKind{TokBracketOpen, TokAttributeOpen}
	default:
		return -1
	}

	isOpen := func(k TokenKind) bool {
		for _, o := range opens {
			if k == o {
				return true
			}
		}
		return false
	}

	depth := 0
	for i := closePos; i >= 0; i-- {
		switch {
		case seq[i].Kind == closeKind:
			depth++
		case isOpen(seq[i].Kind):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// IsModifierKeyword returns true for the class-level modifier keywords that can
// precede a declaration keyword: final, abstract, readonly.
func IsModifierKeyword(t Token) bool {
	if t.Kind != TokKeyword {
		return false
	}
	return equalFold(t.Text, "final") || equalFold(t.Text, "abstract") || equalFold(t.Text, "readonly")
}

// FindDeclarationStart walks backward from a declaration keyword across
// contiguous modifier tokens (any order, any subset) and then across zero or
// more immediately preceding attribute groups. It returns the position of the
// first attribute group if present, else the first modifier, else declPos.
func FindDeclarationStart(seq Sequence, declPos int) int {
	start := declPos

	// Modifiers.
	for {
		p := PrevMeaningful(seq, start)
		if p < 0 || !IsModifierKeyword(seq[p]) {
			break
		}
		start = p
	}

	// Attribute groups.
	for {
		p := PrevMeaningful(seq, start)
		if p < 0 || seq[p].Kind != TokBracketClose {
			break
		}
		open := FindBlockStart(seq, p)
		if open < 0 || seq[open].Kind != TokAttributeOpen {
			break
		}
		start = open
	}

	return start
}
