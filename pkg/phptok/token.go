// Package phptok provides the lexical token representation for gophpfix.
// It defines:
// - Token: a classified span of PHP source text
// - Sequence: the ordered token list for one file, positions are indices
// - FileSnapshot: the complete file representation
// - Anchor scanning helpers used by every fixer
package phptok

//go:generate stringer -type=TokenKind -trimprefix=Tok

// TokenKind classifies the type of a token in the PHP source.
type TokenKind uint16

// Token kinds cover every byte in the source, classifying PHP syntax elements.
const (
	TokWhitespace TokenKind = iota
	TokLineComment             // '// …' or '# …' up to end of line
	TokBlockComment            // '/* … */' (not a docblock)
	TokDocblock                // '/** … */'
	TokKeyword                 // class, interface, trait, enum, final, new, use, …
	TokIdent                   // bare identifier or class-name segment
	TokVariable                // '$name'
	TokNumber                  // integer or float literal
	TokString                  // single/double quoted string literal
	TokNsSeparator             // '\'
	TokAttributeOpen           // '#['
	TokParenOpen               // '('
	TokParenClose              // ')'
	TokBraceOpen               // '{'
	TokBraceClose              // '}'
	TokBracketOpen             // '['
	TokBracketClose            // ']'
	TokOperator                // '::', '->', '=', '|', '&', '?', '=>', …
	TokOpenTag                 // '<?php' or '<?='
	TokCloseTag                // '?>'
	TokInlineHTML              // bytes outside PHP tags
	TokOther
)

// Token represents one classified span of PHP source text.
// A token's position is its index in the Sequence that holds it.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Text is the exact source text of the token.
	Text string
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return len(t.Text)
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return len(t.Text) == 0
}

// IsMeaningful returns true for tokens that carry syntax, i.e. everything
// except whitespace and ordinary (non-doc) comments. Docblocks are meaningful:
// several fixers target them directly.
func (t Token) IsMeaningful() bool {
	switch t.Kind {
	case TokWhitespace, TokLineComment, TokBlockComment:
		return false
	default:
		return true
	}
}

// Sequence is the ordered token list for one file.
// Position = index. Fixers receive a Sequence, scan it, and express rewrites
// against it; applying any edit must yield another contiguous, valid Sequence.
type Sequence []Token

// Render re-serializes the sequence back into source bytes.
// For a sequence produced by a Tokenizer, Render(seq) equals the input content.
func Render(seq Sequence) []byte {
	n := 0
	for _, t := range seq {
		n += len(t.Text)
	}
	out := make([]byte, 0, n)
	for _, t := range seq {
		out = append(out, t.Text...)
	}
	return out
}

// Validate checks that the sequence losslessly covers the given content:
// the concatenation of all token texts must reproduce the content exactly.
func Validate(seq Sequence, content []byte) bool {
	pos := 0
	for _, t := range seq {
		end := pos + len(t.Text)
		if end > len(content) || string(content[pos:end]) != t.Text {
			return false
		}
		pos = end
	}
	return pos == len(content)
}

// Offset returns the byte offset of the token at pos, computed by summing the
// lengths of all preceding tokens. Returns -1 if pos is out of range.
func Offset(seq Sequence, pos int) int {
	if pos < 0 || pos >= len(seq) {
		return -1
	}
	off := 0
	for i := 0; i < pos; i++ {
		off += len(seq[i].Text)
	}
	return off
}

// KeywordIs returns true if the token at pos is the given keyword.
// Keyword comparison is case-insensitive, as in PHP itself.
func KeywordIs(seq Sequence, pos int, word string) bool {
	if pos < 0 || pos >= len(seq) {
		return false
	}
	t := seq[pos]
	return t.Kind == TokKeyword && equalFold(t.Text, word)
}

// equalFold is an ASCII-only case-insensitive comparison.
// PHP keywords are ASCII, so full Unicode folding is not needed here.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
