// Package phplex provides the reference tokenizer for gophpfix.
// It classifies every byte of a PHP source file into a phptok.Sequence,
// preserving whitespace, comments, and inline HTML so that re-serializing the
// sequence reproduces the input exactly.
package phplex

import (
	"context"
	"fmt"

	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// Lexer tokenizes PHP source files. It is stateless and safe for concurrent
// use: every call operates only on its own inputs.
type Lexer struct{}

// New creates a Lexer.
func New() *Lexer {
	return &Lexer{}
}

// Tokenize converts raw PHP bytes into a fully-populated FileSnapshot.
//
// The returned snapshot satisfies:
//   - snapshot.Path == path
//   - phptok.Validate(snapshot.Tokens, content) == true
func (l *Lexer) Tokenize(ctx context.Context, path string, content []byte) (*phptok.FileSnapshot, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("tokenize: %w", ctx.Err())
	default:
	}

	s := &scanner{src: content}
	tokens := s.run()

	if !phptok.Validate(tokens, content) {
		return nil, fmt.Errorf("tokenize %s: token stream does not cover content", path)
	}

	return phptok.NewFileSnapshot(path, content, tokens), nil
}

// scanner holds the lexing state for one file.
type scanner struct {
	src    []byte
	pos    int
	tokens phptok.Sequence
}

func (s *scanner) run() phptok.Sequence {
	for s.pos < len(s.src) {
		s.scanHTML()
		s.scanPHP()
	}
	return s.tokens
}

func (s *scanner) emit(kind phptok.TokenKind, end int) {
	if end <= s.pos {
		return
	}
	s.tokens = append(s.tokens, phptok.Token{Kind: kind, Text: string(s.src[s.pos:end])})
	s.pos = end
}

// scanHTML consumes inline HTML up to the next PHP open tag.
func (s *scanner) scanHTML() {
	start := s.pos
	for i := s.pos; i < len(s.src); i++ {
		if s.src[i] == '<' && i+1 < len(s.src) && s.src[i+1] == '?' {
			if i > start {
				s.emit(phptok.TokInlineHTML, i)
			}
			end := i + 2
			if hasPrefixFold(s.src[end:], "php") {
				end += 3
			} else if end < len(s.src) && s.src[end] == '=' {
				end++
			}
			s.emit(phptok.TokOpenTag, end)
			return
		}
	}
	s.emit(phptok.TokInlineHTML, len(s.src))
}

// scanPHP consumes PHP tokens until a close tag or end of input.
func (s *scanner) scanPHP() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case isSpace(c):
			i := s.pos
			for i < len(s.src) && isSpace(s.src[i]) {
				i++
			}
			s.emit(phptok.TokWhitespace, i)

		case c == '?' && s.peek(1) == '>':
			s.emit(phptok.TokCloseTag, s.pos+2)
			return

		case c == '/' && s.peek(1) == '/':
			s.emit(phptok.TokLineComment, s.lineEnd())

		case c == '#' && s.peek(1) == '[':
			s.emit(phptok.TokAttributeOpen, s.pos+2)

		case c == '#':
			s.emit(phptok.TokLineComment, s.lineEnd())

		case c == '/' && s.peek(1) == '*':
			end := s.blockCommentEnd()
			kind := phptok.TokBlockComment
			if s.peek(2) == '*' && s.peek(3) != '/' {
				kind = phptok.TokDocblock
			}
			s.emit(kind, end)

		case c == '\'' || c == '"' || c == '`':
			s.emit(phptok.TokString, s.stringEnd(c))

		case c == '<' && s.peek(1) == '<' && s.peek(2) == '<':
			s.emit(phptok.TokString, s.heredocEnd())

		case c == '$' && isIdentStart(s.peek(1)):
			i := s.pos + 1
			for i < len(s.src) && isIdentPart(s.src[i]) {
				i++
			}
			s.emit(phptok.TokVariable, i)

		case c >= '0' && c <= '9', c == '.' && s.peek(1) >= '0' && s.peek(1) <= '9':
			s.emit(phptok.TokNumber, s.numberEnd())

		case isIdentStart(c):
			i := s.pos
			for i < len(s.src) && isIdentPart(s.src[i]) {
				i++
			}
			word := string(s.src[s.pos:i])
			kind := phptok.TokIdent
			if isKeyword(word) {
				kind = phptok.TokKeyword
			}
			s.emit(kind, i)

		case c == '\\':
			s.emit(phptok.TokNsSeparator, s.pos+1)

		case c == '(':
			s.emit(phptok.TokParenOpen, s.pos+1)
		case c == ')':
			s.emit(phptok.TokParenClose, s.pos+1)
		case c == '{':
			s.emit(phptok.TokBraceOpen, s.pos+1)
		case c == '}':
			s.emit(phptok.TokBraceClose, s.pos+1)
		case c == '[':
			s.emit(phptok.TokBracketOpen, s.pos+1)
		case c == ']':
			s.emit(phptok.TokBracketClose, s.pos+1)

		default:
			s.emit(phptok.TokOperator, s.pos+s.operatorLen())
		}
	}
}

func (s *scanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

// lineEnd returns the end of a line comment: up to (excluding) the newline or
// a close tag, whichever comes first.
func (s *scanner) lineEnd() int {
	for i := s.pos; i < len(s.src); i++ {
		if s.src[i] == '\n' {
			return i
		}
		if s.src[i] == '?' && i+1 < len(s.src) && s.src[i+1] == '>' {
			return i
		}
	}
	return len(s.src)
}

func (s *scanner) blockCommentEnd() int {
	for i := s.pos + 2; i+1 < len(s.src); i++ {
		if s.src[i] == '*' && s.src[i+1] == '/' {
			return i + 2
		}
	}
	return len(s.src)
}

// stringEnd scans a quoted string with backslash escapes. Interpolation is not
// split out; the whole literal is one token.
func (s *scanner) stringEnd(quote byte) int {
	for i := s.pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(s.src)
}

// heredocEnd scans a heredoc/nowdoc literal through the line containing the
// terminating label.
func (s *scanner) heredocEnd() int {
	i := s.pos + 3
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	quote := byte(0)
	if i < len(s.src) && (s.src[i] == '\'' || s.src[i] == '"') {
		quote = s.src[i]
		i++
	}
	labelStart := i
	for i < len(s.src) && isIdentPart(s.src[i]) {
		i++
	}
	label := string(s.src[labelStart:i])
	if quote != 0 && i < len(s.src) && s.src[i] == quote {
		i++
	}
	if label == "" {
		return i
	}

	// Find a line whose first non-whitespace run is the label.
	for i < len(s.src) {
		if s.src[i] != '\n' {
			i++
			continue
		}
		j := i + 1
		for j < len(s.src) && (s.src[j] == ' ' || s.src[j] == '\t') {
			j++
		}
		if j+len(label) <= len(s.src) && string(s.src[j:j+len(label)]) == label {
			after := j + len(label)
			if after >= len(s.src) || !isIdentPart(s.src[after]) {
				return after
			}
		}
		i++
	}
	return len(s.src)
}

func (s *scanner) numberEnd() int {
	i := s.pos
	src := s.src
	if src[i] == '0' && i+1 < len(src) && (src[i+1] == 'x' || src[i+1] == 'X' || src[i+1] == 'b' || src[i+1] == 'B' || src[i+1] == 'o' || src[i+1] == 'O') {
		i += 2
		for i < len(src) && (isHexDigit(src[i]) || src[i] == '_') {
			i++
		}
		return i
	}
	for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '_') {
		i++
	}
	if i < len(src) && src[i] == '.' && i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9' {
		i++
		for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '_') {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && src[j] >= '0' && src[j] <= '9' {
			i = j
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
		}
	}
	return i
}

// multiCharOperators is ordered longest-first so greedy matching is correct.
var multiCharOperators = []string{
	"<=>", "===", "!==", "**=", "<<=", ">>=", "...", "??=", "?->",
	"::", "->", "=>", "++", "--", "**", "==", "!=", "<>", "<=", ">=",
	"&&", "||", "??", "+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=",
	"^=", "<<", ">>",
}

// operatorLen returns the byte length of the operator at the current position.
func (s *scanner) operatorLen() int {
	rest := s.src[s.pos:]
	for _, op := range multiCharOperators {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			return len(op)
		}
	}
	return 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hasPrefixFold(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}
