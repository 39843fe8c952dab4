// Package edit provides the token edit script used by fixers to express
// batched sequence mutations without corrupting positions referenced by other
// pending operations in the same pass.
package edit

import "github.com/yaklabco/gophpfix/pkg/phptok"

// opKind identifies a script operation.
type opKind uint8

const (
	opReplace opKind = iota
	opInsert
	opDelete
)

// op is a single recorded operation. Positions refer to the sequence snapshot
// the script was built against.
type op struct {
	kind   opKind
	pos    int
	token  phptok.Token   // opReplace
	tokens []phptok.Token // opInsert
}

// Script accumulates insert/replace/delete operations against token positions
// in the pass-start snapshot. Operations are applied together by Apply.
type Script struct {
	ops []op
}

// NewScript creates an empty Script.
func NewScript() *Script {
	return &Script{}
}

// Len returns the number of recorded operations.
func (s *Script) Len() int {
	return len(s.ops)
}

// Empty returns true if no operations have been recorded.
func (s *Script) Empty() bool {
	return len(s.ops) == 0
}

// Replace records replacement of the token at pos.
func (s *Script) Replace(pos int, tok phptok.Token) {
	s.ops = append(s.ops, op{kind: opReplace, pos: pos, token: tok})
}

// ReplaceText records replacement of the token at pos keeping its kind.
func (s *Script) ReplaceText(seq phptok.Sequence, pos int, text string) {
	if pos < 0 || pos >= len(seq) {
		return
	}
	s.Replace(pos, phptok.Token{Kind: seq[pos].Kind, Text: text})
}

// Insert records insertion of tokens immediately before pos. Multiple
// insertions at the same anchor land in submission order. pos may equal the
// sequence length to append at the end.
func (s *Script) Insert(pos int, tokens ...phptok.Token) {
	if len(tokens) == 0 {
		return
	}
	s.ops = append(s.ops, op{kind: opInsert, pos: pos, tokens: tokens})
}

// Delete records removal of the token at pos.
func (s *Script) Delete(pos int) {
	s.ops = append(s.ops, op{kind: opDelete, pos: pos})
}

// DeleteRange records removal of every token in [from, to] inclusive.
func (s *Script) DeleteRange(from, to int) {
	for p := from; p <= to; p++ {
		s.Delete(p)
	}
}

// Apply executes the script against seq and returns the resulting sequence.
// seq must be the same length as the snapshot the positions were computed on.
//
// Operations targeting a position already cleared by an earlier delete in the
// same script are silent no-ops: this preserves idempotence when two rewrite
// steps race for the same token. Out-of-range positions are likewise ignored.
func (s *Script) Apply(seq phptok.Sequence) phptok.Sequence {
	if s.Empty() {
		return seq
	}

	deleted := make(map[int]bool)
	replaced := make(map[int]phptok.Token)
	inserts := make(map[int][]phptok.Token)

	for _, o := range s.ops {
		switch o.kind {
		case opReplace:
			if o.pos < 0 || o.pos >= len(seq) || deleted[o.pos] {
				continue
			}
			replaced[o.pos] = o.token
		case opDelete:
			if o.pos < 0 || o.pos >= len(seq) || deleted[o.pos] {
				continue
			}
			deleted[o.pos] = true
			delete(replaced, o.pos)
		case opInsert:
			if o.pos < 0 || o.pos > len(seq) {
				continue
			}
			inserts[o.pos] = append(inserts[o.pos], o.tokens...)
		}
	}

	out := make(phptok.Sequence, 0, len(seq)+len(inserts))
	for i := 0; i <= len(seq); i++ {
		if ins, ok := inserts[i]; ok {
			out = append(out, ins...)
		}
		if i == len(seq) {
			break
		}
		if deleted[i] {
			continue
		}
		if tok, ok := replaced[i]; ok {
			out = append(out, tok)
			continue
		}
		out = append(out, seq[i])
	}

	return out
}
