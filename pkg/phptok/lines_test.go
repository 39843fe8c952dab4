package phptok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []LineInfo
	}{
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
		{
			name:    "single line no newline",
			content: "<?php",
			want:    []LineInfo{{StartOffset: 0, NewlineStart: 5, EndOffset: 5}},
		},
		{
			name:    "two lines unix",
			content: "a\nb\n",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 3, EndOffset: 4},
			},
		},
		{
			name:    "crlf",
			content: "a\r\nb",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildLines([]byte(tt.content)))
		})
	}
}

func TestPositionForOffset(t *testing.T) {
	lines := BuildLines([]byte("<?php\nclass Foo {}\n"))

	pos := PositionForOffset(lines, 6, 11)
	assert.Equal(t, 2, pos.StartLine)
	assert.Equal(t, 1, pos.StartColumn)
	assert.Equal(t, 2, pos.EndLine)
	assert.True(t, pos.IsValid())

	zero := PositionForOffset(lines, -1, 3)
	assert.False(t, zero.IsValid())
}

func TestLineContent(t *testing.T) {
	content := []byte("<?php\nclass Foo {}\n")
	snap := NewFileSnapshot("test.php", content, nil)

	assert.Equal(t, "<?php", string(snap.LineContent(1)))
	assert.Equal(t, "class Foo {}", string(snap.LineContent(2)))
	assert.Nil(t, snap.LineContent(0))
	assert.Nil(t, snap.LineContent(3))
}

func TestPositionAt(t *testing.T) {
	content := []byte("<?php\nclass Foo {}\n")
	seq := Sequence{
		{Kind: TokOpenTag, Text: "<?php"},
		{Kind: TokWhitespace, Text: "\n"},
		{Kind: TokKeyword, Text: "class"},
		{Kind: TokWhitespace, Text: " "},
		{Kind: TokIdent, Text: "Foo"},
		{Kind: TokWhitespace, Text: " "},
		{Kind: TokBraceOpen, Text: "{"},
		{Kind: TokBraceClose, Text: "}"},
		{Kind: TokWhitespace, Text: "\n"},
	}
	require.True(t, Validate(seq, content))

	snap := NewFileSnapshot("test.php", content, seq)

	pos := snap.PositionAt(seq, 4)
	assert.Equal(t, 2, pos.StartLine)
	assert.Equal(t, 7, pos.StartColumn)

	// Positions stay self-consistent after the live sequence diverges from
	// the snapshot content.
	edited := make(Sequence, len(seq))
	copy(edited, seq)
	edited[4] = Token{Kind: TokIdent, Text: "FooInterface"}
	pos = snap.PositionAt(edited, 4)
	assert.Equal(t, 2, pos.StartLine)
	assert.Equal(t, 7, pos.StartColumn)

	assert.False(t, snap.PositionAt(seq, 99).IsValid())
}
