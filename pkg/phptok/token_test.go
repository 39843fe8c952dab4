package phptok

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderRoundTrip(t *testing.T) {
	seq := Sequence{
		{Kind: TokOpenTag, Text: "<?php"},
		{Kind: TokWhitespace, Text: "\n"},
		{Kind: TokKeyword, Text: "class"},
		{Kind: TokWhitespace, Text: " "},
		{Kind: TokIdent, Text: "Order"},
		{Kind: TokWhitespace, Text: " "},
		{Kind: TokBraceOpen, Text: "{"},
		{Kind: TokBraceClose, Text: "}"},
	}

	rendered := Render(seq)
	assert.Equal(t, "<?php\nclass Order {}", string(rendered))
	assert.True(t, Validate(seq, rendered))
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, Render(nil))
	assert.Empty(t, Render(Sequence{}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		seq     Sequence
		content string
		want    bool
	}{
		{
			name:    "exact coverage",
			seq:     Sequence{{Kind: TokOpenTag, Text: "<?php"}, {Kind: TokWhitespace, Text: " "}},
			content: "<?php ",
			want:    true,
		},
		{
			name:    "missing bytes",
			seq:     Sequence{{Kind: TokOpenTag, Text: "<?php"}},
			content: "<?php echo 1;",
			want:    false,
		},
		{
			name:    "extra bytes",
			seq:     Sequence{{Kind: TokOpenTag, Text: "<?php"}, {Kind: TokIdent, Text: "x"}},
			content: "<?php",
			want:    false,
		},
		{
			name:    "text mismatch",
			seq:     Sequence{{Kind: TokIdent, Text: "foo"}},
			content: "bar",
			want:    false,
		},
		{
			name:    "both empty",
			seq:     nil,
			content: "",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.seq, []byte(tt.content)))
		})
	}
}

func TestOffset(t *testing.T) {
	seq := Sequence{
		{Kind: TokOpenTag, Text: "<?php"},
		{Kind: TokWhitespace, Text: "\n\n"},
		{Kind: TokIdent, Text: "x"},
	}

	assert.Equal(t, 0, Offset(seq, 0))
	assert.Equal(t, 5, Offset(seq, 1))
	assert.Equal(t, 7, Offset(seq, 2))
	assert.Equal(t, -1, Offset(seq, 3))
	assert.Equal(t, -1, Offset(seq, -1))
}

func TestKeywordIs(t *testing.T) {
	seq := Sequence{
		{Kind: TokKeyword, Text: "Class"},
		{Kind: TokIdent, Text: "class"},
	}

	assert.True(t, KeywordIs(seq, 0, "class"))
	assert.True(t, KeywordIs(seq, 0, "CLASS"))
	assert.False(t, KeywordIs(seq, 1, "class"), "identifier token never matches keyword")
	assert.False(t, KeywordIs(seq, 5, "class"))
}

func TestIsMeaningful(t *testing.T) {
	assert.False(t, Token{Kind: TokWhitespace, Text: " "}.IsMeaningful())
	assert.False(t, Token{Kind: TokLineComment, Text: "// x"}.IsMeaningful())
	assert.False(t, Token{Kind: TokBlockComment, Text: "/* x */"}.IsMeaningful())
	assert.True(t, Token{Kind: TokDocblock, Text: "/** x */"}.IsMeaningful())
	assert.True(t, Token{Kind: TokKeyword, Text: "class"}.IsMeaningful())
}
