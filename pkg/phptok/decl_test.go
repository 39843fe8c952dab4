package phptok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarationAt(t *testing.T) {
	seq := Sequence{
		tok(TokOpenTag, "<?php"),
		tok(TokWhitespace, "\n"),
		tok(TokDocblock, "/** Widget. */"),
		tok(TokWhitespace, "\n"),
		tok(TokAttributeOpen, "#["),
		tok(TokIdent, "Entity"),
		tok(TokBracketClose, "]"),
		tok(TokWhitespace, "\n"),
		tok(TokKeyword, "final"),
		tok(TokWhitespace, " "),
		tok(TokKeyword, "class"),
		tok(TokWhitespace, " "),
		tok(TokIdent, "Widget"),
		tok(TokWhitespace, " "),
		tok(TokBraceOpen, "{"),
		tok(TokBraceClose, "}"),
	}

	d, ok := DeclarationAt(seq, 10)
	require.True(t, ok)
	assert.Equal(t, DeclClass, d.Kind)
	assert.Equal(t, 10, d.KeywordPos)
	assert.Equal(t, 12, d.NamePos)
	assert.Equal(t, []int{8}, d.Modifiers)
	assert.Equal(t, [][2]int{{4, 6}}, d.AttrGroups)
	assert.Equal(t, 2, d.DocblockPos)
	assert.Equal(t, 4, d.StartPos)
	assert.True(t, d.HasModifier(seq, "final"))
	assert.False(t, d.HasModifier(seq, "readonly"))
}

func TestDeclarationAtAnonymousClass(t *testing.T) {
	// new class { } has no name identifier after the keyword.
	seq := Sequence{
		tok(TokKeyword, "new"),
		tok(TokWhitespace, " "),
		tok(TokKeyword, "class"),
		tok(TokWhitespace, " "),
		tok(TokBraceOpen, "{"),
		tok(TokBraceClose, "}"),
	}

	_, ok := DeclarationAt(seq, 2)
	assert.False(t, ok)
}

func TestDeclarationAtClassConstant(t *testing.T) {
	// Foo::class is a constant fetch, not a declaration.
	seq := Sequence{
		tok(TokIdent, "Foo"),
		tok(TokOperator, "::"),
		tok(TokKeyword, "class"),
	}

	_, ok := DeclarationAt(seq, 2)
	assert.False(t, ok)
}

func TestDeclarationAtNonDeclaration(t *testing.T) {
	seq := Sequence{tok(TokIdent, "class")}
	_, ok := DeclarationAt(seq, 0)
	assert.False(t, ok)

	_, ok = DeclarationAt(seq, 5)
	assert.False(t, ok)
}

func TestDeclarations(t *testing.T) {
	seq := Sequence{
		tok(TokOpenTag, "<?php"),
		tok(TokWhitespace, "\n"),
		tok(TokKeyword, "interface"),
		tok(TokWhitespace, " "),
		tok(TokIdent, "Runner"),
		tok(TokWhitespace, " "),
		tok(TokBraceOpen, "{"),
		tok(TokBraceClose, "}"),
		tok(TokWhitespace, "\n"),
		tok(TokKeyword, "trait"),
		tok(TokWhitespace, " "),
		tok(TokIdent, "Loggable"),
		tok(TokWhitespace, " "),
		tok(TokBraceOpen, "{"),
		tok(TokBraceClose, "}"),
	}

	decls := Declarations(seq)
	require.Len(t, decls, 2)
	assert.Equal(t, DeclInterface, decls[0].Kind)
	assert.Equal(t, "Runner", seq[decls[0].NamePos].Text)
	assert.Equal(t, DeclTrait, decls[1].Kind)
	assert.Equal(t, "Loggable", seq[decls[1].NamePos].Text)
}

func TestDeclKindString(t *testing.T) {
	assert.Equal(t, "class", DeclClass.String())
	assert.Equal(t, "interface", DeclInterface.String())
	assert.Equal(t, "trait", DeclTrait.String())
	assert.Equal(t, "enum", DeclEnum.String())
}
