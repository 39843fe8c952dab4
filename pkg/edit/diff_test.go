package edit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDiff(t *testing.T) {
	original := "<?php\nclass Foo {}\n"
	modified := "<?php\nclass FooInterface {}\n"

	d := GenerateDiff("src/Foo.php", []byte(original), []byte(modified))
	require.NotNil(t, d)

	assert.True(t, d.HasChanges())
	assert.Equal(t, "src/Foo.php", d.Path)
	assert.Contains(t, d.Text, "--- a/src/Foo.php")
	assert.Contains(t, d.Text, "+++ b/src/Foo.php")
	assert.Contains(t, d.Text, "-class Foo {}")
	assert.Contains(t, d.Text, "+class FooInterface {}")
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)
}

func TestGenerateDiffIdentical(t *testing.T) {
	content := []byte("<?php\n")
	assert.Nil(t, GenerateDiff("x.php", content, content))
}

func TestGenerateDiffAdditionsOnly(t *testing.T) {
	original := "<?php\n"
	modified := "<?php\nuse App\\Clock;\n"

	d := GenerateDiff("x.php", []byte(original), []byte(modified))
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 0, d.Deletions)
}

func TestDiffGitHeader(t *testing.T) {
	d := GenerateDiff("/abs/path.php", []byte("a\n"), []byte("b\n"))
	require.NotNil(t, d)

	assert.Equal(t, "diff --git a/abs/path.php b/abs/path.php", d.GitHeader())

	full := d.FullString()
	assert.True(t, strings.HasPrefix(full, "diff --git "))
	assert.Contains(t, full, d.Text)
}

func TestDiffNilReceiver(t *testing.T) {
	var d *Diff
	assert.False(t, d.HasChanges())
	assert.Equal(t, "", d.GitHeader())
	assert.Equal(t, "", d.FullString())
}
