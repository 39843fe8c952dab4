package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func relPaths(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscoverWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/Model/User.php", "<?php\n")
	writeFile(t, dir, "src/View/page.phtml", "<?php\n")
	writeFile(t, dir, "src/readme.md", "# nope\n")
	writeFile(t, dir, "public/index.php", "<?php\n")

	files, err := Discover(context.Background(), Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"public/index.php",
		"src/Model/User.php",
		"src/View/page.phtml",
	}, relPaths(t, dir, files))
}

func TestDiscoverSkipsVendorAndHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.php", "<?php\n")
	writeFile(t, dir, "vendor/autoload.php", "<?php\n")
	writeFile(t, dir, "node_modules/pkg/index.php", "<?php\n")
	writeFile(t, dir, ".git/hooks/pre-commit.php", "<?php\n")
	writeFile(t, dir, "src/.hidden.php", "<?php\n")

	files, err := Discover(context.Background(), Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"app.php"}, relPaths(t, dir, files))
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/App.php", "<?php\n")
	writeFile(t, dir, "src/legacy/Old.php", "<?php\n")
	writeFile(t, dir, "resources/views/home.blade.php", "<?php\n")

	files, err := Discover(context.Background(), Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"src/legacy/**", "*.blade.php"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/App.php"}, relPaths(t, dir, files))
}

func TestDiscoverIncludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/App.php", "<?php\n")
	writeFile(t, dir, "tests/AppTest.php", "<?php\n")

	files, err := Discover(context.Background(), Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"src/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/App.php"}, relPaths(t, dir, files))
}

func TestDiscoverExplicitFileAndDeduplication(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/App.php", "<?php\n")

	files, err := Discover(context.Background(), Options{
		WorkingDir: dir,
		Paths:      []string{"src/App.php", "src"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/App.php"}, relPaths(t, dir, files))
}

func TestDiscoverMissingPath(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(context.Background(), Options{
		WorkingDir: dir,
		Paths:      []string{"does-not-exist"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestDiscoverCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mod.inc", "<?php\n")
	writeFile(t, dir, "app.php", "<?php\n")

	files, err := Discover(context.Background(), Options{
		WorkingDir: dir,
		Extensions: []string{".inc"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"mod.inc"}, relPaths(t, dir, files))
}

func TestDiscoverCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.php", "<?php\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchesAnyGlob(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"doublestar directory", "vendor/symfony/console/App.php", []string{"vendor/**"}, true},
		{"bare filename pattern", "resources/views/home.blade.php", []string{"*.blade.php"}, true},
		{"no match", "src/App.php", []string{"vendor/**"}, false},
		{"slash pattern does not match basename", "deep/nested/App.php", []string{"src/App.php"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesAnyGlob(tt.path, tt.patterns))
		})
	}
}
