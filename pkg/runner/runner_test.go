package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/fixer/rules"
	"github.com/yaklabco/gophpfix/pkg/parser/phplex"
)

func newTestRunner() *Runner {
	reg := fixer.NewRegistry()
	rules.RegisterAll(reg, rules.Deps{})
	return New(fixer.NewPipeline(fixer.NewEngine(phplex.New(), reg)))
}

func TestRunnerFixesFiles(t *testing.T) {
	dir := t.TempDir()
	dirty := writeFile(t, dir, "src/Logger.php", "<?php\ninterface Logger {}\n")
	writeFile(t, dir, "src/Clock.php", "<?php\ninterface ClockInterface {}\n")

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.Backups.Enabled = false

	result, err := newTestRunner().Run(context.Background(), Options{
		WorkingDir: dir,
		Config:     cfg,
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 1, result.Stats.FilesWithIssues)
	assert.Equal(t, 1, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 1, result.Stats.EditsApplied)
	assert.Equal(t, 1, result.Stats.DiagnosticsBySeverity["warning"])
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasFailures())

	content, err := os.ReadFile(dirty)
	require.NoError(t, err)
	assert.Equal(t, "<?php\ninterface LoggerInterface {}\n", string(content))
}

func TestRunnerCheckOnlyLeavesFilesUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Logger.php", "<?php\ninterface Logger {}\n")

	cfg := config.NewConfig()

	result, err := newTestRunner().Run(context.Background(), Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.FilesModified)
	assert.Equal(t, 0, result.Stats.EditsApplied)
	assert.Equal(t, 1, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 1, result.Stats.DiagnosticsFixable)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<?php\ninterface Logger {}\n", string(content))
}

func TestRunnerOutcomesAreOrderedByPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.php", "<?php\n")
	writeFile(t, dir, "a.php", "<?php\n")
	writeFile(t, dir, "c.php", "<?php\n")

	result, err := newTestRunner().Run(context.Background(), Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
		Jobs:       3,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	for i, want := range []string{"a.php", "b.php", "c.php"} {
		assert.Equal(t, want, filepath.Base(result.Files[i].Path))
	}
}

func TestRunnerSkipsNonPHPContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "strict.php", "<?hh // strict\nclass Foo {}\n")

	result, err := newTestRunner().Run(context.Background(), Options{
		WorkingDir:     dir,
		Config:         config.NewConfig(),
		DetectLanguage: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesSkipped)
	require.Len(t, result.Files, 1)
	require.NotNil(t, result.Files[0].Result)
	assert.True(t, result.Files[0].Result.Skipped)
	assert.Equal(t, "content does not look like PHP", result.Files[0].Result.SkipReason)
}

func TestRunnerEmptyDirectory(t *testing.T) {
	result, err := newTestRunner().Run(context.Background(), Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
}

func TestRunnerCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.php", "<?php\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner().Run(ctx, Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
