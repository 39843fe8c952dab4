package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"

	// Populates fixer.DefaultRegistry so rule keys normalize and validate.
	_ "github.com/yaklabco/gophpfix/pkg/fixer/rules"
)

// newProjectDir creates a temp dir with a .git marker so the upward config
// search never escapes into the test host's filesystem.
func newProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolatedLoad(t *testing.T, opts LoadOptions) (*LoadResult, error) {
	t.Helper()
	opts.IgnoreSystemConfig = true
	opts.IgnoreUserConfig = true
	opts.NonInteractive = true
	return Load(context.Background(), opts)
}

func TestLoadDefaults(t *testing.T) {
	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: newProjectDir(t),
		IgnoreEnv:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, config.PHP82, result.Config.PHPVersion)
	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := newProjectDir(t)
	path := writeConfigFile(t, dir, ".gophpfix.yml", `
php_version: "8.4"
severity_default: info
ignore:
  - "vendor/**"
rules:
  interface-name-suffix:
    severity: error
`)

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, config.PHP84, result.Config.PHPVersion)
	assert.Equal(t, "info", result.Config.SeverityDefault)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)

	// Rule names normalize to canonical IDs.
	rc, ok := result.Config.Rules["PHF001"]
	require.True(t, ok)
	require.NotNil(t, rc.Severity)
	assert.Equal(t, "error", *rc.Severity)
}

func TestLoadProjectConfigUpwardSearch(t *testing.T) {
	dir := newProjectDir(t)
	path := writeConfigFile(t, dir, ".gophpfix.yml", "php_version: \"8.3\"\n")

	nested := filepath.Join(dir, "src", "Model")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: nested,
		IgnoreEnv:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, config.PHP83, result.Config.PHPVersion)
}

func TestLoadExplicitOverridesProject(t *testing.T) {
	dir := newProjectDir(t)
	writeConfigFile(t, dir, ".gophpfix.yml", "severity_default: info\n")
	explicit := writeConfigFile(t, dir, "ci.yml", "severity_default: error\n")

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: explicit,
		IgnoreEnv:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "error", result.Config.SeverityDefault)
	require.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GOPHPFIX_PHP_VERSION", "8.4")
	t.Setenv("GOPHPFIX_FIX", "true")
	t.Setenv("GOPHPFIX_IGNORE", "vendor/**, dist/**")

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: newProjectDir(t),
	})
	require.NoError(t, err)

	assert.Equal(t, config.PHP84, result.Config.PHPVersion)
	assert.True(t, result.Config.Fix)
	assert.Equal(t, []string{"vendor/**", "dist/**"}, result.Config.Ignore)
}

func TestLoadEnvInvalidBool(t *testing.T) {
	t.Setenv("GOPHPFIX_FIX", "maybe")

	_, err := isolatedLoad(t, LoadOptions{
		WorkingDir: newProjectDir(t),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOPHPFIX_FIX")
}

func TestLoadCLITakesPrecedenceOverEnv(t *testing.T) {
	t.Setenv("GOPHPFIX_PHP_VERSION", "8.3")

	cli := &config.Config{PHPVersion: config.PHP84}

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: newProjectDir(t),
		CLIConfig:  cli,
	})
	require.NoError(t, err)

	assert.Equal(t, config.PHP84, result.Config.PHPVersion)
}

func TestLoadRejectsInvalidVersion(t *testing.T) {
	dir := newProjectDir(t)
	writeConfigFile(t, dir, ".gophpfix.yml", "php_version: \"7.4\"\n")

	_, err := isolatedLoad(t, LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported php_version")
}

func TestLoadRejectsInvalidIgnorePattern(t *testing.T) {
	dir := newProjectDir(t)
	writeConfigFile(t, dir, ".gophpfix.yml", "ignore:\n  - \"[invalid\"\n")

	_, err := isolatedLoad(t, LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")
}

func TestLoadWarnsOnUnknownRule(t *testing.T) {
	dir := newProjectDir(t)
	writeConfigFile(t, dir, ".gophpfix.yml", "rules:\n  PHF999:\n    enabled: true\n")

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], `unknown rule "PHF999"`)
}

func TestLoadWarnsOnDuplicateRuleKeys(t *testing.T) {
	dir := newProjectDir(t)
	writeConfigFile(t, dir, ".gophpfix.yml", `
rules:
  PHF001:
    severity: error
  interface-name-suffix:
    severity: info
`)

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
	assert.Contains(t, result.Warnings[0], "PHF001")
}

func TestLoadWarnsOnLegacyConfigNextToProject(t *testing.T) {
	dir := newProjectDir(t)
	writeConfigFile(t, dir, ".gophpfix.yml", "php_version: \"8.2\"\n")
	writeConfigFile(t, dir, ".php-cs-fixer.php", "<?php\nreturn new PhpCsFixer\\Config();\n")

	result, err := isolatedLoad(t, LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], ".php-cs-fixer.php")
}

func TestDiscoverPathsFindsLegacyConfig(t *testing.T) {
	dir := newProjectDir(t)
	legacy := writeConfigFile(t, dir, ".php_cs.dist", "<?php\n")

	paths, err := DiscoverPaths(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, legacy, paths.Legacy)
	assert.Empty(t, paths.Project)
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	parent := t.TempDir()
	writeConfigFile(t, parent, ".gophpfix.yml", "php_version: \"8.2\"\n")

	// The child directory is its own VCS root, so the search must not see
	// the parent's config.
	child := filepath.Join(parent, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(child, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), child)
	require.NoError(t, err)
	assert.Empty(t, found)
}
