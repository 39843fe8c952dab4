package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds every config file location discovery found. A missing
// file is an empty string, never an error.
type ConfigPaths struct {
	// System is the machine-wide config, /etc/gophpfix on Unix.
	System string

	// User is the XDG user config, ~/.config/gophpfix by default.
	User string

	// Project is the nearest .gophpfix.yml found walking upward.
	Project string

	// Explicit is the --config flag value, filled in by Load.
	Explicit string

	// Legacy is a PHP-CS-Fixer config found next to the project. It is PHP
	// code, so we can only point users at it, not read it.
	Legacy string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectConfigNames in order of preference.
	projectConfigNames = []string{
		".gophpfix.yml",
		".gophpfix.yaml",
		"gophpfix.yml",
		"gophpfix.yaml",
	}

	// legacyConfigNames are the PHP-CS-Fixer config spellings across its
	// major versions.
	legacyConfigNames = []string{
		".php-cs-fixer.php",
		".php-cs-fixer.dist.php",
		".php_cs",
		".php_cs.dist",
	}

	vcsMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user, project, and legacy config files
// relative to workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), "config.yaml", "config.yml"),
		User:    firstExisting(userConfigDir(), "config.yaml", "config.yml"),
		Project: project,
		Legacy:  firstExisting(workDir, legacyConfigNames...),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "gophpfix")
	}
	return "/etc/gophpfix"
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gophpfix")
}

// FindProjectConfig walks upward from startDir looking for a project config
// file. The walk stops without a match at a VCS root, the home directory,
// or the filesystem root, so one project's config never leaks into another.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// A missing home dir just disables the home boundary.
	homeDir, _ := os.UserHomeDir()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if found := firstExisting(dir, projectConfigNames...); found != "" {
			return found, nil
		}

		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstExisting returns the first of names that exists as a regular file
// in dir, or empty when dir is empty or nothing matches.
func firstExisting(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
