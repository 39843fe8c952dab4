// Package runner orchestrates fixing many files: discovery, a worker
// pool over the pipeline, and deterministic result aggregation.
package runner

import "github.com/yaklabco/gophpfix/pkg/config"

// Options configures one run.
type Options struct {
	// Paths are the files or directories the user asked for. Empty means
	// the working directory.
	Paths []string

	// WorkingDir anchors relative Paths and glob matching. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions lists the file extensions treated as PHP, lowercase with
	// the leading dot. Empty means DefaultExtensions().
	Extensions []string

	// IncludeGlobs narrows discovery to matching paths, relative to
	// WorkingDir. Empty includes everything matching Extensions.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories. Config ignore
	// rules and the --ignore flag both land here.
	ExcludeGlobs []string

	// DetectLanguage checks that content looks like PHP before running
	// the pipeline, catching e.g. Hack files with a .php extension.
	DetectLanguage bool

	// FollowSymlinks walks into directory symlinks.
	FollowSymlinks bool

	// Jobs caps the worker pool; zero or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions treated as PHP by default.
func DefaultExtensions() []string {
	return []string{".php", ".phtml"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
