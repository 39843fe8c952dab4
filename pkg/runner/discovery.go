package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludes are directories that never contain first-party PHP worth
// fixing.
var defaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
}

// Discover expands opts.Paths into the sorted, deduplicated list of
// absolute PHP file paths the runner should process. Directories are
// walked recursively; explicit files still have to pass the extension and
// glob filters.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, dup := seen[path]; !dup {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(input) {
			abs = filepath.Join(workDir, input)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if matchesFile(abs, workDir, extensions, opts) {
				add(abs)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, abs, workDir, extensions, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	var (
		abs string
		err error
	)
	if workDir == "" {
		abs, err = os.Getwd()
	} else {
		abs, err = filepath.Abs(workDir)
	}
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", workDir, err)
	}
	return abs, nil
}

// walkDirectory collects matching files under root. Hidden entries are
// skipped except when root itself is hidden.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	extensions []string,
	opts Options,
) ([]string, error) {
	var files []string

	walk := func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			// Unreadable subtrees are skipped, not fatal.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			rel = path
		}

		switch {
		case entry.IsDir():
			hidden := path != root && strings.HasPrefix(entry.Name(), ".")
			if hidden || matchesAnyGlob(rel, excludeGlobs(opts)) {
				return filepath.SkipDir
			}
			return nil

		case entry.Type()&fs.ModeSymlink != 0:
			target, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(target)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the symlink TARGET, not the symlink itself, to avoid
				// infinite recursion since WalkDir uses Lstat on the root.
				under, err := walkDirectory(ctx, target, workDir, extensions, opts)
				if err != nil {
					return err
				}
				files = append(files, under...)
				return nil
			}
			// A symlinked file falls through to the regular file checks.
			fallthrough

		default:
			if strings.HasPrefix(entry.Name(), ".") {
				return nil
			}
			if matchesFile(path, workDir, extensions, opts) {
				files = append(files, path)
			}
			return nil
		}
	}

	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

// matchesFile applies the extension filter, then excludes, then includes.
func matchesFile(path, workDir string, extensions []string, opts Options) bool {
	if !hasMatchingExtension(path, extensions) {
		return false
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	if matchesAnyGlob(rel, excludeGlobs(opts)) {
		return false
	}
	return len(opts.IncludeGlobs) == 0 || matchesAnyGlob(rel, opts.IncludeGlobs)
}

// excludeGlobs prepends the built-in excludes to the configured ones.
func excludeGlobs(opts Options) []string {
	if len(opts.ExcludeGlobs) == 0 {
		return defaultExcludes
	}
	return append(slices.Clone(defaultExcludes), opts.ExcludeGlobs...)
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// matchesAnyGlob checks the path against each pattern. Patterns without a
// slash also match against the bare filename, so "*.blade.php" works
// without a "**/" prefix.
func matchesAnyGlob(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, filepath.Base(relPath)); err == nil && ok {
				return true
			}
		}
	}
	return false
}
