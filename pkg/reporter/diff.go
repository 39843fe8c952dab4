package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/edit"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// DiffReporter prints each file's pending rewrite as a git-style unified
// diff, for dry-run mode.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. The returned count is the number of files
// with pending changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var changed, added, removed int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || file.Result.Diff == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		changed++
		added += file.Result.Diff.Additions
		removed += file.Result.Diff.Deletions
		r.writeDiff(file.Result.Diff)
	}

	if changed > 0 && r.opts.ShowSummary {
		r.writeShortStat(changed, added, removed)
	}

	return changed, nil
}

func (r *DiffReporter) writeDiff(diff *edit.Diff) {
	shown := diffDisplayPath(diff.Path)

	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(
		fmt.Sprintf("diff --git a/%s b/%s", shown, shown)))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+shown))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+shown))

	// The diff text carries its own ---/+++ header pair; skip it since we
	// just printed a styled one.
	for _, line := range strings.Split(diff.Text, "\n") {
		if line == "" || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}
		fmt.Fprintln(r.out, r.styleHunkLine(line))
	}

	fmt.Fprintln(r.out)
}

func (r *DiffReporter) styleHunkLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return r.styles.DiffRemove.Render(line)
	default:
		return r.styles.DiffContext.Render(line)
	}
}

// writeShortStat mirrors git's diffstat trailer.
func (r *DiffReporter) writeShortStat(files, additions, deletions int) {
	parts := []string{
		fmt.Sprintf("%d %s changed", files, pluralize(files, "file")),
	}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralize(additions, "insertion"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion"))))
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

// diffDisplayPath prefers a short relative path for the diff headers and
// falls back to the basename when the file sits far outside the working
// directory.
func diffDisplayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}
