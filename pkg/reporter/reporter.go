// Package reporter formats fix results for terminals, diffs, and machines.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gophpfix/pkg/analysis"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// Reporter formats and writes fix results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// renderAdapter turns a Renderer into a Reporter by running analysis first.
type renderAdapter struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

var _ Reporter = (*renderAdapter)(nil)

func (a *renderAdapter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.analysisOpts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func adaptRenderer(renderer Renderer, opts Options) *renderAdapter {
	return &renderAdapter{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeDiagnostics: true,
			IncludeByFile:      true,
			IncludeByRule:      true,
			SortBy:             analysis.SortByCount,
			SortDesc:           true,
			RuleFormat:         opts.RuleFormat,
			WorkingDir:         opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the format named in opts. An empty format means
// text output.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch format := opts.Format; format {
	case FormatText, "":
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return adaptRenderer(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
