package reporter

import (
	"context"

	"github.com/yaklabco/gophpfix/pkg/analysis"
)

// Renderer writes an analysis.Report to some output. Implementations hold
// presentation state only; the numbers come from the analysis package.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
