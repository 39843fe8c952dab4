package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/langdetect"
)

// Runner orchestrates multi-file fixing using a fixer.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *fixer.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *fixer.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	pipelineOpts := fixer.PipelineOptionsFromConfig(opts.Config)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts, pipelineOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Collect into a map; workers complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	// Build result in deterministic order.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
	pipelineOpts fixer.PipelineOptions,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processOne(ctx, path, opts.Config, opts, pipelineOpts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processOne runs one file through language detection and the pipeline.
func (r *Runner) processOne(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts Options,
	pipelineOpts fixer.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	if opts.DetectLanguage {
		content, err := os.ReadFile(path)
		if err != nil {
			outcome.Error = fmt.Errorf("read %s: %w", path, err)
			return outcome
		}
		if !langdetect.IsPHP(path, content) {
			logging.FromContext(ctx).Debug("skipping non-PHP file", logging.FieldPath, path)
			outcome.Result = &fixer.PipelineResult{
				Path:       path,
				Skipped:    true,
				SkipReason: "content does not look like PHP",
			}
			return outcome
		}
	}

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, pipelineOpts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	return outcome
}
