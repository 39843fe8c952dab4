package fixer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/edit"
	"github.com/yaklabco/gophpfix/pkg/fsutil"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// DefaultMaxFixPasses caps the fix loop. Rules are idempotent on their own
// output, or carry the SinglePass marker and sit out later passes, so most
// files converge in one or two passes; the cap guards against rule pairs that
// feed each other.
const DefaultMaxFixPasses = 10

// Sentinel errors so callers can categorize pipeline failures with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTokenizeFailure  = errors.New("tokenize failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult describes what happened to one file. The embedded
// FileResult carries the diagnostics and token stream of the final pass.
type PipelineResult struct {
	*FileResult

	// Path is the processed file.
	Path string

	// OriginalInfo captures the file state at read time, used for the
	// concurrent-modification check before writing.
	OriginalInfo *fsutil.FileInfo

	// Modified reports whether any pass changed the content.
	Modified bool

	// ModifiedContent is the rewritten bytes, nil when nothing changed.
	ModifiedContent []byte

	// Diff is populated in dry-run mode instead of writing.
	Diff *edit.Diff

	// Skipped with SkipReason records files the pipeline refused to touch,
	// e.g. because they changed on disk mid-run.
	Skipped    bool
	SkipReason string

	// BackupCreated reports whether a sidecar backup was made before writing.
	BackupCreated bool

	// Written reports whether the rewritten bytes reached disk.
	Written bool

	// FixPasses counts completed fix iterations.
	FixPasses int

	// TotalEditsApplied sums edits across all passes.
	TotalEditsApplied int
}

// Summary renders a one-word status for log lines.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls the safety behavior around rule execution.
type PipelineOptions struct {
	// Fix applies rewrites; without it the pipeline only reports.
	Fix bool

	// DryRun produces diffs instead of writing files.
	DryRun bool

	// Backup configures sidecar backups.
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes when checking whether the
	// file changed under us. When false only mtime and size are compared.
	StrictRaceDetection bool

	// MaxFixPasses overrides DefaultMaxFixPasses when positive.
	MaxFixPasses int
}

// DefaultPipelineOptions returns check-only defaults with strict race
// detection on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline wraps an Engine with the file-safety protocol: read, fix until
// stable, detect races, back up, write atomically.
type Pipeline struct {
	Engine *Engine
}

func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the whole protocol for one file on disk:
//
//  1. Read and snapshot the original file.
//  2. Fix loop (when opts.Fix): run the engine, render the rewritten
//     tokens, feed them back in, stop when a pass applies nothing.
//  3. Dry-run mode stops here with a diff.
//  4. Refuse to write if the file changed on disk since the read.
//  5. Back up (when enabled) and write atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	raced, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if raced {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent is ProcessFile without the disk I/O, for callers that
// already hold the bytes. The fix loop behaves identically.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := originalContent
	var fileResult *FileResult

	for pass := range maxPasses {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		var fixErr error
		fileResult, fixErr = p.Engine.FixPass(ctx, path, content, cfg, pass)
		if fixErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrTokenizeFailure, fixErr)
		}

		if !opts.Fix || fileResult.EditsApplied == 0 {
			break
		}

		// Render the rewritten sequence; the next pass re-tokenizes it so
		// every rule always scans a sequence a Tokenizer could have produced.
		content = phptok.Render(fileResult.Tokens)
		result.FixPasses++
		result.TotalEditsApplied += fileResult.EditsApplied
		result.Modified = true
	}

	result.FileResult = fileResult
	result.ModifiedContent = content

	if !result.Modified {
		result.ModifiedContent = nil
		return result, nil
	}

	if opts.DryRun {
		result.Diff = edit.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}
	modified, err := check(ctx, info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError maps filesystem errors onto the pipeline sentinels.
func categorizeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err carries one of the pipeline sentinels.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrTokenizeFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig derives backup settings from the user config.
// The --no-backups flag wins over the config file.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig derives pipeline options from the user config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
