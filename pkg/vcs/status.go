package vcs

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
)

// Status is the tri-state answer to "has this file changed in the working
// tree?". Rules that bump @version tags act only on StatusChanged; Unknown
// means the question could not be answered and the rule must not rewrite.
type Status uint8

const (
	// StatusUnknown means the working-tree state could not be determined
	// (no repository, no git binary, or the query failed).
	StatusUnknown Status = iota

	// StatusClean means the file has no uncommitted changes.
	StatusClean

	// StatusChanged means the file has uncommitted changes.
	StatusChanged
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// StatusQuerier answers working-tree status questions for individual files.
type StatusQuerier interface {
	// FileStatus reports whether the file at path has uncommitted changes.
	FileStatus(ctx context.Context, path string) Status
}

// GitStatus queries `git status --porcelain` for each file. Every failure
// mode collapses to StatusUnknown.
type GitStatus struct{}

// FileStatus implements StatusQuerier.
func (GitStatus) FileStatus(ctx context.Context, path string) Status {
	abs, err := filepath.Abs(path)
	if err != nil {
		return StatusUnknown
	}

	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain", "--", abs)
	cmd.Dir = filepath.Dir(abs)
	out, err := cmd.Output()
	if err != nil {
		return StatusUnknown
	}

	if strings.TrimSpace(string(out)) == "" {
		return StatusClean
	}
	return StatusChanged
}

// StaticStatus is a StatusQuerier returning a fixed status for every file.
// Used in tests.
type StaticStatus Status

// FileStatus returns the fixed status.
func (s StaticStatus) FileStatus(_ context.Context, _ string) Status {
	return Status(s)
}
