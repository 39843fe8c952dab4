package cli

import "github.com/yaklabco/gophpfix/pkg/runner"

// Process exit codes. The 64+ values follow the BSD sysexits convention.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitFixErrors indicates the run completed but found errors.
	ExitFixErrors = 1

	// ExitFixWarnings indicates the run completed but found warnings (when strict mode).
	ExitFixWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult maps a run's diagnostics to an exit code. Warnings only
// affect the code in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch bySev := result.Stats.DiagnosticsBySeverity; {
	case bySev["error"] > 0:
		return ExitFixErrors
	case strict && bySev["warning"] > 0:
		return ExitFixWarnings
	}
	return ExitSuccess
}
