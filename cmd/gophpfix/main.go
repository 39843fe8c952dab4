// Package main is the entry point for the gophpfix CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gophpfix/internal/cli"
	"github.com/yaklabco/gophpfix/internal/logging"

	// Registers the built-in rules via init().
	_ "github.com/yaklabco/gophpfix/pkg/fixer/rules"
)

// Set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := root.Execute()
	if err == nil {
		return 0
	}
	// ErrIssuesFound only signals the exit code; the reporter already
	// printed the issues themselves.
	if !errors.Is(err, cli.ErrIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return 1
}
