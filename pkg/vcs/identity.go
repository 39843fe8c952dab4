// Package vcs provides the version-control collaborators used by docblock
// rules: author identity resolution and working-tree status queries. Both are
// fail-soft: a missing git binary or an unreadable repository never aborts a
// run, it only disables the rules that need the answer.
package vcs

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override git config for identity resolution.
const (
	EnvAuthorName  = "GOPHPFIX_AUTHOR_NAME"
	EnvAuthorEmail = "GOPHPFIX_AUTHOR_EMAIL"
)

// gitTimeout bounds every git invocation. Identity and status are best-effort
// lookups; a hung git must not stall the run.
const gitTimeout = 3 * time.Second

// Identity is the author identity injected into @author tags.
type Identity struct {
	Name  string
	Email string
}

// IsComplete returns true when both name and email are known. Author tag
// injection requires a complete identity.
func (id Identity) IsComplete() bool {
	return id.Name != "" && id.Email != ""
}

// Tag renders the identity in @author tag form: "Name <email>".
func (id Identity) Tag() string {
	return id.Name + " <" + id.Email + ">"
}

// IdentityResolver resolves the author identity for the current run.
type IdentityResolver interface {
	Resolve(ctx context.Context) Identity
}

// EnvGitResolver resolves identity from the environment first, then from git
// config. A .env file in the working directory is loaded before reading the
// environment, matching how the rest of the tool picks up configuration.
type EnvGitResolver struct {
	// Dir is the directory git config is queried from. Empty means the
	// process working directory.
	Dir string
}

// Resolve returns the best identity available. Fields that cannot be
// determined stay empty; callers check IsComplete.
func (r EnvGitResolver) Resolve(ctx context.Context) Identity {
	// Best effort: a missing or malformed .env file is not an error.
	_ = godotenv.Load()

	id := Identity{
		Name:  strings.TrimSpace(os.Getenv(EnvAuthorName)),
		Email: strings.TrimSpace(os.Getenv(EnvAuthorEmail)),
	}
	if id.IsComplete() {
		return id
	}

	if id.Name == "" {
		id.Name = r.gitConfig(ctx, "user.name")
	}
	if id.Email == "" {
		id.Email = r.gitConfig(ctx, "user.email")
	}
	return id
}

// gitConfig reads one git config value, returning "" on any failure.
func (r EnvGitResolver) gitConfig(ctx context.Context, key string) string {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "config", "--get", key)
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// StaticIdentity is an IdentityResolver returning a fixed identity.
// Used in tests and when identity is supplied via configuration.
type StaticIdentity Identity

// Resolve returns the fixed identity.
func (s StaticIdentity) Resolve(_ context.Context) Identity {
	return Identity(s)
}
