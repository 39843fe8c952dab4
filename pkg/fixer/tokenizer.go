package fixer

import (
	"context"

	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// Tokenizer turns PHP content into a FileSnapshot.
//
// The fixer package defines this interface in the consumer package;
// implementations (e.g., parser/phplex) provide the concrete lexing logic.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Tokenizer interface {
	// Tokenize converts raw PHP bytes into a fully-populated FileSnapshot.
	//
	// The returned snapshot must satisfy:
	//   - snapshot.Path == path
	//   - phptok.Validate(snapshot.Tokens, content) == true
	Tokenize(ctx context.Context, path string, content []byte) (*phptok.FileSnapshot, error)
}
