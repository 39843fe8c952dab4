package fixer

import (
	"context"
	"fmt"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

// FileResult contains the results of one fix pass over a single file.
type FileResult struct {
	// Snapshot is the pass-start tokenization of the file.
	Snapshot *phptok.FileSnapshot

	// Tokens is the sequence after all enabled rules ran, with each rule's
	// recorded edits applied in registry order.
	Tokens phptok.Sequence

	// Diagnostics contains all issues found.
	Diagnostics []Diagnostic

	// EditsApplied is the number of edit operations applied this pass.
	EditsApplied int

	// RuleErrors contains any errors from rule execution, keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// Modified returns true if any rule rewrote the sequence this pass.
func (fr *FileResult) Modified() bool {
	return fr.EditsApplied > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates tokenizing and rule execution for fixing.
type Engine struct {
	// Tokenizer turns PHP content into FileSnapshots.
	Tokenizer Tokenizer

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given tokenizer and registry.
func NewEngine(tokenizer Tokenizer, registry *Registry) *Engine {
	return &Engine{
		Tokenizer: tokenizer,
		Registry:  registry,
	}
}

// FixFile tokenizes and runs one fix pass over a single file.
//
// Rules run in registry (ID) order against the live sequence: each rule's
// recorded edits are applied before the next rule scans, so later rules
// always see the sequence earlier rules produced. Rules whose auto-fix is
// disabled still run and report, but their scripts are discarded.
func (e *Engine) FixFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	return e.FixPass(ctx, path, content, cfg, 0)
}

// FixPass is FixFile for a numbered pass of the fix loop. SinglePass rules
// run only when pass is 0.
func (e *Engine) FixPass(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	pass int,
) (*FileResult, error) {
	snapshot, err := e.Tokenizer.Tokenize(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("tokenize error: %w", err)
	}

	resolved := ResolveRules(e.Registry, cfg)

	result := &FileResult{
		Snapshot:   snapshot,
		Tokens:     snapshot.Tokens,
		RuleErrors: make(map[string]error),
	}

	for _, rr := range resolved {
		if _, once := rr.Rule.(SinglePass); once && pass > 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("fixing cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, snapshot, result.Tokens, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)

		if rr.AutoFix && !ruleCtx.Script.Empty() {
			result.Tokens = ruleCtx.Script.Apply(result.Tokens)
			result.EditsApplied += ruleCtx.Script.Len()
		}
	}

	return result, nil
}
