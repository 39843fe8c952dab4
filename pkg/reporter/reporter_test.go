package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

func plainOptions(buf *bytes.Buffer) Options {
	opts := DefaultOptions()
	opts.Writer = buf
	opts.ErrorWriter = buf
	opts.Color = "never"
	return opts
}

func issueResult() *runner.Result {
	diags := []fixer.Diagnostic{
		{
			RuleID:      "PHF001",
			RuleName:    "interface-name-suffix",
			Severity:    config.SeverityWarning,
			Message:     `interface "Logger" should be named "LoggerInterface"`,
			FilePath:    "src/Logger.php",
			StartLine:   2,
			StartColumn: 11,
			Fixable:     true,
		},
	}
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "src/Logger.php",
				Result: &fixer.PipelineResult{
					FileResult: &fixer.FileResult{Diagnostics: diags},
					Path:       "src/Logger.php",
				},
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:       1,
			FilesProcessed:        1,
			FilesWithIssues:       1,
			DiagnosticsTotal:      1,
			DiagnosticsFixable:    1,
			DiagnosticsBySeverity: map[string]int{"warning": 1},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"diff", FormatDiff, false},
		{"summary", FormatSummary, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIsValid(t *testing.T) {
	assert.True(t, FormatText.IsValid())
	assert.True(t, FormatJSON.IsValid())
	assert.False(t, Format("xml").IsValid())
}

func TestNewDispatchesOnFormat(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		format Format
		want   any
	}{
		{FormatText, &TextReporter{}},
		{FormatJSON, &JSONReporter{}},
		{FormatDiff, &DiffReporter{}},
		{FormatSummary, &renderAdapter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			opts := plainOptions(&buf)
			opts.Format = tt.format

			r, err := New(opts)
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "xml"

	_, err := New(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestJSONReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(plainOptions(&buf))

	issues, err := r.Report(context.Background(), issueResult())
	require.NoError(t, err)
	assert.Equal(t, 1, issues)

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, 1, output.Summary.FilesChecked)
	assert.Equal(t, 1, output.Summary.FilesWithIssues)
	assert.Equal(t, 1, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.BySeverity["warning"])

	require.Len(t, output.Files, 1)
	require.Len(t, output.Files[0].Diagnostics, 1)
	d := output.Files[0].Diagnostics[0]
	assert.Equal(t, "PHF001", d.RuleID)
	assert.Equal(t, "interface-name-suffix", d.RuleName)
	assert.Equal(t, "warning", d.Severity)
	assert.Equal(t, 2, d.StartLine)
	assert.True(t, d.Fixable)
}

func TestJSONReporterFileError(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(plainOptions(&buf))

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "broken.php", Error: errors.New("permission denied")},
		},
	}

	_, err := r.Report(context.Background(), result)
	require.NoError(t, err)

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, 1, output.Summary.FilesErrored)
	require.Len(t, output.Files, 1)
	assert.Equal(t, "permission denied", output.Files[0].Error)
}

func TestJSONReporterCompact(t *testing.T) {
	var buf bytes.Buffer
	opts := plainOptions(&buf)
	opts.Compact = true

	_, err := NewJSONReporter(opts).Report(context.Background(), issueResult())
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestTextReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions(&buf))

	issues, err := r.Report(context.Background(), issueResult())
	require.NoError(t, err)
	assert.Equal(t, 1, issues)

	out := buf.String()
	assert.Contains(t, out, "src/Logger.php")
	assert.Contains(t, out, "interface-name-suffix")
	assert.Contains(t, out, `should be named "LoggerInterface"`)
	assert.Contains(t, out, "1 issue")
}

func TestTextReporterNoFiles(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(plainOptions(&buf))

	issues, err := r.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Equal(t, 0, issues)
	assert.Contains(t, buf.String(), "No files to check.")
}

func TestSummaryReporterTables(t *testing.T) {
	var buf bytes.Buffer
	opts := plainOptions(&buf)
	opts.Format = FormatSummary

	r, err := New(opts)
	require.NoError(t, err)

	issues, err := r.Report(context.Background(), issueResult())
	require.NoError(t, err)
	assert.Equal(t, 1, issues)

	out := buf.String()
	assert.Contains(t, out, "interface-name-suffix")
	assert.Contains(t, out, "src/Logger.php")
}

func TestSummaryReporterNoIssues(t *testing.T) {
	var buf bytes.Buffer
	opts := plainOptions(&buf)
	opts.Format = FormatSummary

	r, err := New(opts)
	require.NoError(t, err)

	_, err = r.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No issues found")
}
