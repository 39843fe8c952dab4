package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestFinalReadonlyClassRulePromotes(t *testing.T) {
	rule := NewFinalReadonlyClassRule()

	tests := []struct {
		name      string
		input     string
		want      string
		wantDiags int
	}{
		{
			name:      "plain class promoted",
			input:     "<?php\nclass Money {\n    public string $code;\n}\n",
			want:      "<?php\nfinal readonly class Money {\n    public string $code;\n}\n",
			wantDiags: 1,
		},
		{
			name:      "already final gains readonly only",
			input:     "<?php\nfinal class Money {\n}\n",
			want:      "<?php\nfinal readonly class Money {\n}\n",
			wantDiags: 1,
		},
		{
			name:      "extends blocks promotion",
			input:     "<?php\nclass Money extends Value {\n}\n",
			want:      "<?php\nclass Money extends Value {\n}\n",
			wantDiags: 0,
		},
		{
			name:      "abstract class skipped",
			input:     "<?php\nabstract class Money {\n}\n",
			want:      "<?php\nabstract class Money {\n}\n",
			wantDiags: 0,
		},
		{
			name:      "already readonly untouched",
			input:     "<?php\nfinal readonly class Money {\n}\n",
			want:      "<?php\nfinal readonly class Money {\n}\n",
			wantDiags: 0,
		},
		{
			name:      "unbalanced body skipped",
			input:     "<?php\nclass Money {\n",
			want:      "<?php\nclass Money {\n",
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, out := applyRule(t, rule, tt.input)
			assert.Len(t, diags, tt.wantDiags)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFinalReadonlyClassRuleMutationDetection(t *testing.T) {
	rule := NewFinalReadonlyClassRule()

	tests := []struct {
		name     string
		input    string
		promoted bool
	}{
		{
			name: "constructor assignment allowed",
			input: "<?php\nclass C {\n" +
				"    private int $n;\n" +
				"    public function __construct() { $this->n = 1; }\n" +
				"}\n",
			promoted: true,
		},
		{
			name: "setter mutation blocks promotion",
			input: "<?php\nclass C {\n" +
				"    private int $n;\n" +
				"    public function bump() { $this->n += 1; }\n" +
				"}\n",
			promoted: false,
		},
		{
			name: "increment blocks promotion",
			input: "<?php\nclass C {\n" +
				"    private int $n;\n" +
				"    public function bump() { $this->n++; }\n" +
				"}\n",
			promoted: false,
		},
		{
			name: "unset blocks promotion",
			input: "<?php\nclass C {\n" +
				"    private ?int $n;\n" +
				"    public function clear() { unset($this->n); }\n" +
				"}\n",
			promoted: false,
		},
		{
			name: "read access allowed",
			input: "<?php\nclass C {\n" +
				"    private int $n;\n" +
				"    public function get() { return $this->n; }\n" +
				"}\n",
			promoted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, out := applyRule(t, rule, tt.input)
			if tt.promoted {
				require.Len(t, diags, 1)
				assert.Contains(t, out, "final readonly class C")
			} else {
				assert.Empty(t, diags)
				assert.Equal(t, tt.input, out)
			}
		})
	}
}

func TestFinalReadonlyClassRuleRemovesInvalidReadonly(t *testing.T) {
	rule := NewFinalReadonlyClassRule()

	diags, out := applyRule(t, rule, "<?php\nreadonly class Money extends Value {\n}\n")
	require.Len(t, diags, 1)
	assert.Equal(t, config.SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "extends a parent class")
	assert.Equal(t, "<?php\nclass Money extends Value {\n}\n", out)

	diags, out = applyRule(t, rule,
		"<?php\nreadonly class C {\n    private int $n;\n    public function bump() { $this->n = 2; }\n}\n")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "mutates properties outside the constructor")
	assert.Equal(t, "<?php\nclass C {\n    private int $n;\n    public function bump() { $this->n = 2; }\n}\n", out)
}

func TestFinalReadonlyClassRuleAddFinalOption(t *testing.T) {
	rule := NewFinalReadonlyClassRule()
	cfg := &config.RuleConfig{Options: map[string]any{"add_final": false}}

	_, out := applyRuleWithConfig(t, rule, "<?php\nclass Money {\n}\n", cfg)
	assert.Equal(t, "<?php\nreadonly class Money {\n}\n", out)
}

func TestFinalReadonlyClassRuleVersionGate(t *testing.T) {
	var rule fixer.Rule = NewFinalReadonlyClassRule()

	gated, ok := rule.(fixer.VersionGated)
	require.True(t, ok)
	assert.Equal(t, config.PHP82, gated.MinPHPVersion())
}

func TestNoRedundantReadonlyPropertyRule(t *testing.T) {
	rule := NewNoRedundantReadonlyPropertyRule()

	tests := []struct {
		name      string
		input     string
		want      string
		wantDiags int
	}{
		{
			name:      "property readonly stripped",
			input:     "<?php\nreadonly class C {\n    public readonly int $n;\n}\n",
			want:      "<?php\nreadonly class C {\n    public int $n;\n}\n",
			wantDiags: 1,
		},
		{
			name: "promoted parameter readonly stripped",
			input: "<?php\nreadonly class C {\n" +
				"    public function __construct(private readonly int $n) {}\n}\n",
			want:      "<?php\nreadonly class C {\n    public function __construct(private int $n) {}\n}\n",
			wantDiags: 1,
		},
		{
			name:      "non-readonly class untouched",
			input:     "<?php\nclass C {\n    public readonly int $n;\n}\n",
			want:      "<?php\nclass C {\n    public readonly int $n;\n}\n",
			wantDiags: 0,
		},
		{
			name:      "readonly class without redundant modifiers",
			input:     "<?php\nreadonly class C {\n    public int $n;\n}\n",
			want:      "<?php\nreadonly class C {\n    public int $n;\n}\n",
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, out := applyRule(t, rule, tt.input)
			assert.Len(t, diags, tt.wantDiags)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNoRedundantReadonlyPropertyRuleSkipsAnonymousClasses(t *testing.T) {
	rule := NewNoRedundantReadonlyPropertyRule()

	tests := []struct {
		name      string
		input     string
		want      string
		wantDiags int
	}{
		{
			name: "non-readonly anonymous class keeps its property modifier",
			input: "<?php\nreadonly class Outer {\n    public function make(): object {\n" +
				"        return new class {\n            public readonly int $i;\n        };\n    }\n}\n",
			want: "<?php\nreadonly class Outer {\n    public function make(): object {\n" +
				"        return new class {\n            public readonly int $i;\n        };\n    }\n}\n",
			wantDiags: 0,
		},
		{
			name: "anonymous class keeps its class-level readonly",
			input: "<?php\nreadonly class Outer {\n    public function make(): object {\n" +
				"        return new readonly class {\n            public int $i;\n        };\n    }\n}\n",
			want: "<?php\nreadonly class Outer {\n    public function make(): object {\n" +
				"        return new readonly class {\n            public int $i;\n        };\n    }\n}\n",
			wantDiags: 0,
		},
		{
			name: "argument list and extends clause are stepped over",
			input: "<?php\nreadonly class Outer {\n    public function make(int $n): object {\n" +
				"        return new class($n) extends Base {\n            public readonly int $i;\n        };\n    }\n}\n",
			want: "<?php\nreadonly class Outer {\n    public function make(int $n): object {\n" +
				"        return new class($n) extends Base {\n            public readonly int $i;\n        };\n    }\n}\n",
			wantDiags: 0,
		},
		{
			name: "outer property still stripped around an anonymous class",
			input: "<?php\nreadonly class Outer {\n    public readonly int $n;\n" +
				"    public function make(): object {\n        return new class {\n" +
				"            public readonly int $i;\n        };\n    }\n}\n",
			want: "<?php\nreadonly class Outer {\n    public int $n;\n" +
				"    public function make(): object {\n        return new class {\n" +
				"            public readonly int $i;\n        };\n    }\n}\n",
			wantDiags: 1,
		},
		{
			name: "plain instantiation is not mistaken for an anonymous class",
			input: "<?php\nreadonly class Outer {\n    public readonly Clock $clock;\n" +
				"    public function make(): Clock {\n        return new Clock();\n    }\n}\n",
			want: "<?php\nreadonly class Outer {\n    public Clock $clock;\n" +
				"    public function make(): Clock {\n        return new Clock();\n    }\n}\n",
			wantDiags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, out := applyRule(t, rule, tt.input)
			assert.Len(t, diags, tt.wantDiags)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestModifierRulesConvergeTogether(t *testing.T) {
	// PHF030 promotes, then PHF031 strips the now-redundant property
	// modifiers; re-running both must reach a fixed point.
	input := "<?php\nclass C {\n    public readonly int $n;\n}\n"

	promote := NewFinalReadonlyClassRule()
	strip := NewNoRedundantReadonlyPropertyRule()

	src := input
	for range fixer.DefaultMaxFixPasses {
		_, afterPromote := applyRule(t, promote, src)
		_, afterStrip := applyRule(t, strip, afterPromote)
		if afterStrip == src {
			break
		}
		src = afterStrip
	}

	assert.Equal(t, "<?php\nfinal readonly class C {\n    public int $n;\n}\n", src)
}
