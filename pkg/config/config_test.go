package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetVersionIsValid(t *testing.T) {
	tests := []struct {
		version TargetVersion
		want    bool
	}{
		{PHP80, true},
		{PHP81, true},
		{PHP82, true},
		{PHP83, true},
		{PHP84, true},
		{TargetVersion("7.4"), false},
		{TargetVersion("8.5"), false},
		{TargetVersion("8"), false},
		{TargetVersion(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.version), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.version.IsValid())
		})
	}
}

func TestTargetVersionAtLeast(t *testing.T) {
	tests := []struct {
		name  string
		v     TargetVersion
		other TargetVersion
		want  bool
	}{
		{"equal", PHP82, PHP82, true},
		{"newer", PHP84, PHP82, true},
		{"older", PHP80, PHP82, false},
		{"invalid receiver", TargetVersion("bogus"), PHP80, false},
		{"invalid receiver vs invalid other", TargetVersion(""), TargetVersion(""), false},
		{"valid vs invalid other", PHP80, TargetVersion("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.AtLeast(tt.other))
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, PHP82, cfg.PHPVersion)
	assert.Equal(t, string(SeverityWarning), cfg.SeverityDefault)
	assert.NotNil(t, cfg.Rules)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, RuleFormatName, cfg.RuleFormat)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	sev := func(s string) *string { return &s }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "empty php version allowed",
			mutate: func(c *Config) { c.PHPVersion = "" },
		},
		{
			name:    "unsupported php version",
			mutate:  func(c *Config) { c.PHPVersion = "9.0" },
			wantErr: "unsupported php_version",
		},
		{
			name:   "empty default severity allowed",
			mutate: func(c *Config) { c.SeverityDefault = "" },
		},
		{
			name:    "invalid default severity",
			mutate:  func(c *Config) { c.SeverityDefault = "fatal" },
			wantErr: "invalid severity_default",
		},
		{
			name: "invalid rule severity",
			mutate: func(c *Config) {
				c.Rules["PHF001"] = RuleConfig{Severity: sev("notice")}
			},
			wantErr: `rule PHF001: invalid severity "notice"`,
		},
		{
			name: "valid rule severity",
			mutate: func(c *Config) {
				c.Rules["PHF001"] = RuleConfig{Severity: sev("error")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigValidateNil(t *testing.T) {
	var cfg *Config
	assert.NoError(t, cfg.Validate())
}
