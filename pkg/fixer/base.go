package fixer

import "github.com/yaklabco/gophpfix/pkg/config"

// BaseRule supplies the boilerplate half of the Rule interface. Concrete
// rules embed it, provide Apply, and override the defaults they differ on.
//
// Fields are unexported to avoid stutter and name collisions with interface
// methods. Use NewBaseRule.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }
func (r *BaseRule) CanFix() bool        { return r.fixable }

// DefaultEnabled is true unless the embedding rule overrides it.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity is warning unless the embedding rule overrides it.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Apply is a no-op placeholder; concrete rules shadow it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
