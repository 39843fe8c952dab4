package rules

import (
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/vcs"
)

// Deps carries the collaborators injected into rules at construction time.
// Identity is resolved once per run and passed in as a value; rules never
// fetch it lazily from ambient process state.
type Deps struct {
	// Identity is the author identity for docblock tags. An incomplete
	// identity turns the author and version rules into no-ops.
	Identity vcs.Identity

	// Status answers working-tree questions for the version-bump rule.
	// Nil degrades to "treat every file as unchanged".
	Status vcs.StatusQuerier
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *fixer.Registry, deps Deps) {
	// Naming rules
	registry.Register(NewInterfaceNameSuffixRule()) // PHF001
	registry.Register(NewTraitNameSuffixRule())     // PHF002
	registry.Register(NewAbstractClassNameRule())   // PHF003
	registry.Register(NewExceptionNameSuffixRule()) // PHF004

	// Import rules
	registry.Register(NewImportFqcnNewRule())        // PHF010
	registry.Register(NewImportFqcnAttributeRule())  // PHF011
	registry.Register(NewImportFqcnStaticCallRule()) // PHF012
	registry.Register(NewImportFqcnTypeRule())       // PHF013

	// Docblock rules
	registry.Register(NewAuthorTagRule(deps.Identity))               // PHF020
	registry.Register(NewVersionTagRule(deps.Identity, deps.Status)) // PHF021
	registry.Register(NewPsalmImmutableRule())                       // PHF022
	registry.Register(NewNoDuplicateDocblockRule())                  // PHF023

	// Modifier rules
	registry.Register(NewFinalReadonlyClassRule())          // PHF030
	registry.Register(NewNoRedundantReadonlyPropertyRule()) // PHF031
}

// RegisterAliases registers alternate names carried over from the PHP-CS-Fixer
// style rule names these fixers descend from.
func RegisterAliases(registry *fixer.Registry) {
	// PHF010-013: reference-used-classes covers all four import contexts;
	// point the alias at the most common one.
	registry.RegisterAlias("reference-used-classes", "PHF010")

	// PHF030: final-readonly-class also known as readonly-class-promotion.
	registry.RegisterAlias("readonly-class-promotion", "PHF030")
}

// ruleInfoProvider adapts the registry contents for config template
// generation without a config -> fixer import cycle.
func ruleInfoProvider() []config.RuleInfo {
	registry := fixer.NewRegistry()
	RegisterAll(registry, Deps{})

	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     r.DefaultEnabled(),
			Severity:    r.DefaultSeverity(),
			Tags:        r.Tags(),
			CanFix:      r.CanFix(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry. The default
// registry carries empty deps; callers needing author/version injection build
// their own registry with resolved collaborators.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(fixer.DefaultRegistry, Deps{})
	RegisterAliases(fixer.DefaultRegistry)
	config.DefaultRuleInfoProvider = ruleInfoProvider
}
