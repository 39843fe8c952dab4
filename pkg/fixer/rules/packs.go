package rules

import "github.com/yaklabco/gophpfix/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points for
// .gophpfix.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "core", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// CorePack returns the core pack: naming conventions plus safe structural
// cleanups, without the identity-writing docblock rules.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Essential house style: naming conventions, import hygiene, duplicate docblock cleanup",
		Rules: map[string]config.RuleConfig{
			"PHF001": enabled("warning"), // interface-name-suffix
			"PHF002": enabled("warning"), // trait-name-suffix
			"PHF003": enabled("warning"), // abstract-class-name
			"PHF004": enabled("warning"), // exception-name-suffix
			"PHF010": enabled("warning"), // import-fqcn-new
			"PHF011": enabled("warning"), // import-fqcn-attribute
			"PHF012": enabled("warning"), // import-fqcn-static-call
			"PHF013": enabled("warning"), // import-fqcn-type
			"PHF023": enabled("warning"), // no-duplicate-docblock
		},
	}
}

// StrictPack returns the strict pack: every core rule as an error, plus
// modifier normalization for immutable-by-default classes.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: core rules as errors, plus final readonly class normalization",
		Rules: map[string]config.RuleConfig{
			// Naming (errors).
			"PHF001": enabled("error"), // interface-name-suffix
			"PHF002": enabled("error"), // trait-name-suffix
			"PHF003": enabled("error"), // abstract-class-name
			"PHF004": enabled("error"), // exception-name-suffix

			// Imports (errors).
			"PHF010": enabled("error"), // import-fqcn-new
			"PHF011": enabled("error"), // import-fqcn-attribute
			"PHF012": enabled("error"), // import-fqcn-static-call
			"PHF013": enabled("error"), // import-fqcn-type

			// Docblocks.
			"PHF022": enabled("warning"), // psalm-immutable-tag
			"PHF023": enabled("error"),   // no-duplicate-docblock

			// Modifiers (errors).
			"PHF030": enabled("error"), // final-readonly-class
			"PHF031": enabled("error"), // no-redundant-readonly-property
		},
	}
}

// ImportsPack returns a pack with only the import-hoisting rules, for
// codebases adopting import normalization incrementally.
func ImportsPack() Pack {
	return Pack{
		Name:        "imports",
		Description: "Import hygiene only: hoist fully qualified names into use statements",
		Rules: map[string]config.RuleConfig{
			"PHF010": enabled("warning"), // import-fqcn-new
			"PHF011": enabled("warning"), // import-fqcn-attribute
			"PHF012": enabled("warning"), // import-fqcn-static-call
			"PHF013": enabled("warning"), // import-fqcn-type
		},
	}
}

// DocblocksPack returns a pack enabling the docblock tag rules, including the
// identity-writing author and version rules that are off by default.
func DocblocksPack() Pack {
	return Pack{
		Name:        "docblocks",
		Description: "Docblock tags: author, version, psalm-immutable, duplicate removal",
		Rules: map[string]config.RuleConfig{
			"PHF020": enabled("info"),    // docblock-author-tag
			"PHF021": enabled("info"),    // docblock-version-tag
			"PHF022": enabled("warning"), // psalm-immutable-tag
			"PHF023": enabled("warning"), // no-duplicate-docblock
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		CorePack(),
		StrictPack(),
		ImportsPack(),
		DocblocksPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}
