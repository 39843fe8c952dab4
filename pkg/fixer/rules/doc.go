// Package rules provides the built-in fixer rules for gophpfix.
//
// # Rule Domains
//
// This package contains rule implementations across several domains:
//
//   - Naming conventions:
//
//   - PHF001: interface-name-suffix - Interface names end with Interface
//
//   - PHF002: trait-name-suffix - Trait names end with Trait
//
//   - PHF003: abstract-class-name - Abstract class names start with Abstract
//
//   - PHF004: exception-name-suffix - Exception subclasses end with Exception
//
//   - Import hygiene:
//
//   - PHF010: import-fqcn-new - Import fully qualified names in new expressions
//
//   - PHF011: import-fqcn-attribute - Import fully qualified names in attributes
//
//   - PHF012: import-fqcn-static-call - Import fully qualified names in static calls
//
//   - PHF013: import-fqcn-type - Import fully qualified names in type positions
//
//   - Docblock tags:
//
//   - PHF020: docblock-author-tag - Declarations carry an @author tag
//
//   - PHF021: docblock-version-tag - Declarations carry a @version tag
//
//   - PHF022: psalm-immutable-tag - Readonly classes carry @psalm-immutable
//
//   - PHF023: no-duplicate-docblock - Remove docblocks duplicated after attributes
//
//   - Modifier normalization:
//
//   - PHF030: final-readonly-class - Mark eligible classes final readonly
//
//   - PHF031: no-redundant-readonly-property - Strip readonly on properties of readonly classes
//
// # Rule IDs
//
// Rule IDs use the PHF namespace, grouped by domain: PHF001-009 naming,
// PHF010-019 imports, PHF020-029 docblocks, PHF030-039 modifiers.
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - core: Naming, imports, and duplicate docblock cleanup
//   - strict: Core rules as errors plus final readonly normalization
//   - imports: Import hoisting only
//   - docblocks: All docblock tag rules, including author and version
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll. The author
// and version rules take their identity and VCS collaborators from a Deps
// value resolved once per run; the default registry carries empty deps, which
// leaves those two rules as no-ops.
package rules
