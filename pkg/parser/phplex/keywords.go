package phplex

import "strings"

// keywords is the set of PHP reserved words that lex as keyword tokens.
// Soft-reserved type names (int, string, iterable, …) lex as identifiers;
// the fixers that care about them match on text instead.
var keywords = map[string]struct{}{
	"abstract": {}, "and": {}, "as": {}, "break": {}, "callable": {},
	"case": {}, "catch": {}, "class": {}, "clone": {}, "const": {},
	"continue": {}, "declare": {}, "default": {}, "do": {}, "echo": {},
	"else": {}, "elseif": {}, "empty": {}, "enddeclare": {}, "endfor": {},
	"endforeach": {}, "endif": {}, "endswitch": {}, "endwhile": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "fn": {},
	"for": {}, "foreach": {}, "function": {}, "global": {}, "goto": {},
	"if": {}, "implements": {}, "include": {}, "include_once": {},
	"instanceof": {}, "insteadof": {}, "interface": {}, "isset": {},
	"list": {}, "match": {}, "namespace": {}, "new": {}, "or": {},
	"print": {}, "private": {}, "protected": {}, "public": {},
	"readonly": {}, "require": {}, "require_once": {}, "return": {},
	"static": {}, "switch": {}, "throw": {}, "trait": {}, "try": {},
	"unset": {}, "use": {}, "var": {}, "while": {}, "xor": {}, "yield": {},
}

// isKeyword reports whether word is a PHP keyword (case-insensitive).
func isKeyword(word string) bool {
	_, ok := keywords[strings.ToLower(word)]
	return ok
}
