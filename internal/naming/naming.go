// Package naming converts free-form experiment labels into code identifiers.
//
// All functions are pure and total: every input string produces an output,
// there is no failure mode.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackIdentifier is returned by SanitizeIdentifier when nothing usable remains.
const FallbackIdentifier = "variable"

// ToSnakeCase replaces every space with an underscore and lower-cases the result.
// Consecutive spaces are not collapsed: "Hello  World" becomes "hello__world".
func ToSnakeCase(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// ToPascalCase converts snake_case, kebab-case and space separated words to PascalCase.
// Input that already looks like multi-word PascalCase is returned unchanged.
func ToPascalCase(s string) string {
	if isPascalCase(s) {
		return s
	}

	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	var b strings.Builder
	for _, word := range words {
		b.WriteString(Capitalize(word))
	}
	return b.String()
}

// isPascalCase reports whether s starts upper-case, has another upper-case rune
// later on, and carries no separators.
func isPascalCase(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	hasInnerUpper := false
	for i, r := range runes {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			return false
		}
		if i > 0 && unicode.IsUpper(r) {
			hasInnerUpper = true
		}
	}
	return hasInnerUpper
}

// Capitalize upper-cases the first rune of word and lower-cases the rest.
func Capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	// Casers are stateful, so a fresh pair is built per call.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	return upper.String(string(runes[:1])) + lower.String(string(runes[1:]))
}

// SanitizeIdentifier turns arbitrary text into a bare lower-case identifier.
// Runes other than letters, numbers and underscores become underscores. A result
// starting with a digit gets a "var_" prefix; an empty result becomes "variable".
func SanitizeIdentifier(s string) string {
	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
	sanitized = strings.ToLower(sanitized)

	if sanitized == "" {
		return FallbackIdentifier
	}
	if first := []rune(sanitized)[0]; unicode.IsDigit(first) {
		sanitized = "var_" + sanitized
	}
	return sanitized
}
