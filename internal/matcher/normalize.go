package matcher

import "strings"

// Normalize collapses every whitespace run to a single space, trims the
// ends and lower-cases the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeKey is Normalize plus removal of one trailing period. It is
// applied to reference descriptions before they become mapping keys.
func NormalizeKey(s string) string {
	return strings.TrimSuffix(Normalize(s), ".")
}
