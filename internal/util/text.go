package util

import "strings"

var separatorReplacer = strings.NewReplacer("–", "-", "—", "-", "/", "-")

// NormalizeNeighbourhood corrects known alias spellings and then applies
// CleanNeighbourhood. The result is stable under repeated application.
//
// The alias table is consulted again on the cleaned value so that a dash
// variant of an alias ("Oakdale–Beverley Heights (154)") resolves the same way
// as the alias itself.
func NormalizeNeighbourhood(input string) string {
	if corrected, ok := CorrectAlias(input); ok {
		input = corrected
	}
	s := CleanNeighbourhood(input)
	if corrected, ok := CorrectAlias(s); ok {
		s = CleanNeighbourhood(corrected)
	}
	return s
}

// CleanNeighbourhood is the mechanical part of neighbourhood normalization:
// dashes and slashes become hyphens, "St." is followed by a space, repeated
// spaces collapse and the ends are trimmed.
func CleanNeighbourhood(input string) string {
	s := separatorReplacer.Replace(input)
	s = strings.ReplaceAll(s, "St.", "St. ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}
