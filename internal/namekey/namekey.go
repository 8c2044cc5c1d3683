// Package namekey canonicalizes free-text player names into comparable keys.
// Sources disagree on diacritics, case, name order and disambiguating
// suffixes; every join in the pipeline happens on the key produced here.
package namekey

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var parenthetical = regexp.MustCompile(`\(.*?\)`)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

// Normalize canonicalizes a raw name: transliterate to ASCII, lowercase,
// trim, strip parenthetical annotations. Pure and total; unparseable input
// degrades to a stripped, lowered copy of itself. Idempotent.
func Normalize(raw string) string {
	s := unidecode.Unidecode(raw)
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = parenthetical.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// InitialLast collapses a full name to "first-initial. rest" so that a
// full-name source can be compared against an initials-style source.
// Names with fewer than two tokens are returned unchanged.
func InitialLast(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return full
	}
	first := []rune(parts[0])
	return string(first[0]) + ". " + strings.Join(parts[1:], " ")
}

// NormalizeColumn canonicalizes a column header. On top of Normalize it
// folds the distinct apostrophe glyphs upstream files use into one.
func NormalizeColumn(col string) string {
	return apostrophes.Replace(Normalize(col))
}
