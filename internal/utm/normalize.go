package utm

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// combiningMarks is the Combining Diacritical Marks block left behind by NFD.
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Normalize turns free text into a tracking parameter slug.
//
// The input is lowercased, accents are folded to their base letter, every run
// of characters outside [a-z0-9] becomes a single underscore and leading or
// trailing underscores are dropped. The result is either empty or matches
// ^[a-z0-9]+(_[a-z0-9]+)*$.
//
//	Normalize("Ana López")     // "ana_lopez"
//	Normalize("Black Friday!") // "black_friday"
//	Normalize("ÉXITO")         // "exito"
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		folded = lowered
	}

	slug := nonSlugRun.ReplaceAllString(folded, "_")
	return strings.Trim(slug, "_")
}
