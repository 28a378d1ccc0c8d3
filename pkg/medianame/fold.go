package medianame

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents strips combining marks: "Pokémon" becomes "Pokemon".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// MatchKey reduces a series title to a comparison key for fuzzy matching:
// lowercase, accents removed, "&" spelled out, a leading article dropped,
// punctuation removed and whitespace collapsed.
//
//	MatchKey("The Office (US)")  // "office us"
//	MatchKey("Law & Order: SVU") // "law and order svu"
func MatchKey(title string) string {
	s := FoldAccents(lower(title))
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.NewReplacer("-", " ", ".", " ", "_", " ", "'", "").Replace(s)

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	s = strings.Join(strings.Fields(b.String()), " ")

	for _, art := range []string{"the ", "a ", "an "} {
		if rest, ok := strings.CutPrefix(s, art); ok {
			return rest
		}
	}
	return s
}
