package medianame

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minorWords stay lowercase inside a title.
var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "from": true, "in": true, "nor": true, "of": true,
	"on": true, "or": true, "the": true, "to": true, "vs": true, "via": true,
}

var romanNumeralRegex = regexp.MustCompile(`^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// lower and upper use full Unicode case mapping ("ß" upper-cases to "SS").
// A Caser keeps state between calls, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// NormalizeTitleCase applies title casing to a lowercase or mixed-case title.
//
// Words are split on whitespace and each hyphenated part is cased on its own.
// Roman numerals are upper-cased, acronyms and digit/letter mixes like "6H"
// are kept, minor words are lowercased unless they open or close the title,
// and punctuation around a word is preserved.
func NormalizeTitleCase(text string) string {
	if text == "" {
		return ""
	}

	words := strings.Fields(text)
	last := len(words) - 1
	out := make([]string, len(words))
	for i, word := range words {
		parts := strings.Split(word, "-")
		for j, part := range parts {
			prefix, core, suffix := splitToken(part)
			if core == "" {
				continue
			}
			parts[j] = prefix + normalizeCore(core, i == 0, i == last) + suffix
		}
		out[i] = strings.Join(parts, "-")
	}
	return strings.Join(out, " ")
}

// splitToken separates a token into leading punctuation, a word core and
// trailing punctuation. The core starts with a word character and may contain
// apostrophes. A token that has word characters after its core, or none at
// all, returns an empty core.
func splitToken(raw string) (prefix, core, suffix string) {
	start := strings.IndexFunc(raw, isWordRune)
	if start < 0 {
		return raw, "", ""
	}
	end := start
	for end < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[end:])
		if !isWordRune(r) && r != '\'' {
			break
		}
		end += size
	}
	if strings.IndexFunc(raw[end:], isWordRune) >= 0 {
		return raw, "", ""
	}
	return raw[:start], raw[start:end], raw[end:]
}

func normalizeCore(core string, isFirst, isLast bool) string {
	if isRomanNumeral(core) {
		return upper(core)
	}
	if isAcronym(core) {
		return core
	}
	if hasDigitAndLetter(core) {
		return core
	}
	low := lower(core)
	if !isFirst && !isLast && minorWords[low] && utf8.RuneCountInString(core) > 1 {
		return low
	}
	r, size := utf8.DecodeRuneInString(low)
	return upper(string(r)) + low[size:]
}

func isRomanNumeral(core string) bool {
	up := upper(core)
	if len(up) < 2 {
		return false
	}
	for _, r := range up {
		if !strings.ContainsRune("IVXLCDM", r) {
			return false
		}
	}
	return romanNumeralRegex.MatchString(up)
}

// isAcronym reports an all-letter, all-uppercase token of two or more letters.
func isAcronym(core string) bool {
	if utf8.RuneCountInString(core) < 2 {
		return false
	}
	cased := false
	for _, r := range core {
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func hasDigitAndLetter(core string) bool {
	var digit, letter bool
	for _, r := range core {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLetter(r):
			letter = true
		}
	}
	return digit && letter
}
