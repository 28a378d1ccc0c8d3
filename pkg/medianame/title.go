package medianame

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const separatorCutset = " -._"

var (
	// separatorRun matches runs of dots and underscores used as word separators.
	separatorRun = regexp.MustCompile(`[._]+`)

	// yearParenTail matches "(2005)" and everything after it.
	yearParenTail = regexp.MustCompile(`\s*\(\d{4}\).*$`)

	// seasonDashTail matches "Show - Season 1 ..." folder suffixes.
	seasonDashTail = regexp.MustCompile(`(?i)\s+-\s+season\s+\d+.*$`)

	// trailingYear matches a bare release year at the end of a name.
	trailingYear = regexp.MustCompile(`\s+(?:19|20)\d{2}$`)
)

// CleanSeriesTitle turns a release folder or file stem into a show title.
//
// Years, season markers and everything that follows them are dropped. A
// result that is entirely lowercase is assumed to come from a scene release
// name and gets title casing; anything else keeps the casing it arrived with.
//
//	CleanSeriesTitle("Shrinking.S01.1080p.ATVP.WEB-DL.DDP5.1.H.264-EniaHD") // "Shrinking"
//	CleanSeriesTitle("3.Body.Problem.2024.S01.MULTI.2160p.WEB-DL")           // "3 Body Problem"
func CleanSeriesTitle(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(separatorRun.ReplaceAllString(text, " "))
	text = yearParenTail.ReplaceAllString(text, "")
	if loc := seasonDashTail.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	if cut, ok := spacedSeasonToken(text); ok {
		text = text[:cut]
	}
	text = trailingYear.ReplaceAllString(text, "")

	cleaned := strings.Trim(text, separatorCutset)
	if cleaned != "" && cleaned == lower(cleaned) {
		return NormalizeTitleCase(cleaned)
	}
	return cleaned
}

// spacedSeasonToken finds the first whitespace-preceded season token such as
// " S01" and returns the offset where its whitespace run begins.
func spacedSeasonToken(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		start, _, _, ok := seasonTokenAt(s, i)
		if !ok {
			continue
		}
		run := start
		for run > 0 {
			r, size := utf8.DecodeLastRuneInString(s[:run])
			if !unicode.IsSpace(r) {
				break
			}
			run -= size
		}
		if run < start {
			return run, true
		}
	}
	return 0, false
}

// findSeasonToken returns the number of the first standalone "S01" style
// token. Episode codes like "S01E02" never qualify because the token must end
// at a word boundary.
func findSeasonToken(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if start, _, season, ok := seasonTokenAt(s, i); ok && start == i {
			return season, true
		}
	}
	return 0, false
}

// seasonTokenAt checks for S followed by one or two digits at offset i, with
// word boundaries on both sides.
func seasonTokenAt(s string, i int) (start, end, season int, ok bool) {
	if s[i] != 'S' && s[i] != 's' {
		return 0, 0, 0, false
	}
	if i > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:i]); isWordRune(r) {
			return 0, 0, 0, false
		}
	}
	j := i + 1
	for j < len(s) && j-i <= 2 && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	digits := j - i - 1
	if digits == 0 {
		return 0, 0, 0, false
	}
	if j < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[j:]); isWordRune(r) {
			return 0, 0, 0, false
		}
	}
	season = 0
	for _, c := range s[i+1 : j] {
		season = season*10 + int(c-'0')
	}
	return i, j, season, true
}
