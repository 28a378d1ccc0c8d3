package medianame

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// strictEpisodePattern matches "Show (2005) - S01E02 - Title (1080p ...)".
	strictEpisodePattern = regexp.MustCompile(
		`(?i)^(?P<show>.*?)\s*(?:\(\d{4}\))?\s*-\s*(?P<code>S\d{2}E\d{2}(?:-(?:E)?\d{2})?)\s*-\s*` +
			`(?P<title>.*?)(?:\s*\((?:720|1080|2160)p\b.*)?$`)

	episodeCodePattern = regexp.MustCompile(`^S(\d{2})E(\d{2})(?:-(?:E)?(\d{2}))?$`)

	trailingBracketTag = regexp.MustCompile(`\[[^\]]*\]\s*$`)
)

// ExtractEpisode parses an episode filename using the default tables.
// See Parser.ExtractEpisode.
func ExtractEpisode(path string) (Episode, bool) {
	return defaultParser.ExtractEpisode(path)
}

// DefaultEpisodeTitle returns the episode title parsed from path, falling back
// to the code formed from the first pair of seriesIndex and then "S01E01".
func DefaultEpisodeTitle(path, seriesIndex string) string {
	return defaultParser.DefaultEpisodeTitle(path, seriesIndex)
}

// ExtractEpisode parses the file stem of path as an episode release name.
//
// The strict "Show - S01E02 - Title" layout is tried first. Otherwise the
// first standalone SxEy code splits the name into a show part and a tail; the
// tail is cut at the first quality marker and stripped of a trailing [tag] and
// trailing language tokens. Codes with single-digit components are found by
// the loose search but do not parse, so the call reports false for them.
func (p *Parser) ExtractEpisode(path string) (Episode, bool) {
	name := fileStem(path)

	var show, title, code string
	if m := strictEpisodePattern.FindStringSubmatch(name); m != nil {
		show = CleanSeriesTitle(m[strictEpisodePattern.SubexpIndex("show")])
		title = strings.Trim(m[strictEpisodePattern.SubexpIndex("title")], separatorCutset)
		code = m[strictEpisodePattern.SubexpIndex("code")]
	} else {
		start, end, ok := findLooseCode(name)
		if !ok {
			return Episode{}, false
		}
		showRaw := strings.Trim(separatorRun.ReplaceAllString(name[:start], " "), separatorCutset)
		show = CleanSeriesTitle(showRaw)
		code = name[start:end]
		title = p.cleanTail(name[end:])
	}

	season, first, last, ok := ParseEpisodeCode(code)
	if !ok {
		return Episode{}, false
	}
	canonical := FormatEpisodeCode(season, first, last)
	if title == "" {
		title = canonical
	}
	return Episode{
		SeriesTitle:  show,
		EpisodeCode:  canonical,
		Season:       season,
		StartEpisode: first,
		EndEpisode:   last,
		SeriesIndex:  FormatSeriesIndexRange(season, first, last),
		EpisodeTitle: NormalizeTitleCase(title),
	}, true
}

// DefaultEpisodeTitle is DefaultEpisodeTitle using this parser's tables.
func (p *Parser) DefaultEpisodeTitle(path, seriesIndex string) string {
	if ep, ok := p.ExtractEpisode(path); ok && ep.EpisodeTitle != "" {
		return ep.EpisodeTitle
	}
	if code, ok := EpisodeCodeFromSeriesIndex(seriesIndex); ok {
		return code
	}
	return "S01E01"
}

func (p *Parser) cleanTail(tail string) string {
	tail = strings.Trim(tail, separatorCutset)
	if loc := p.quality.FindStringIndex(tail); loc != nil {
		tail = tail[:loc[0]]
	}
	tail = strings.Trim(trailingBracketTag.ReplaceAllString(tail, ""), separatorCutset)
	tail = strings.TrimSpace(separatorRun.ReplaceAllString(tail, " "))
	if tail == "" {
		return ""
	}

	words := strings.Fields(tail)
	for len(words) > 0 && p.isLanguageWord(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// isLanguageWord reports "ITA", "ita-eng" and similar audio tags.
func (p *Parser) isLanguageWord(word string) bool {
	w := strings.Trim(lower(word), "-")
	if p.languages[w] {
		return true
	}
	parts := strings.FieldsFunc(w, func(r rune) bool { return r == '-' })
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if !p.languages[part] {
			return false
		}
	}
	return true
}

// ParseEpisodeCode parses a strict two-digit code such as "S01E02" or
// "s01e02-e03", returning the season and the episode range. A reversed range
// is swapped.
func ParseEpisodeCode(code string) (season, start, end int, ok bool) {
	m := episodeCodePattern.FindStringSubmatch(upper(strings.TrimSpace(code)))
	if m == nil {
		return 0, 0, 0, false
	}
	season, _ = strconv.Atoi(m[1])
	start, _ = strconv.Atoi(m[2])
	end = start
	if m[3] != "" {
		end, _ = strconv.Atoi(m[3])
	}
	if end < start {
		start, end = end, start
	}
	return season, start, end, true
}

// FormatEpisodeCode renders the canonical "S01E02" or "S01E02-E03" code.
func FormatEpisodeCode(season, start, end int) string {
	if end <= start {
		return fmt.Sprintf("S%02dE%02d", season, start)
	}
	return fmt.Sprintf("S%02dE%02d-E%02d", season, start, end)
}

// EpisodeCodeFromSeriesIndex formats the first pair of a series index as a
// single-episode code.
func EpisodeCodeFromSeriesIndex(seriesIndex string) (string, bool) {
	pairs := ParseSeriesIndexValues(seriesIndex)
	if len(pairs) == 0 {
		return "", false
	}
	return FormatEpisodeCode(pairs[0].Season, pairs[0].Episode, pairs[0].Episode), true
}

// findLooseCode locates the first SxEy[-[E]z] code whose S is not glued to a
// preceding letter or digit and which is followed by the end of the name, a
// dot, an underscore, a dash or whitespace. Longer digit runs are preferred.
func findLooseCode(name string) (start, end int, ok bool) {
	for i := 0; i < len(name); i++ {
		if name[i] != 'S' && name[i] != 's' {
			continue
		}
		if i > 0 && isASCIIAlnum(name[i-1]) {
			continue
		}
		if end, ok := looseCodeAt(name, i); ok {
			return i, end, true
		}
	}
	return 0, 0, false
}

func looseCodeAt(name string, i int) (int, bool) {
	for _, s := range digitRuns(name, i+1) {
		if s >= len(name) || (name[s] != 'E' && name[s] != 'e') {
			continue
		}
		for _, e := range digitRuns(name, s+1) {
			for _, r := range rangeEnds(name, e) {
				if looseCodeBoundary(name, r) {
					return r, true
				}
			}
			if looseCodeBoundary(name, e) {
				return e, true
			}
		}
	}
	return 0, false
}

// digitRuns returns the offsets just past one or two digits starting at i,
// longest first.
func digitRuns(name string, i int) []int {
	var ends []int
	if i < len(name) && isASCIIDigit(name[i]) {
		if i+1 < len(name) && isASCIIDigit(name[i+1]) {
			ends = append(ends, i+2)
		}
		ends = append(ends, i+1)
	}
	return ends
}

// rangeEnds returns candidate ends for a "-E03" or "-03" suffix at i.
func rangeEnds(name string, i int) []int {
	if i >= len(name) || name[i] != '-' {
		return nil
	}
	var ends []int
	if i+1 < len(name) && (name[i+1] == 'E' || name[i+1] == 'e') {
		ends = append(ends, digitRuns(name, i+2)...)
	}
	return append(ends, digitRuns(name, i+1)...)
}

func looseCodeBoundary(name string, i int) bool {
	if i >= len(name) {
		return true
	}
	switch name[i] {
	case '.', '_', '-':
		return true
	}
	r, _ := utf8.DecodeRuneInString(name[i:])
	return unicode.IsSpace(r)
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIIAlnum(c byte) bool {
	return isASCIIDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
