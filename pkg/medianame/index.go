package medianame

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxIndexSpan bounds how many episodes one "season.start-end" segment may
// expand to. Wider segments are treated as malformed and skipped.
const maxIndexSpan = 10000

var seriesIndexSegment = regexp.MustCompile(`^(\d+)\.(\d+)(?:-(\d+))?$`)

// IndexPair is one (season, episode) entry of a series index.
type IndexPair struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// IndexKey orders series indexes. Unparsable indexes sort last.
type IndexKey struct {
	Season  int
	Episode int
}

// LastIndexKey is the key of an index that carries no position.
var LastIndexKey = IndexKey{Season: 9999, Episode: 9999}

// Less reports whether k orders before o.
func (k IndexKey) Less(o IndexKey) bool {
	return k.Compare(o) < 0
}

// Compare returns -1, 0 or 1 ordering by season, then episode.
func (k IndexKey) Compare(o IndexKey) int {
	if c := cmp.Compare(k.Season, o.Season); c != 0 {
		return c
	}
	return cmp.Compare(k.Episode, o.Episode)
}

// FormatSeriesIndexRange renders "2.5" or "2.5-6". A range whose end does not
// exceed its start collapses to the start.
func FormatSeriesIndexRange(season, start, end int) string {
	if end <= start {
		return fmt.Sprintf("%d.%d", season, start)
	}
	return fmt.Sprintf("%d.%d-%d", season, start, end)
}

// ParseSeriesIndexValues expands a comma separated series index into its
// (season, episode) pairs in order. Malformed segments are skipped.
//
//	ParseSeriesIndexValues("1.2-4, 2.1") // (1,2) (1,3) (1,4) (2,1)
func ParseSeriesIndexValues(seriesIndex string) []IndexPair {
	raw := strings.TrimSpace(seriesIndex)
	if raw == "" {
		return nil
	}

	var pairs []IndexPair
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := seriesIndexSegment.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		season, err1 := strconv.Atoi(m[1])
		start, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		end := start
		if m[3] != "" {
			var err error
			if end, err = strconv.Atoi(m[3]); err != nil {
				continue
			}
		}
		if end < start {
			start, end = end, start
		}
		if end-start >= maxIndexSpan {
			continue
		}
		for ep := start; ep <= end; ep++ {
			pairs = append(pairs, IndexPair{Season: season, Episode: ep})
		}
	}
	return pairs
}

// SeriesIndexSortKey orders rows by their series index: the first pair when
// there is one, a bare season number as (n, 0), and LastIndexKey otherwise.
func SeriesIndexSortKey(value string) IndexKey {
	if pairs := ParseSeriesIndexValues(value); len(pairs) > 0 {
		return IndexKey(pairs[0])
	}
	if isDigits(value) {
		if n, err := strconv.Atoi(value); err == nil {
			return IndexKey{Season: n}
		}
	}
	return LastIndexKey
}

// SeriesIndexPrefix returns the season part of a series index: the value
// itself when it is a bare number, or the numeric text before the first dot.
func SeriesIndexPrefix(value string) (string, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", false
	}
	if isDigits(text) {
		return text, true
	}
	if left, _, found := strings.Cut(text, "."); found && isDigits(left) {
		return left, true
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIIDigit(s[i]) {
			return false
		}
	}
	return true
}
