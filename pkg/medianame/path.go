package medianame

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	seasonRangeWords = regexp.MustCompile(`\bseason\s+\d+\s*-\s*\d+\b`)
	seasonRangeCodes = regexp.MustCompile(`(?i)\bS\d{1,2}\s*-\s*S\d{1,2}\b`)
)

// DetectDefaultType guesses Movie or TV from a path: anything under a
// "TV Shows" or "tv" folder, or mentioning a season, is TV.
func DetectDefaultType(path string) MediaType {
	lowered := lower(toSlash(path))
	if strings.Contains(lowered, "tv shows") || strings.Contains(lowered, "/tv/") {
		return TV
	}
	if strings.Contains(lowered, "season") {
		return TV
	}
	return Movie
}

// SeasonNumberFromName reads the season a folder name refers to: "Season 3",
// "season.03", "Show S02 1080p". Names spanning several seasons such as
// "Season 1-3" or "S01-S03" report false.
func SeasonNumberFromName(name string) (int, bool) {
	text := separatorRun.ReplaceAllString(strings.TrimSpace(name), " ")
	lowered := lower(text)
	if seasonRangeWords.MatchString(lowered) || seasonRangeCodes.MatchString(text) {
		return 0, false
	}
	if strings.HasPrefix(lowered, "season") {
		if fields := strings.Fields(lowered); len(fields) >= 2 && isDigits(fields[1]) {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				return n, true
			}
		}
	}
	return findSeasonToken(text)
}

// DefaultShowAndSeries derives the show title and season folder name for a
// file. Inside a season folder the show comes from the folder above it.
func DefaultShowAndSeries(path string) (show, seasonFolder string) {
	dir := dirName(path)
	parent := baseName(dir)
	grandparent := baseName(dirName(dir))
	if _, ok := SeasonNumberFromName(parent); ok {
		show = CleanSeriesTitle(grandparent)
		if show == "" {
			show = grandparent
		}
		if show == "" {
			show = parent
		}
		return show, parent
	}
	show = CleanSeriesTitle(parent)
	if show == "" {
		show = parent
	}
	return show, ""
}

// BaseName returns the last element of a path split on either "/" or "\".
func BaseName(path string) string {
	return baseName(path)
}

// DirName returns everything before the last element of a path, without
// trailing separators.
func DirName(path string) string {
	return dirName(path)
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

func toSlash(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

func baseName(path string) string {
	i := len(path)
	for i > 0 && !isSeparator(path[i-1]) {
		i--
	}
	return path[i:]
}

func dirName(path string) string {
	i := len(path)
	for i > 0 && !isSeparator(path[i-1]) {
		i--
	}
	head := path[:i]
	trimmed := strings.TrimRight(head, `/\`)
	if trimmed == "" {
		return head
	}
	return trimmed
}

// splitExt splits a file name into stem and extension the way leading-dot
// names expect: ".hidden" has no extension.
func splitExt(name string) (stem, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return name, ""
	}
	if strings.Trim(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

func fileStem(path string) string {
	stem, _ := splitExt(baseName(path))
	return stem
}
