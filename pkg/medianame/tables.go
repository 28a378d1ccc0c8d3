package medianame

import (
	"regexp"
	"strings"
)

// DefaultLanguageTokens are audio/subtitle tags stripped from the end of an
// episode title ("Amo Il Dolore ITA-ENG" becomes "Amo Il Dolore").
var DefaultLanguageTokens = []string{
	"ita", "eng", "en", "it", "spa", "esp", "fra", "fre", "deu", "ger", "jpn", "kor",
	"rus", "pt", "por", "lat", "multi", "sub", "subs", "dub", "dual", "audio",
}

// DefaultQualityMarkers end the episode title in a loose release name.
var DefaultQualityMarkers = []string{
	"hdr", "dv", "uhd", "720p", "1080p", "2160p", "webrip", "web-dl", "web",
	"bluray", "bdrip", "amzn", "atvp", "nf", "ddp?", "atmos", "aac", "x264",
	"x265", "h264", "h265", "hevc", "proper", "repack", "remux",
}

// Tables holds the token lists the loose episode parser relies on.
// The zero value uses the defaults.
type Tables struct {
	// LanguageTokens are compared case-insensitively.
	LanguageTokens []string
	// QualityMarkers are regular expression fragments matched case-insensitively
	// as whole words.
	QualityMarkers []string
}

// Parser parses episode filenames using a fixed set of tables.
// A Parser is immutable and safe to share.
type Parser struct {
	languages map[string]bool
	quality   *regexp.Regexp
}

var defaultParser = NewParser(Tables{})

// NewParser compiles the given tables. Empty lists fall back to the defaults;
// a quality marker list that fails to compile also falls back.
func NewParser(t Tables) *Parser {
	langs := t.LanguageTokens
	if len(langs) == 0 {
		langs = DefaultLanguageTokens
	}
	p := &Parser{languages: make(map[string]bool, len(langs))}
	for _, tok := range langs {
		if tok = strings.TrimSpace(tok); tok != "" {
			p.languages[lower(tok)] = true
		}
	}

	markers := t.QualityMarkers
	if len(markers) == 0 {
		markers = DefaultQualityMarkers
	}
	re, err := compileQualityMarkers(markers)
	if err != nil {
		re, _ = compileQualityMarkers(DefaultQualityMarkers)
	}
	p.quality = re
	return p
}

func compileQualityMarkers(markers []string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:^|[\s._-])(?:` + strings.Join(markers, "|") + `)\b`)
}

// ValidateQualityMarkers reports the first marker that is not a valid
// regular expression fragment.
func ValidateQualityMarkers(markers []string) error {
	for _, m := range markers {
		if _, err := regexp.Compile(m); err != nil {
			return err
		}
	}
	_, err := compileQualityMarkers(markers)
	return err
}
