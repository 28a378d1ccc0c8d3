// Package medianame infers library metadata from release filenames and folder names.
//
// Every function in this package is total: unparsable input yields a zero
// value, an empty string or a "sort last" key, never an error. Filenames are
// free text and callers surface a failed parse as an editable blank field.
package medianame

// MediaType is the top-level library bucket an item belongs to.
type MediaType string

const (
	Movie MediaType = "Movie"
	TV    MediaType = "TV"
)

func (m MediaType) String() string {
	return string(m)
}

// ParseMediaType accepts "movie" or "tv" in any case.
func ParseMediaType(s string) (MediaType, bool) {
	switch lower(s) {
	case "movie":
		return Movie, true
	case "tv":
		return TV, true
	default:
		return "", false
	}
}

// Episode is the result of parsing an episode filename.
type Episode struct {
	SeriesTitle  string // empty when no show name precedes the code
	EpisodeCode  string // SxxEyy or SxxEyy-Eyy
	Season       int
	StartEpisode int
	EndEpisode   int
	SeriesIndex  string // season.start or season.start-end
	EpisodeTitle string
}

// IsRange reports whether the episode spans more than one episode number.
func (e Episode) IsRange() bool {
	return e.EndEpisode > e.StartEpisode
}
