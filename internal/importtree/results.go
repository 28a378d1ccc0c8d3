package importtree

import (
	"strings"

	"github.com/vmunix/whatch/pkg/medianame"
)

// Result is a file row ready to become a library item.
type Result struct {
	Path         string              `json:"path"`
	MediaType    medianame.MediaType `json:"media_type"`
	IsSeries     bool                `json:"is_series"`
	SeriesTitle  string              `json:"series_title,omitempty"`
	SeriesIndex  string              `json:"series_index,omitempty"`
	DisplayTitle string              `json:"display_title"`
}

// Results returns the file rows that are not excluded, in tree order.
// Text fields are trimmed and a blank display title falls back to the file
// name.
func (t *Tree) Results() []Result {
	var out []Result
	t.Walk(func(r Row, _ int) bool {
		if r.IsFolder || r.Excluded {
			return true
		}
		display := strings.TrimSpace(r.DisplayTitle)
		if display == "" {
			display = medianame.DefaultDisplayTitle(r.Path)
		}
		out = append(out, Result{
			Path:         r.Path,
			MediaType:    r.MediaType,
			IsSeries:     r.IsSeries,
			SeriesTitle:  strings.TrimSpace(r.SeriesTitle),
			SeriesIndex:  strings.TrimSpace(r.SeriesIndex),
			DisplayTitle: display,
		})
		return true
	})
	return out
}
