// Package library persists confirmed imports and derives the browsing view
// over them.
package library

import (
	"strings"
	"time"

	"github.com/vmunix/whatch/pkg/medianame"
)

// AirTimeLayout is the stored form of a placeholder's air time, local time.
const AirTimeLayout = "2006-01-02 15:04"

// addedAtLayout is the stored form of AddedAt, UTC to the second.
const addedAtLayout = "2006-01-02T15:04:05"

// PlaceholderPrefix starts the synthetic path of every placeholder item.
const PlaceholderPrefix = "__placeholder__::"

// Item is one library record: a video file on disk or a placeholder for an
// episode that has not arrived yet.
type Item struct {
	ID              int64               `json:"id"`
	Path            string              `json:"path"`
	MediaType       medianame.MediaType `json:"media_type"`
	DisplayTitle    string              `json:"display_title"`
	IsSeries        bool                `json:"is_series"`
	SeriesTitle     string              `json:"series_title,omitempty"`
	SeriesIndex     string              `json:"series_index,omitempty"`
	AddedAt         time.Time           `json:"added_at"`
	Watched         bool                `json:"watched"`
	IsPlaceholder   bool                `json:"is_placeholder"`
	AirDateTime     string              `json:"air_datetime,omitempty"`
	CurrentlyAiring bool                `json:"currently_airing"`
}

// AirTime parses AirDateTime in the local zone.
func (it *Item) AirTime() (time.Time, bool) {
	if it.AirDateTime == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(AirTimeLayout, it.AirDateTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// InSeries reports whether the item belongs to a named series.
func (it *Item) InSeries() bool {
	return it.IsSeries && it.SeriesTitle != ""
}

// IsPlaceholderPath reports whether path was minted for a placeholder.
func IsPlaceholderPath(path string) bool {
	return strings.HasPrefix(path, PlaceholderPrefix)
}

// ItemFilter specifies criteria for listing items.
type ItemFilter struct {
	MediaType     *medianame.MediaType
	SeriesTitle   *string
	IsSeries      *bool
	Watched       *bool
	IsPlaceholder *bool
	Limit         int // 0 = no limit
	Offset        int
}
