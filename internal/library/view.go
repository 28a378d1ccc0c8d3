package library

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vmunix/whatch/pkg/medianame"
)

// UnknownShow groups TV items that carry no series title.
const UnknownShow = "Unknown Show"

// Status is the watch state of a group of items.
type Status string

const (
	StatusNone     Status = ""
	StatusWatching Status = "watching"
	StatusWatched  Status = "watched"
)

// Node is one entry of the library view: a leaf holding an item, or a group.
type Node struct {
	Title    string  `json:"title"`
	Item     *Item   `json:"item,omitempty"`
	Children []*Node `json:"children,omitempty"`
	// Note summarizes placeholder air times on show nodes.
	Note string `json:"note,omitempty"`
}

// View is the two-rooted browsing tree over the library.
type View struct {
	Movies *Node `json:"movies"`
	TV     *Node `json:"tv"`
}

// IsLeaf reports whether n holds an item.
func (n *Node) IsLeaf() bool { return n.Item != nil }

// Counts returns the number of watched leaves and the total number of leaves
// under n.
func (n *Node) Counts() (watched, total int) {
	if n.IsLeaf() {
		if n.Item.Watched {
			return 1, 1
		}
		return 0, 1
	}
	for _, c := range n.Children {
		w, t := c.Counts()
		watched += w
		total += t
	}
	return watched, total
}

// Status derives the group status from the leaves under n.
func (n *Node) Status() Status {
	watched, total := n.Counts()
	switch {
	case total > 0 && watched == total:
		return StatusWatched
	case watched > 0:
		return StatusWatching
	default:
		return StatusNone
	}
}

// Leaves returns the items under n in view order.
func (n *Node) Leaves() []*Item {
	if n.IsLeaf() {
		return []*Item{n.Item}
	}
	var out []*Item
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// NextUnwatched returns the unwatched file paths under n in resume order:
// by series index, then display title. Placeholders are skipped.
func (n *Node) NextUnwatched() []string {
	leaves := lo.Filter(n.Leaves(), func(it *Item, _ int) bool {
		return !it.IsPlaceholder && !it.Watched
	})
	slices.SortStableFunc(leaves, func(a, b *Item) int {
		return cmp.Or(
			resumeKey(a).Compare(resumeKey(b)),
			strings.Compare(strings.ToLower(a.DisplayTitle), strings.ToLower(b.DisplayTitle)),
		)
	})
	return lo.Map(leaves, func(it *Item, _ int) string { return it.Path })
}

func resumeKey(it *Item) medianame.IndexKey {
	if it.SeriesIndex == "" {
		return medianame.IndexKey{}
	}
	return medianame.SeriesIndexSortKey(it.SeriesIndex)
}

// TitleSortKey orders titles case- and accent-insensitively, ignoring one
// leading "the ", "el " or "la ".
func TitleSortKey(title string) string {
	key := strings.ToLower(medianame.FoldAccents(strings.TrimSpace(title)))
	for _, prefix := range []string{"the ", "el ", "la "} {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			return rest
		}
	}
	return key
}

func compareTitles(a, b string) int {
	return cmp.Or(cmp.Compare(TitleSortKey(a), TitleSortKey(b)), cmp.Compare(a, b))
}

func compareIndex(a, b *Item) int {
	return medianame.SeriesIndexSortKey(a.SeriesIndex).Compare(medianame.SeriesIndexSortKey(b.SeriesIndex))
}

func leaf(it *Item) *Node {
	return &Node{Title: it.DisplayTitle, Item: it}
}

func episodeNodes(items []*Item) []*Node {
	items = slices.Clone(items)
	slices.SortStableFunc(items, compareIndex)
	return lo.Map(items, func(it *Item, _ int) *Node { return leaf(it) })
}

// BuildView groups items into the Movies and TV Shows trees.
//
// Movies holds standalone movies and one group per movie series, ordered by
// title; a series lists its items by series index. TV Shows holds one group
// per show, ordered by title. A show with more than one season gets a
// "Season N" level; a single-season show lists its episodes directly.
// now dates the air-time notes on show nodes.
func BuildView(items []*Item, now time.Time) View {
	return View{
		Movies: buildMovies(lo.Filter(items, func(it *Item, _ int) bool { return it.MediaType == medianame.Movie })),
		TV:     buildShows(lo.Filter(items, func(it *Item, _ int) bool { return it.MediaType == medianame.TV }), now),
	}
}

func buildMovies(movies []*Item) *Node {
	root := &Node{Title: "Movies"}
	series := lo.GroupBy(lo.Filter(movies, func(it *Item, _ int) bool { return it.InSeries() }),
		func(it *Item) string { return it.SeriesTitle })

	for _, it := range movies {
		if !it.InSeries() {
			root.Children = append(root.Children, leaf(it))
		}
	}
	for title, group := range series {
		root.Children = append(root.Children, &Node{Title: title, Children: episodeNodes(group)})
	}
	slices.SortStableFunc(root.Children, func(a, b *Node) int { return compareTitles(a.Title, b.Title) })
	return root
}

func buildShows(episodes []*Item, now time.Time) *Node {
	root := &Node{Title: "TV Shows"}
	notes := ShowAirNotes(episodes, now)
	shows := lo.GroupBy(episodes, showTitle)

	titles := lo.Keys(shows)
	slices.SortFunc(titles, compareTitles)
	for _, title := range titles {
		show := &Node{Title: title, Note: notes[title]}
		seasons := lo.GroupBy(shows[title], seasonKey)
		keys := lo.Keys(seasons)
		slices.SortFunc(keys, func(a, b string) int {
			return cmp.Or(medianame.SeriesIndexSortKey(a).Compare(medianame.SeriesIndexSortKey(b)), cmp.Compare(a, b))
		})
		if len(keys) == 1 {
			show.Children = episodeNodes(seasons[keys[0]])
		} else {
			for _, key := range keys {
				show.Children = append(show.Children, &Node{
					Title:    "Season " + key,
					Children: episodeNodes(seasons[key]),
				})
			}
		}
		root.Children = append(root.Children, show)
	}
	return root
}

func showTitle(it *Item) string {
	if it.SeriesTitle == "" {
		return UnknownShow
	}
	return it.SeriesTitle
}

// seasonKey is the season of an item's first index pair, or "1".
func seasonKey(it *Item) string {
	pairs := medianame.ParseSeriesIndexValues(it.SeriesIndex)
	if len(pairs) == 0 {
		return "1"
	}
	return strconv.Itoa(pairs[0].Season)
}

type seriesKey struct {
	mediaType medianame.MediaType
	title     string
}

// FilterWatching keeps only the items of series that are partly watched:
// at least one item watched and at least one not.
func FilterWatching(items []*Item) []*Item {
	counts := map[seriesKey][2]int{}
	for _, it := range items {
		if !it.InSeries() {
			continue
		}
		key := seriesKey{it.MediaType, it.SeriesTitle}
		c := counts[key]
		c[1]++
		if it.Watched {
			c[0]++
		}
		counts[key] = c
	}
	return lo.Filter(items, func(it *Item, _ int) bool {
		if !it.InSeries() {
			return false
		}
		c := counts[seriesKey{it.MediaType, it.SeriesTitle}]
		return c[0] > 0 && c[0] < c[1]
	})
}

// ShowAirNotes summarizes placeholder air times per show. A show with past
// airings reports up to its three latest ("Last aired ..."); otherwise the
// next upcoming one ("Next airs ...").
func ShowAirNotes(episodes []*Item, now time.Time) map[string]string {
	byShow := map[string][]time.Time{}
	for _, it := range episodes {
		if !it.IsPlaceholder {
			continue
		}
		at, ok := it.AirTime()
		if !ok {
			continue
		}
		byShow[showTitle(it)] = append(byShow[showTitle(it)], at)
	}

	notes := make(map[string]string, len(byShow))
	for show, times := range byShow {
		slices.SortFunc(times, time.Time.Compare)
		past := lo.Filter(times, func(t time.Time, _ int) bool { return !t.After(now) })
		if len(past) > 0 {
			notes[show] = "Last aired " + formatLastAired(past[max(0, len(past)-3):])
			continue
		}
		notes[show] = "Next airs " + times[0].Format("02-Jan-2006 15:04")
	}
	return notes
}

// formatLastAired joins one to three dates, dropping the year from a date
// that shares it with the next one.
func formatLastAired(dates []time.Time) string {
	text := make([]string, len(dates))
	for i, d := range dates {
		if i < len(dates)-1 && d.Year() == dates[i+1].Year() {
			text[i] = d.Format("02-Jan")
		} else {
			text[i] = d.Format("02-Jan-2006")
		}
	}
	switch len(text) {
	case 1:
		return text[0]
	case 2:
		return fmt.Sprintf("%s & %s", text[0], text[1])
	default:
		return fmt.Sprintf("%s, %s, & %s", text[0], text[1], text[2])
	}
}
