package importtree

import (
	"cmp"
	"slices"
	"strings"

	"github.com/vmunix/whatch/pkg/medianame"
)

// rowKey orders siblings: rows with a series index (their own or, for a
// folder, the smallest among descendants) first, then season folders by
// season, then the rest. Lowercase name breaks ties.
type rowKey struct {
	group   int
	season  int
	episode int
	name    string
}

func (k rowKey) compare(o rowKey) int {
	return cmp.Or(
		cmp.Compare(k.group, o.group),
		cmp.Compare(k.season, o.season),
		cmp.Compare(k.episode, o.episode),
		cmp.Compare(k.name, o.name),
	)
}

// Sort reorders the children of every row. Root order is left alone.
func (t *Tree) Sort() {
	for _, id := range t.roots {
		t.sortChildren(id)
	}
}

func (t *Tree) sortChildren(id RowID) {
	r := t.rows[id]
	for _, c := range r.Children {
		t.sortChildren(c)
	}
	if len(r.Children) <= 1 {
		return
	}
	keys := make(map[RowID]rowKey, len(r.Children))
	for _, c := range r.Children {
		keys[c] = t.sortKey(c)
	}
	slices.SortStableFunc(r.Children, func(a, b RowID) int {
		return keys[a].compare(keys[b])
	})
}

func (t *Tree) sortKey(id RowID) rowKey {
	r := t.rows[id]
	name := strings.ToLower(r.Name)
	if key, ok := t.effectiveIndexKey(id); ok {
		return rowKey{group: 0, season: key.Season, episode: key.Episode, name: name}
	}
	if season, ok := medianame.SeasonNumberFromName(r.Name); ok {
		return rowKey{group: 1, season: season, name: name}
	}
	return rowKey{group: 2, season: 9999, episode: 9999, name: name}
}

// effectiveIndexKey is the first pair of the row's own series index, or the
// smallest effective key among its children.
func (t *Tree) effectiveIndexKey(id RowID) (medianame.IndexKey, bool) {
	r := t.rows[id]
	if pairs := medianame.ParseSeriesIndexValues(r.SeriesIndex); len(pairs) > 0 {
		return medianame.IndexKey(pairs[0]), true
	}
	var best medianame.IndexKey
	found := false
	for _, c := range r.Children {
		key, ok := t.effectiveIndexKey(c)
		if !ok {
			continue
		}
		if !found || key.Less(best) {
			best, found = key, true
		}
	}
	return best, found
}
