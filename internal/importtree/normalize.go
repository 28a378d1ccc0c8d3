package importtree

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeSeriesTitles fills folder rows whose series title is blank or
// generic ("TV Shows") with the most common title among their descendants.
// Titles are counted case-insensitively; ties go to the title seen first in
// tree order, kept in the spelling it was first seen with. The replacement
// is written to the folder only.
func (t *Tree) NormalizeSeriesTitles() {
	for _, root := range t.roots {
		t.normalizeFrom(root)
	}
}

func (t *Tree) normalizeFrom(id RowID) {
	t.normalizeRow(id)
	for _, c := range t.rows[id].Children {
		t.normalizeFrom(c)
	}
}

func (t *Tree) normalizeRow(id RowID) {
	r := t.rows[id]
	if !r.IsFolder {
		return
	}
	if current := strings.TrimSpace(r.SeriesTitle); current != "" && !t.isGeneric(current) {
		return
	}

	fold := cases.Fold()
	counts := make(map[string]int)
	firstSeen := make(map[string]string)
	var order []string
	for _, d := range t.preorder(id) {
		title := strings.TrimSpace(t.rows[d].SeriesTitle)
		if title == "" || t.isGeneric(title) {
			continue
		}
		key := fold.String(title)
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = title
			order = append(order, key)
		}
		counts[key]++
	}
	if len(order) == 0 {
		return
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	r.SeriesTitle = firstSeen[best]
	t.notify(id, FieldSeriesTitle, true)
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
