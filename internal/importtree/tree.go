// Package importtree models the rows of an import session: one row per
// selected folder, subfolder and video file, with defaults inferred from
// names and folder edits cascading to descendants.
package importtree

import (
	"slices"

	"github.com/vmunix/whatch/pkg/medianame"
)

// RowID addresses a row within its tree.
type RowID int

// NoRow is the parent of a root row.
const NoRow RowID = -1

// Row is one import row. Folder rows carry cascading defaults and never
// become library items.
type Row struct {
	ID       RowID   `json:"id"`
	Parent   RowID   `json:"parent"`
	Children []RowID `json:"children,omitempty"`

	Path     string `json:"path"`
	Name     string `json:"name"`
	IsFolder bool   `json:"is_folder"`

	MediaType    medianame.MediaType `json:"media_type"`
	IsSeries     bool                `json:"is_series"`
	SeriesTitle  string              `json:"series_title,omitempty"`
	SeriesIndex  string              `json:"series_index,omitempty"`
	DisplayTitle string              `json:"display_title,omitempty"`
	Excluded     bool                `json:"excluded"`
}

// Field names an editable row field.
type Field string

const (
	FieldType         Field = "type"
	FieldSeriesCheck  Field = "series_check"
	FieldSeriesTitle  Field = "series_title"
	FieldSeriesIndex  Field = "series_index"
	FieldExclude      Field = "exclude"
	FieldDisplayTitle Field = "display_title"
)

// Fields lists every editable field.
var Fields = []Field{
	FieldType, FieldSeriesCheck, FieldSeriesTitle, FieldSeriesIndex, FieldExclude, FieldDisplayTitle,
}

// Change describes one field write. Programmatic is set for writes made by
// a cascade, title normalization or a bulk apply rather than a direct edit.
type Change struct {
	Row          RowID
	Field        Field
	Programmatic bool
}

// Observer is notified after every field write.
type Observer func(Change)

// Tree is an arena of import rows.
type Tree struct {
	rows      []*Row
	roots     []RowID
	byPath    map[string]RowID
	observers []Observer
	generic   map[string]bool
}

// DefaultGenericTitles are series titles too vague to name a show.
var DefaultGenericTitles = []string{"tv", "tv show", "tv shows"}

// New creates an empty tree. Generic series titles are compared
// case-insensitively; nil uses DefaultGenericTitles.
func New(genericTitles []string) *Tree {
	if genericTitles == nil {
		genericTitles = DefaultGenericTitles
	}
	t := &Tree{
		byPath:  make(map[string]RowID),
		generic: make(map[string]bool, len(genericTitles)),
	}
	for _, g := range genericTitles {
		t.generic[lowerTrim(g)] = true
	}
	return t
}

// Observe registers fn to receive every subsequent change.
func (t *Tree) Observe(fn Observer) {
	t.observers = append(t.observers, fn)
}

func (t *Tree) notify(id RowID, field Field, programmatic bool) {
	for _, fn := range t.observers {
		fn(Change{Row: id, Field: field, Programmatic: programmatic})
	}
}

// add appends a row under parent, or as a root when parent is NoRow.
func (t *Tree) add(parent RowID, r Row) RowID {
	id := RowID(len(t.rows))
	r.ID = id
	r.Parent = parent
	r.Children = nil
	t.rows = append(t.rows, &r)
	t.byPath[r.Path] = id
	if parent == NoRow {
		t.roots = append(t.roots, id)
	} else {
		p := t.rows[parent]
		p.Children = append(p.Children, id)
	}
	return id
}

func (t *Tree) row(id RowID) (*Row, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return nil, false
	}
	return t.rows[id], true
}

// Row returns a copy of the row with the given ID.
func (t *Tree) Row(id RowID) (Row, bool) {
	r, ok := t.row(id)
	if !ok {
		return Row{}, false
	}
	out := *r
	out.Children = slices.Clone(r.Children)
	return out, true
}

// Lookup finds a row by path.
func (t *Tree) Lookup(path string) (RowID, bool) {
	id, ok := t.byPath[path]
	return id, ok
}

// Roots returns the top-level rows in order.
func (t *Tree) Roots() []RowID {
	return slices.Clone(t.roots)
}

// Len returns the number of rows.
func (t *Tree) Len() int {
	return len(t.rows)
}

// FileCount returns the number of file rows.
func (t *Tree) FileCount() int {
	n := 0
	for _, r := range t.rows {
		if !r.IsFolder {
			n++
		}
	}
	return n
}

// Walk visits every row in pre-order. Returning false stops the walk.
func (t *Tree) Walk(fn func(r Row, depth int) bool) {
	var visit func(id RowID, depth int) bool
	visit = func(id RowID, depth int) bool {
		r, _ := t.Row(id)
		if !fn(r, depth) {
			return false
		}
		for _, c := range t.rows[id].Children {
			if !visit(c, depth+1) {
				return false
			}
		}
		return true
	}
	for _, id := range t.roots {
		if !visit(id, 0) {
			return
		}
	}
}

// preorder returns the IDs beneath id (excluding id) in pre-order.
func (t *Tree) preorder(id RowID) []RowID {
	var out []RowID
	var visit func(RowID)
	visit = func(id RowID) {
		for _, c := range t.rows[id].Children {
			out = append(out, c)
			visit(c)
		}
	}
	visit(id)
	return out
}

func (t *Tree) isGeneric(title string) bool {
	return t.generic[lowerTrim(title)]
}
