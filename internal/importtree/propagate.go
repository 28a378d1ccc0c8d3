package importtree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/whatch/pkg/medianame"
)

// Edit applies a user edit given as text, the way a form field would submit
// it. Booleans accept strconv.ParseBool forms and types accept "movie" or
// "tv" in any case. Edits on folder rows cascade to descendants.
func (t *Tree) Edit(id RowID, field Field, value string) error {
	switch field {
	case FieldType:
		mt, ok := medianame.ParseMediaType(strings.TrimSpace(value))
		if !ok {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
		}
		return t.SetType(id, mt)
	case FieldSeriesCheck, FieldExclude:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
		}
		if field == FieldExclude {
			return t.SetExcluded(id, b)
		}
		return t.SetSeries(id, b)
	case FieldSeriesTitle:
		return t.SetSeriesTitle(id, value)
	case FieldSeriesIndex:
		return t.SetSeriesIndex(id, value)
	case FieldDisplayTitle:
		return t.SetDisplayTitle(id, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// SetType changes a row's media type. Switching to TV also turns on the
// series flag.
func (t *Tree) SetType(id RowID, mt medianame.MediaType) error {
	r, ok := t.row(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	if mt == medianame.TV && !r.IsSeries {
		if err := t.SetSeries(id, true); err != nil {
			return err
		}
	}
	r.MediaType = mt
	t.notify(id, FieldType, false)
	if r.IsFolder {
		t.cascade(id, FieldType, func(d *Row) { d.MediaType = mt })
	}
	return nil
}

// SetSeries changes a row's series flag.
func (t *Tree) SetSeries(id RowID, isSeries bool) error {
	return t.set(id, FieldSeriesCheck, func(r *Row) { r.IsSeries = isSeries })
}

// SetSeriesTitle changes a row's series title.
func (t *Tree) SetSeriesTitle(id RowID, title string) error {
	return t.set(id, FieldSeriesTitle, func(r *Row) { r.SeriesTitle = title })
}

// SetExcluded changes whether a row is left out of the import.
func (t *Tree) SetExcluded(id RowID, excluded bool) error {
	return t.set(id, FieldExclude, func(r *Row) { r.Excluded = excluded })
}

// SetDisplayTitle changes a file row's display title. Folder rows have none.
func (t *Tree) SetDisplayTitle(id RowID, title string) error {
	r, ok := t.row(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	if r.IsFolder {
		return fmt.Errorf("%w: %s", ErrFolderField, FieldDisplayTitle)
	}
	r.DisplayTitle = title
	t.notify(id, FieldDisplayTitle, false)
	return nil
}

// SetSeriesIndex changes a row's series index. On a folder row with a
// numeric season prefix ("2" or "2.5"), each descendant file is renumbered
// "<season>.<n>" in tree order, with n restarting at 1 inside every folder;
// descendant folders receive the value as given. Without a prefix the value
// is copied to every descendant.
func (t *Tree) SetSeriesIndex(id RowID, value string) error {
	r, ok := t.row(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	r.SeriesIndex = value
	t.notify(id, FieldSeriesIndex, false)
	if r.IsFolder {
		prefix, numbered := medianame.SeriesIndexPrefix(value)
		t.renumber(id, value, prefix, numbered)
	}
	return nil
}

func (t *Tree) renumber(folder RowID, value, prefix string, numbered bool) {
	counter := 1
	for _, c := range t.rows[folder].Children {
		child := t.rows[c]
		if !child.IsFolder && numbered {
			child.SeriesIndex = prefix + "." + strconv.Itoa(counter)
			counter++
		} else {
			child.SeriesIndex = value
		}
		t.notify(c, FieldSeriesIndex, true)
		if child.IsFolder {
			t.renumber(c, value, prefix, numbered)
		}
	}
}

// set writes a field on one row and, for folders, copies it to every
// descendant.
func (t *Tree) set(id RowID, field Field, apply func(*Row)) error {
	r, ok := t.row(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	apply(r)
	t.notify(id, field, false)
	if r.IsFolder {
		t.cascade(id, field, apply)
	}
	return nil
}

// cascade applies a write to every descendant of id. Cascaded writes are
// reported as programmatic and never cascade again.
func (t *Tree) cascade(id RowID, field Field, apply func(*Row)) {
	for _, d := range t.preorder(id) {
		apply(t.rows[d])
		t.notify(d, field, true)
	}
}

// ApplyToAll sets the type and series flag of every row, and the series
// title too when title is not blank.
func (t *Tree) ApplyToAll(mt medianame.MediaType, isSeries bool, title string) {
	title = strings.TrimSpace(title)
	for _, r := range t.rows {
		r.MediaType = mt
		t.notify(r.ID, FieldType, true)
		r.IsSeries = isSeries
		t.notify(r.ID, FieldSeriesCheck, true)
		if title != "" {
			r.SeriesTitle = title
			t.notify(r.ID, FieldSeriesTitle, true)
		}
	}
}
