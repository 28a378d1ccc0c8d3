package medianame

import (
	"cmp"
	"slices"
)

// DirKey orders folders during import: season folders first by season
// number, then everything else, by lowercase name within each group.
type DirKey struct {
	Group  int
	Season int
	Name   string
}

// Compare orders keys field by field.
func (k DirKey) Compare(o DirKey) int {
	return cmp.Or(
		cmp.Compare(k.Group, o.Group),
		cmp.Compare(k.Season, o.Season),
		cmp.Compare(k.Name, o.Name),
	)
}

// ImportDirSortKey builds the DirKey for a folder name.
func ImportDirSortKey(name string) DirKey {
	if season, ok := SeasonNumberFromName(name); ok {
		return DirKey{Group: 0, Season: season, Name: lower(name)}
	}
	return DirKey{Group: 1, Name: lower(name)}
}

// FileKey orders files during import: parsed episodes by season and episode
// range, then unparsed files, by lowercase base name within each group.
type FileKey struct {
	Group  int
	Season int
	Start  int
	End    int
	Name   string
}

// Compare orders keys field by field.
func (k FileKey) Compare(o FileKey) int {
	return cmp.Or(
		cmp.Compare(k.Group, o.Group),
		cmp.Compare(k.Season, o.Season),
		cmp.Compare(k.Start, o.Start),
		cmp.Compare(k.End, o.End),
		cmp.Compare(k.Name, o.Name),
	)
}

// ImportFileSortKey builds the FileKey for a file path.
func ImportFileSortKey(path string) FileKey {
	name := lower(baseName(path))
	if ep, ok := ExtractEpisode(path); ok {
		return FileKey{Group: 0, Season: ep.Season, Start: ep.StartEpisode, End: ep.EndEpisode, Name: name}
	}
	return FileKey{Group: 1, Name: name}
}

// SortDirNames sorts folder names in place by ImportDirSortKey.
func SortDirNames(names []string) {
	slices.SortStableFunc(names, func(a, b string) int {
		return ImportDirSortKey(a).Compare(ImportDirSortKey(b))
	})
}

// SortFilePaths sorts file paths in place by ImportFileSortKey.
func SortFilePaths(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		return ImportFileSortKey(a).Compare(ImportFileSortKey(b))
	})
}
