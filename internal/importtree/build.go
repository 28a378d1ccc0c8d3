package importtree

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vmunix/whatch/internal/scan"
	"github.com/vmunix/whatch/pkg/medianame"
)

// Options configures Build.
type Options struct {
	// Parser supplies the token tables for episode titles. Nil uses the
	// package defaults.
	Parser *medianame.Parser

	// GenericTitles are folder series titles replaced during normalization.
	// Nil uses DefaultGenericTitles.
	GenericTitles []string
}

type builder struct {
	tree   *Tree
	parser *medianame.Parser

	dirsByParent   map[string][]string
	filesByParent  map[string][]string
	showHasSeasons map[string]bool
}

// Build creates the import tree for walked entries. Each selected folder and
// each selected video file becomes a root row; non-video files are skipped.
// The tree is sorted and its folder series titles normalized before it is
// returned.
func Build(entries []scan.Entry, opts Options) *Tree {
	b := &builder{
		tree:           New(opts.GenericTitles),
		parser:         opts.Parser,
		dirsByParent:   make(map[string][]string),
		filesByParent:  make(map[string][]string),
		showHasSeasons: make(map[string]bool),
	}
	if b.parser == nil {
		b.parser = medianame.NewParser(medianame.Tables{})
	}

	var folderRoots, fileRoots []string
	for _, e := range entries {
		switch {
		case e.IsRoot() && e.IsDir:
			folderRoots = append(folderRoots, e.Path)
		case e.IsRoot():
			fileRoots = append(fileRoots, e.Path)
		case e.IsDir:
			b.dirsByParent[e.Parent] = append(b.dirsByParent[e.Parent], e.Path)
			if _, ok := medianame.SeasonNumberFromName(medianame.BaseName(e.Path)); ok {
				b.showHasSeasons[e.Parent] = true
			}
		default:
			b.filesByParent[e.Parent] = append(b.filesByParent[e.Parent], e.Path)
		}
	}

	for _, root := range folderRoots {
		b.addFolderRoot(root)
	}

	medianame.SortFilePaths(fileRoots)
	for _, path := range fileRoots {
		if !medianame.IsVideoFile(path) {
			continue
		}
		index := ""
		if ep, ok := b.parser.ExtractEpisode(path); ok {
			index = ep.SeriesIndex
		}
		b.addRow(NoRow, path, false, index, "")
	}

	b.tree.Sort()
	b.tree.NormalizeSeriesTitles()
	return b.tree
}

func (b *builder) addFolderRoot(root string) {
	name := rowName(root)
	index := ""
	title := medianame.CleanSeriesTitle(name)
	if season, ok := medianame.SeasonNumberFromName(name); ok {
		index = strconv.Itoa(season)
		if parentTitle := medianame.CleanSeriesTitle(medianame.BaseName(medianame.DirName(root))); parentTitle != "" {
			title = parentTitle
		}
	}
	if title == "" {
		title = name
	}
	id := b.addRow(NoRow, root, true, index, title)
	b.addContents(id, root)
}

// addContents adds the video files of dir and then its subfolders, each in
// import order.
func (b *builder) addContents(parent RowID, dir string) {
	files := slices.Clone(b.filesByParent[dir])
	medianame.SortFilePaths(files)

	season, hasSeason := medianame.SeasonNumberFromName(medianame.BaseName(dir))
	if !hasSeason && !b.showHasSeasons[dir] && strings.Contains(strings.ToLower(dir), "tv shows") {
		season, hasSeason = 1, true
	}
	numbered := hasSeason && season != 0

	counter := 1
	inBDMV := strings.EqualFold(medianame.BaseName(dir), "bdmv")
	for _, path := range files {
		if inBDMV && !strings.EqualFold(medianame.BaseName(path), "movieobject.bdmv") {
			continue
		}
		if !medianame.IsVideoFile(path) {
			continue
		}

		index := ""
		if ep, ok := b.parser.ExtractEpisode(path); ok {
			index = ep.SeriesIndex
			if numbered && ep.Season == season {
				counter = max(counter, ep.EndEpisode+1)
			}
		} else if numbered {
			index = strconv.Itoa(season) + "." + strconv.Itoa(counter)
			counter++
		}
		b.addRow(parent, path, false, index, "")
	}

	dirs := slices.Clone(b.dirsByParent[dir])
	slices.SortStableFunc(dirs, func(x, y string) int {
		return medianame.ImportDirSortKey(medianame.BaseName(x)).Compare(medianame.ImportDirSortKey(medianame.BaseName(y)))
	})
	for _, sub := range dirs {
		index := ""
		if season, ok := medianame.SeasonNumberFromName(medianame.BaseName(sub)); ok && season != 0 {
			index = strconv.Itoa(season)
		}
		id := b.addRow(parent, sub, true, index, "")
		b.addContents(id, sub)
	}
}

// addRow creates a row with its inferred defaults.
func (b *builder) addRow(parent RowID, path string, isFolder bool, index, folderTitle string) RowID {
	mediaType := medianame.DetectDefaultType(path)
	r := Row{
		Path:        path,
		Name:        rowName(path),
		IsFolder:    isFolder,
		MediaType:   mediaType,
		IsSeries:    mediaType == medianame.TV,
		SeriesIndex: index,
	}

	var ep medianame.Episode
	var parsed bool
	if !isFolder {
		ep, parsed = b.parser.ExtractEpisode(path)
	}

	if mediaType == medianame.TV {
		r.SeriesTitle = folderTitle
		if r.SeriesTitle == "" {
			r.SeriesTitle, _ = medianame.DefaultShowAndSeries(path)
		}
		if parsed && ep.SeriesTitle != "" {
			r.SeriesTitle = ep.SeriesTitle
		}
	}

	if !isFolder {
		if mediaType == medianame.TV {
			r.DisplayTitle = b.parser.DefaultEpisodeTitle(path, index)
		} else {
			r.DisplayTitle = medianame.DefaultDisplayTitle(path)
		}
	}
	return b.tree.add(parent, r)
}

func rowName(path string) string {
	if name := medianame.BaseName(path); name != "" && name != "." {
		return name
	}
	return path
}
