package importtree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/whatch/internal/scan"
	"github.com/vmunix/whatch/pkg/medianame"
)

// entriesFor builds walker output for a selected folder from its file paths,
// adding every intermediate directory once.
func entriesFor(root string, files ...string) []scan.Entry {
	entries := []scan.Entry{{Path: root, IsDir: true, Root: root}}
	seen := map[string]bool{root: true}
	var addDir func(dir string)
	addDir = func(dir string) {
		if seen[dir] {
			return
		}
		addDir(filepath.Dir(dir))
		seen[dir] = true
		entries = append(entries, scan.Entry{Path: dir, IsDir: true, Root: root, Parent: filepath.Dir(dir)})
	}
	for _, f := range files {
		addDir(filepath.Dir(f))
		entries = append(entries, scan.Entry{Path: f, Root: root, Parent: filepath.Dir(f)})
	}
	return entries
}

func childNames(t *testing.T, tree *Tree, id RowID) []string {
	t.Helper()
	r, ok := tree.Row(id)
	require.True(t, ok)
	var names []string
	for _, c := range r.Children {
		child, _ := tree.Row(c)
		names = append(names, child.Name)
	}
	return names
}

func mustLookup(t *testing.T, tree *Tree, path string) Row {
	t.Helper()
	id, ok := tree.Lookup(path)
	require.True(t, ok, "no row for %s", path)
	r, _ := tree.Row(id)
	return r
}

func TestBuild_SeasonFolders(t *testing.T) {
	root := "/media/tv/The Pitt"
	season := root + "/Season 2"
	dotted1 := season + "/The.Pitt.S02E01.1080p.WEB.h264-ETHEL[asdf].mkv"
	dotted2 := season + "/The.Pitt.S02E02.1080p.WEB.h264-ETHEL[asdf].mkv"
	dotted3 := season + "/The.Pitt.S02E03.1080p.WEB.h264-ETHEL[asdf].mkv"
	spaced := season + "/The Pitt S02E04 10 00 A M 1080p AMZN WEB-DL DD 5 1 H 264-playWEB[asdf].mkv"
	recap := season + "/Recap.mkv"
	extra := root + "/Featurettes/Behind.mkv"
	notes := root + "/Featurettes/notes.txt"

	tree := Build(entriesFor(root, spaced, recap, dotted3, dotted1, dotted2, extra, notes), Options{})

	require.Len(t, tree.Roots(), 1)
	rootRow := mustLookup(t, tree, root)
	assert.True(t, rootRow.IsFolder)
	assert.Equal(t, medianame.TV, rootRow.MediaType)
	assert.True(t, rootRow.IsSeries)
	assert.Equal(t, "The Pitt", rootRow.SeriesTitle)
	assert.Empty(t, rootRow.SeriesIndex)

	assert.Equal(t, []string{"Season 2", "Featurettes"}, childNames(t, tree, rootRow.ID))

	seasonRow := mustLookup(t, tree, season)
	assert.Equal(t, "2", seasonRow.SeriesIndex)
	assert.Equal(t, "The Pitt", seasonRow.SeriesTitle)
	assert.Equal(t, []string{
		filepath.Base(dotted1), filepath.Base(dotted2), filepath.Base(dotted3),
		filepath.Base(spaced), "Recap.mkv",
	}, childNames(t, tree, seasonRow.ID))

	tests := []struct {
		path    string
		index   string
		display string
		series  string
	}{
		{dotted1, "2.1", "S02E01", "The Pitt"},
		{dotted3, "2.3", "S02E03", "The Pitt"},
		{spaced, "2.4", "10 00 A M", "The Pitt"},
		{recap, "2.5", "S02E05", "The Pitt"},
		{extra, "", "S01E01", "Featurettes"},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			r := mustLookup(t, tree, tt.path)
			assert.False(t, r.IsFolder)
			assert.Equal(t, medianame.TV, r.MediaType)
			assert.Equal(t, tt.index, r.SeriesIndex)
			assert.Equal(t, tt.display, r.DisplayTitle)
			assert.Equal(t, tt.series, r.SeriesTitle)
		})
	}

	_, ok := tree.Lookup(notes)
	assert.False(t, ok, "non-video files get no row")
	assert.Equal(t, 6, tree.FileCount())
}

func TestBuild_TVShowsWithoutSeasonFolders(t *testing.T) {
	root := "/media/TV Shows/Mini Series"
	part1 := root + "/Part One.mkv"
	part2 := root + "/Part Two.mkv"

	tree := Build(entriesFor(root, part2, part1), Options{})

	assert.Equal(t, "1.1", mustLookup(t, tree, part1).SeriesIndex)
	assert.Equal(t, "1.2", mustLookup(t, tree, part2).SeriesIndex)
	assert.Equal(t, "S01E02", mustLookup(t, tree, part2).DisplayTitle)
}

func TestBuild_SeasonNamedRoot(t *testing.T) {
	root := "/media/tv/3.Body.Problem.2024.S01.MULTI.2160p.WEB-DL.SDR.H265-AOC/S01"
	ep := root + "/3.body.problem.s01e01.2160p.web.h265.mkv"

	tree := Build(entriesFor(root, ep), Options{})

	rootRow := mustLookup(t, tree, root)
	assert.Equal(t, "1", rootRow.SeriesIndex)
	assert.Equal(t, "3 Body Problem", rootRow.SeriesTitle)

	epRow := mustLookup(t, tree, ep)
	assert.Equal(t, "1.1", epRow.SeriesIndex)
	assert.Equal(t, "3 Body Problem", epRow.SeriesTitle)
	assert.Equal(t, "S01E01", epRow.DisplayTitle)
}

func TestBuild_GenericRootTitleNormalized(t *testing.T) {
	root := "/media/TV Shows"
	ep1 := root + "/Shrinking/Season 2/Shrinking.S02E01.mkv"
	ep2 := root + "/Shrinking/Season 2/Shrinking.S02E02.mkv"

	tree := Build(entriesFor(root, ep1, ep2), Options{})

	assert.Equal(t, "Shrinking", mustLookup(t, tree, root).SeriesTitle)
	assert.Equal(t, "Shrinking", mustLookup(t, tree, root+"/Shrinking").SeriesTitle)
	assert.Equal(t, "Shrinking", mustLookup(t, tree, root+"/Shrinking/Season 2").SeriesTitle)
}

func TestBuild_MoviesAndLooseFiles(t *testing.T) {
	movies := "/media/movies"
	heat := movies + "/Heat (1995)/Heat (1995).mkv"
	disc := movies + "/Alien/BDMV/MovieObject.bdmv"
	index := movies + "/Alien/BDMV/index.bdmv"
	stream := movies + "/Alien/BDMV/STREAM/00001.m2ts"
	loose := "/downloads/Show.S01E03.Third.mkv"
	looseText := "/downloads/readme.txt"

	entries := entriesFor(movies, heat, disc, index, stream)
	entries = append(entries,
		scan.Entry{Path: loose, Root: loose},
		scan.Entry{Path: looseText, Root: looseText},
	)
	tree := Build(entries, Options{})

	require.Len(t, tree.Roots(), 2)

	heatRow := mustLookup(t, tree, heat)
	assert.Equal(t, medianame.Movie, heatRow.MediaType)
	assert.False(t, heatRow.IsSeries)
	assert.Empty(t, heatRow.SeriesTitle)
	assert.Equal(t, "Heat (1995)", heatRow.DisplayTitle)

	discRow := mustLookup(t, tree, disc)
	assert.Equal(t, "Alien", discRow.DisplayTitle)
	_, ok := tree.Lookup(stream)
	assert.False(t, ok)
	_, ok = tree.Lookup(stream)
	assert.True(t, ok, "m2ts streams outside the BDMV folder itself are kept")

	looseRow := mustLookup(t, tree, loose)
	assert.Equal(t, NoRow, looseRow.Parent)
	assert.Equal(t, "1.3", looseRow.SeriesIndex)
	assert.Equal(t, medianame.Movie, looseRow.MediaType)
	assert.Equal(t, "Show.S01E03.Third", looseRow.DisplayTitle)

	_, ok = tree.Lookup(looseText)
	assert.False(t, ok)
}

func TestBuild_CustomParserTables(t *testing.T) {
	root := "/media/tv/Show/Season 1"
	ep := root + "/Show.S01E01.Le.Pilote.VOSTFR.mkv"

	tree := Build(entriesFor(root, ep), Options{
		Parser: medianame.NewParser(medianame.Tables{LanguageTokens: []string{"vostfr"}}),
	})
	assert.Equal(t, "Le Pilote", mustLookup(t, tree, ep).DisplayTitle)
}

func TestBuild_BackslashPaths(t *testing.T) {
	root := `C:\TV\Dark`
	season := root + `\Season 2`
	file := season + `\episode one.mkv`
	entries := []scan.Entry{
		{Path: root, IsDir: true, Root: root},
		{Path: season, IsDir: true, Root: root, Parent: root},
		{Path: file, Root: root, Parent: season},
	}

	tree := Build(entries, Options{})

	rootRow := mustLookup(t, tree, root)
	assert.Equal(t, "Dark", rootRow.Name)
	assert.Equal(t, medianame.TV, rootRow.MediaType)
	assert.Equal(t, "Dark", rootRow.SeriesTitle)

	seasonRow := mustLookup(t, tree, season)
	assert.Equal(t, "Season 2", seasonRow.Name)
	assert.Equal(t, "2", seasonRow.SeriesIndex)

	fileRow := mustLookup(t, tree, file)
	assert.Equal(t, "episode one.mkv", fileRow.Name)
	assert.Equal(t, "2.1", fileRow.SeriesIndex)
	assert.Equal(t, "Dark", fileRow.SeriesTitle)
}

func TestBuild_BackslashBDMV(t *testing.T) {
	root := `D:\Movies\Heat`
	bdmv := root + `\BDMV`
	object := bdmv + `\MovieObject.bdmv`
	stream := bdmv + `\00001.m2ts`
	entries := []scan.Entry{
		{Path: root, IsDir: true, Root: root},
		{Path: bdmv, IsDir: true, Root: root, Parent: root},
		{Path: stream, Root: root, Parent: bdmv},
		{Path: object, Root: root, Parent: bdmv},
	}

	tree := Build(entries, Options{})

	_, ok := tree.Lookup(stream)
	assert.False(t, ok, "only the movie object of a BDMV folder is imported")
	r := mustLookup(t, tree, object)
	assert.Equal(t, medianame.Movie, r.MediaType)
	assert.Equal(t, "Heat", r.DisplayTitle)
	assert.Equal(t, 1, tree.FileCount())
}
