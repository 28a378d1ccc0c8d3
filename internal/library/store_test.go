package library

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/whatch/pkg/medianame"
)

func TestStore_AddItem(t *testing.T) {
	store := NewStore(setupTestDB(t))

	it := episode("/tv/Show/S01E01.mkv", "Show", "1.1", false)
	before := time.Now().UTC().Truncate(time.Second)
	inserted, err := store.AddItem(it)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotZero(t, it.ID)
	assert.False(t, it.AddedAt.Before(before))

	got, err := store.GetByPath(it.Path)
	require.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)
	assert.Equal(t, medianame.TV, got.MediaType)
	assert.True(t, got.IsSeries)
	assert.Equal(t, "Show", got.SeriesTitle)
	assert.Equal(t, "1.1", got.SeriesIndex)
	assert.True(t, it.AddedAt.Equal(got.AddedAt))
	assert.Empty(t, got.AirDateTime)
}

func TestStore_AddItem_IgnoresExistingPath(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.AddItem(movie("/m/Heat.mkv", "Heat"))
	require.NoError(t, err)

	again := movie("/m/Heat.mkv", "Other")
	inserted, err := store.AddItem(again)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Zero(t, again.ID)

	got, err := store.GetByPath("/m/Heat.mkv")
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.DisplayTitle)
}

func TestStore_AddItem_BadMediaType(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.AddItem(&Item{Path: "/x.mkv", MediaType: "Anime"})
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_GetByPath_NotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.GetByPath("/missing.mkv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListItems(t *testing.T) {
	store := NewStore(setupTestDB(t))
	for _, it := range []*Item{
		movie("/m/a.mkv", "A"),
		episode("/tv/b.mkv", "Show", "1.1", true),
		episode("/tv/c.mkv", "Show", "1.2", false),
		episode("/tv/d.mkv", "Other", "1.1", false),
	} {
		_, err := store.AddItem(it)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter ItemFilter
		want   []string
		total  int
	}{
		{"all", ItemFilter{}, []string{"/m/a.mkv", "/tv/b.mkv", "/tv/c.mkv", "/tv/d.mkv"}, 4},
		{"by type", ItemFilter{MediaType: lo.ToPtr(medianame.Movie)}, []string{"/m/a.mkv"}, 1},
		{"by series", ItemFilter{SeriesTitle: lo.ToPtr("Show")}, []string{"/tv/b.mkv", "/tv/c.mkv"}, 2},
		{"unwatched series", ItemFilter{IsSeries: lo.ToPtr(true), Watched: lo.ToPtr(false)}, []string{"/tv/c.mkv", "/tv/d.mkv"}, 2},
		{"paged", ItemFilter{Limit: 2, Offset: 1}, []string{"/tv/b.mkv", "/tv/c.mkv"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := store.ListItems(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.want, lo.Map(items, func(it *Item, _ int) string { return it.Path }))
		})
	}
}

func TestStore_UpdateItems(t *testing.T) {
	store := NewStore(setupTestDB(t))
	it := episode("/tv/a.mkv", "Show", "1.1", false)
	_, err := store.AddItem(it)
	require.NoError(t, err)

	it.SeriesIndex = "2.1"
	it.DisplayTitle = "Pilot"
	it.AirDateTime = "2026-01-02 21:00"
	require.NoError(t, store.UpdateItems([]*Item{it}))

	got, err := store.GetByPath(it.Path)
	require.NoError(t, err)
	assert.Equal(t, "2.1", got.SeriesIndex)
	assert.Equal(t, "Pilot", got.DisplayTitle)
	assert.Equal(t, "2026-01-02 21:00", got.AirDateTime)

	err = store.UpdateItems([]*Item{movie("/nope.mkv", "x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SetWatched(t *testing.T) {
	store := NewStore(setupTestDB(t))
	for _, p := range []string{"/a.mkv", "/b.mkv", "/c.mkv"} {
		_, err := store.AddItem(movie(p, p))
		require.NoError(t, err)
	}

	n, err := store.SetWatched([]string{"/a.mkv", "/c.mkv", "/missing.mkv"}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	watched, _, err := store.ListItems(ItemFilter{Watched: lo.ToPtr(true)})
	require.NoError(t, err)
	assert.Len(t, watched, 2)

	n, err = store.SetWatched(nil, true)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_AssignPlaceholder(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ph := episode(PlaceholderPrefix+"Show::S1E3::x", "Show", "1.3", false)
	ph.IsPlaceholder = true
	_, err := store.AddItem(ph)
	require.NoError(t, err)
	_, err = store.AddItem(episode("/tv/taken.mkv", "Show", "1.1", false))
	require.NoError(t, err)

	assert.ErrorIs(t, store.AssignPlaceholder(ph.Path, "/tv/taken.mkv"), ErrDuplicate)
	assert.ErrorIs(t, store.AssignPlaceholder("/tv/taken.mkv", "/tv/other.mkv"), ErrNotFound,
		"only placeholders can be assigned")

	require.NoError(t, store.AssignPlaceholder(ph.Path, "/tv/Show.S01E03.mkv"))
	got, err := store.GetByPath("/tv/Show.S01E03.mkv")
	require.NoError(t, err)
	assert.False(t, got.IsPlaceholder)
	assert.Equal(t, "1.3", got.SeriesIndex)

	_, err = store.GetByPath(ph.Path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateCurrentlyAiring(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, err := store.AddItem(episode("/tv/a.mkv", "Show", "1.1", false))
	require.NoError(t, err)
	_, err = store.AddItem(episode("/tv/b.mkv", "Other", "1.1", false))
	require.NoError(t, err)

	require.NoError(t, store.UpdateCurrentlyAiring("Show", medianame.TV, true))
	require.NoError(t, store.UpdateCurrentlyAiring("", medianame.TV, true))
	require.NoError(t, store.UpdateCurrentlyAiring("Other", medianame.Movie, true))

	a, _ := store.GetByPath("/tv/a.mkv")
	b, _ := store.GetByPath("/tv/b.mkv")
	assert.True(t, a.CurrentlyAiring)
	assert.False(t, b.CurrentlyAiring)
}

func TestStore_DeleteByPaths(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, err := store.AddItem(movie("/a.mkv", "A"))
	require.NoError(t, err)
	_, err = store.AddItem(movie("/b.mkv", "B"))
	require.NoError(t, err)

	n, err := store.DeleteByPaths([]string{"/a.mkv", "/zzz.mkv"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.DeleteByPaths([]string{"/a.mkv"})
	require.NoError(t, err)
	assert.Zero(t, n)

	_, total, err := store.ListItems(ItemFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestStore_SeriesTitles(t *testing.T) {
	store := NewStore(setupTestDB(t))
	series := movie("/m/alien.mkv", "Alien")
	series.IsSeries = true
	series.SeriesTitle = "Alien"
	for _, it := range []*Item{
		series,
		movie("/m/heat.mkv", "Heat"),
		episode("/tv/a.mkv", "Show", "1.1", false),
		episode("/tv/b.mkv", "Show", "1.2", false),
		episode("/tv/c.mkv", "Beta", "1.1", false),
	} {
		_, err := store.AddItem(it)
		require.NoError(t, err)
	}

	all, err := store.SeriesTitles(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alien", "Beta", "Show"}, all)

	tv, err := store.SeriesTitles(lo.ToPtr(medianame.TV))
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Show"}, tv)
}

func TestTx_CommitAndRollback(t *testing.T) {
	store := NewStore(setupTestDB(t))

	tx, err := store.Begin()
	require.NoError(t, err)
	_, err = tx.AddItem(movie("/kept.mkv", "Kept"))
	require.NoError(t, err)
	got, err := tx.GetByPath("/kept.mkv")
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.DisplayTitle)
	require.NoError(t, tx.Commit())

	tx, err = store.Begin()
	require.NoError(t, err)
	_, err = tx.AddItem(movie("/dropped.mkv", "Dropped"))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	_, err = store.GetByPath("/kept.mkv")
	assert.NoError(t, err)
	_, err = store.GetByPath("/dropped.mkv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddItems(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, err := store.AddItem(movie("/m/old.mkv", "Old"))
	require.NoError(t, err)

	added, err := store.AddItems([]*Item{movie("/m/new.mkv", "New"), movie("/m/old.mkv", "Again")})
	require.NoError(t, err)
	assert.Equal(t, []string{"/m/new.mkv"}, added)

	_, err = store.AddItems([]*Item{movie("/m/other.mkv", "Other"), {Path: "/bad", MediaType: "Anime"}})
	assert.ErrorIs(t, err, ErrConstraint)
	_, err = store.GetByPath("/m/other.mkv")
	assert.ErrorIs(t, err, ErrNotFound, "failed batch is rolled back")
}
