package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/whatch/pkg/medianame"
)

func TestParsePath_Episode(t *testing.T) {
	r := parsePath(medianame.NewParser(medianame.Tables{}),
		"/media/tv/The Expanse/Season 2/The.Expanse.S02E03.Static.1080p.WEB.mkv")

	assert.Equal(t, medianame.TV, r.MediaType)
	assert.Equal(t, "The Expanse", r.Show)
	assert.Equal(t, "Season 2", r.SeasonFolder)
	assert.True(t, r.Video)
	assert.Equal(t, "The Expanse", r.SeriesTitle)
	assert.Equal(t, "S02E03", r.EpisodeCode)
	assert.Equal(t, 2, r.Season)
	assert.Equal(t, "2.3", r.SeriesIndex)
	assert.Equal(t, "Static", r.EpisodeTitle)
}

func TestParsePath_Movie(t *testing.T) {
	r := parsePath(medianame.NewParser(medianame.Tables{}), "/movies/Alien/Alien.mkv")

	assert.Equal(t, medianame.Movie, r.MediaType)
	assert.Equal(t, "Alien", r.Show)
	assert.Empty(t, r.SeasonFolder)
	assert.Empty(t, r.EpisodeCode)
	assert.Zero(t, r.Season)
}

func TestPrintParseResult(t *testing.T) {
	var buf bytes.Buffer
	printParseResult(&buf, ParseResult{
		Path: "/x/notes.txt", MediaType: medianame.Movie, Show: "x", DisplayTitle: "notes",
	})
	assert.Contains(t, buf.String(), "(not a video file)")
	assert.NotContains(t, buf.String(), "Episode:")
}

func TestParseCommand_JSON(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := run(t, "--config", cfg, "--json", "parse", "/tv/Dark/Season 1/Dark.S01E02.Lies.mkv")
	require.NoError(t, err)

	var got ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Dark", got.SeriesTitle)
	assert.Equal(t, "1.2", got.SeriesIndex)
	assert.Equal(t, "Lies", got.EpisodeTitle)
}
