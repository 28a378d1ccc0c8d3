package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/whatch/pkg/medianame"
)

// ParseResult is what whatch infers from a single path.
type ParseResult struct {
	Path         string              `json:"path"`
	MediaType    medianame.MediaType `json:"media_type"`
	Show         string              `json:"show"`
	SeasonFolder string              `json:"season_folder,omitempty"`
	DisplayTitle string              `json:"display_title"`
	Video        bool                `json:"video"`

	// Set when the name carries an episode code.
	SeriesTitle  string `json:"series_title,omitempty"`
	EpisodeCode  string `json:"episode_code,omitempty"`
	Season       int    `json:"season,omitempty"`
	StartEpisode int    `json:"start_episode,omitempty"`
	EndEpisode   int    `json:"end_episode,omitempty"`
	SeriesIndex  string `json:"series_index,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <path>...",
	Short: "Show what whatch infers from file names",
	Long: `Parse file paths the way an import would, without touching the disk.

Examples:
  whatch parse "/media/tv/The Expanse/Season 2/The.Expanse.S02E03.Static.1080p.mkv"
  whatch parse --json movie.mkv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	parser := medianame.NewParser(cfg.ParserTables())

	results := make([]ParseResult, len(args))
	for i, path := range args {
		results[i] = parsePath(parser, path)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if len(results) == 1 {
			return printJSON(out, results[0])
		}
		return printJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printParseResult(out, r)
	}
	return nil
}

func parsePath(parser *medianame.Parser, path string) ParseResult {
	show, season := medianame.DefaultShowAndSeries(path)
	r := ParseResult{
		Path:         path,
		MediaType:    medianame.DetectDefaultType(path),
		Show:         show,
		SeasonFolder: season,
		DisplayTitle: medianame.DefaultDisplayTitle(path),
		Video:        medianame.IsVideoFile(path),
	}
	if ep, ok := parser.ExtractEpisode(path); ok {
		r.SeriesTitle = ep.SeriesTitle
		r.EpisodeCode = ep.EpisodeCode
		r.Season = ep.Season
		r.StartEpisode = ep.StartEpisode
		r.EndEpisode = ep.EndEpisode
		r.SeriesIndex = ep.SeriesIndex
		r.EpisodeTitle = ep.EpisodeTitle
	}
	return r
}

func printParseResult(w io.Writer, r ParseResult) {
	fmt.Fprintf(w, "%s\n", r.Path)
	fmt.Fprintf(w, "  Type:     %s\n", r.MediaType)
	fmt.Fprintf(w, "  Show:     %s\n", r.Show)
	if r.SeasonFolder != "" {
		fmt.Fprintf(w, "  Folder:   %s\n", r.SeasonFolder)
	}
	fmt.Fprintf(w, "  Title:    %s\n", r.DisplayTitle)
	if !r.Video {
		fmt.Fprintln(w, "  (not a video file)")
	}
	if r.EpisodeCode == "" {
		return
	}
	if r.SeriesTitle != "" {
		fmt.Fprintf(w, "  Series:   %s\n", r.SeriesTitle)
	}
	fmt.Fprintf(w, "  Episode:  %s (index %s)\n", r.EpisodeCode, r.SeriesIndex)
	fmt.Fprintf(w, "  Name:     %s\n", r.EpisodeTitle)
}
