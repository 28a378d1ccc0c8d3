package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/whatch/internal/library"
	"github.com/vmunix/whatch/pkg/medianame"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and manage the library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the library as Movies and TV Shows",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryNextCmd = &cobra.Command{
	Use:   "next <series>",
	Short: "List the unwatched files of a series in viewing order",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryNext,
}

var libraryWatchedCmd = &cobra.Command{
	Use:   "watched <path>...",
	Short: "Mark items watched",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryWatched,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <path>...",
	Short: "Remove items from the library (files on disk are untouched)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryRemove,
}

var libraryPlaceholdersCmd = &cobra.Command{
	Use:   "placeholders <series>",
	Short: "Add placeholder episodes for a series",
	Long: `Adds placeholder episodes numbered after the highest episode already in
the season. With --air the first placeholder airs at that time and the rest
follow every --every days.

Example:
  whatch library placeholders "Severance" --season 2 --count 10 --air "2025-01-17 03:00"`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryPlaceholders,
}

var libraryAssignCmd = &cobra.Command{
	Use:   "assign <placeholder> <file>",
	Short: "Point a placeholder at the file that arrived for it",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryAssign,
}

func init() {
	libraryListCmd.Flags().Bool("watching", false, "Only series that are partly watched")

	libraryWatchedCmd.Flags().Bool("unset", false, "Mark unwatched instead")

	libraryPlaceholdersCmd.Flags().Int("season", 1, "Season number")
	libraryPlaceholdersCmd.Flags().Int("count", 1, "Number of placeholders")
	libraryPlaceholdersCmd.Flags().String("type", "tv", "Media type: movie or tv")
	libraryPlaceholdersCmd.Flags().String("air", "", "First air time, "+library.AirTimeLayout)
	libraryPlaceholdersCmd.Flags().Int("every", 7, "Days between air times")
	libraryPlaceholdersCmd.Flags().StringArray("title", nil, "Episode titles in order (repeatable)")

	libraryCmd.AddCommand(libraryListCmd, libraryNextCmd, libraryWatchedCmd, libraryRemoveCmd,
		libraryPlaceholdersCmd, libraryAssignCmd)
	rootCmd.AddCommand(libraryCmd)
}

// loadView refreshes the airing flags and builds the view of the whole
// library.
func loadView(store *library.Store, watching bool, now time.Time) (library.View, error) {
	if err := store.ApplyAutoAiring(now); err != nil {
		return library.View{}, fmt.Errorf("update airing: %w", err)
	}
	items, _, err := store.ListItems(library.ItemFilter{})
	if err != nil {
		return library.View{}, err
	}
	if watching {
		items = library.FilterWatching(items)
	}
	return library.BuildView(items, now), nil
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	watching, _ := cmd.Flags().GetBool("watching")

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	view, err := loadView(store, watching, time.Now())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), view)
	}
	printView(cmd.OutOrStdout(), view)
	return nil
}

func runLibraryNext(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	view, err := loadView(store, false, time.Now())
	if err != nil {
		return err
	}
	node := findSeries(view, args[0])
	if node == nil {
		return fmt.Errorf("series %q: %w", args[0], library.ErrNotFound)
	}
	paths := node.NextUnwatched()
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), paths)
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// findSeries returns the movie series or show group titled title, ignoring
// case.
func findSeries(view library.View, title string) *library.Node {
	for _, root := range []*library.Node{view.TV, view.Movies} {
		for _, n := range root.Children {
			if !n.IsLeaf() && strings.EqualFold(n.Title, title) {
				return n
			}
		}
	}
	return nil
}

func runLibraryWatched(cmd *cobra.Command, args []string) error {
	unset, _ := cmd.Flags().GetBool("unset")

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := store.SetWatched(args, !unset)
	if err != nil {
		return err
	}
	state := "watched"
	if unset {
		state = "unwatched"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %d items %s\n", n, state)
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := store.DeleteByPaths(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d items\n", n)
	return nil
}

// placeholderRequest builds the request from the placeholders flags.
func placeholderRequest(cmd *cobra.Command, series string) (library.PlaceholderRequest, error) {
	season, _ := cmd.Flags().GetInt("season")
	count, _ := cmd.Flags().GetInt("count")
	typ, _ := cmd.Flags().GetString("type")
	air, _ := cmd.Flags().GetString("air")
	every, _ := cmd.Flags().GetInt("every")
	titles, _ := cmd.Flags().GetStringArray("title")

	mt, ok := medianame.ParseMediaType(typ)
	if !ok {
		return library.PlaceholderRequest{}, fmt.Errorf("--type must be movie or tv, got: %s", typ)
	}
	req := library.PlaceholderRequest{
		SeriesTitle: series,
		MediaType:   mt,
		Season:      season,
		Count:       count,
		Titles:      titles,
		EveryDays:   every,
	}
	if air != "" {
		at, err := time.ParseInLocation(library.AirTimeLayout, air, time.Local)
		if err != nil {
			return library.PlaceholderRequest{}, fmt.Errorf("--air %q: want %s", air, library.AirTimeLayout)
		}
		req.FirstAir = &at
	}
	return req, nil
}

func runLibraryPlaceholders(cmd *cobra.Command, args []string) error {
	req, err := placeholderRequest(cmd, args[0])
	if err != nil {
		return err
	}

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	added, err := store.AddPlaceholders(req)
	if err != nil {
		return err
	}
	if err := store.ApplyAutoAiring(time.Now()); err != nil {
		return fmt.Errorf("update airing: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), added)
	}
	for _, it := range added {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s", it.SeriesIndex, it.DisplayTitle)
		if it.AirDateTime != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " (airs %s)", it.AirDateTime)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runLibraryAssign(cmd *cobra.Command, args []string) error {
	if !library.IsPlaceholderPath(args[0]) {
		return fmt.Errorf("%q is not a placeholder path", args[0])
	}

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.AssignPlaceholder(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s\n", args[1])
	return nil
}

func printView(w io.Writer, view library.View) {
	printNode(w, view.Movies, 0)
	printNode(w, view.TV, 0)
}

func printNode(w io.Writer, n *library.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		it := n.Item
		mark := " "
		if it.Watched {
			mark = "x"
		}
		fmt.Fprintf(w, "%s[%s] %s", indent, mark, n.Title)
		if it.SeriesIndex != "" {
			fmt.Fprintf(w, "  %s", it.SeriesIndex)
		}
		if it.IsPlaceholder {
			fmt.Fprint(w, "  (placeholder")
			if it.AirDateTime != "" {
				fmt.Fprintf(w, ", airs %s", it.AirDateTime)
			}
			fmt.Fprint(w, ")")
		}
		fmt.Fprintf(w, "\n%s    %s\n", indent, it.Path)
		return
	}

	watched, total := n.Counts()
	fmt.Fprintf(w, "%s%s (%d/%d)", indent, n.Title, watched, total)
	if s := n.Status(); s != library.StatusNone {
		fmt.Fprintf(w, " [%s]", s)
	}
	if n.Note != "" {
		fmt.Fprintf(w, " - %s", n.Note)
	}
	fmt.Fprintln(w)
	for _, c := range n.Children {
		printNode(w, c, depth+1)
	}
}
