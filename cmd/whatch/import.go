package main

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vmunix/whatch/internal/importer"
	"github.com/vmunix/whatch/internal/importtree"
	"github.com/vmunix/whatch/internal/library"
	"github.com/vmunix/whatch/pkg/medianame"
)

var importCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Import folders and files into the library",
	Long: `Builds the import tree for the selected paths, applies edits and adds
the resulting files to the library. Files already in the library are skipped.

Edits use PATH:FIELD=VALUE and are applied in order. Edits on a folder
cascade to everything under it. Fields: type, series_check, series_title,
series_index, exclude, display_title.

Examples:
  whatch import ~/Videos/Dark
  whatch import --set "/tv/Dark/Season 1:series_index=1.1" /tv/Dark
  whatch import --all movie:Alien --dry-run /movies/Alien`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "Show what would be added without writing")
	importCmd.Flags().StringArray("set", nil, "Edit a row: PATH:FIELD=VALUE (repeatable)")
	importCmd.Flags().String("all", "", "Set every row's type and optional series title: TYPE[:TITLE]")
	rootCmd.AddCommand(importCmd)
}

// rowEdit is one --set flag.
type rowEdit struct {
	Path  string
	Field importtree.Field
	Value string
}

// parseSet splits PATH:FIELD=VALUE at the last ":" that is followed by a
// known field name, so paths may contain ":" themselves.
func parseSet(s string) (rowEdit, error) {
	for i := strings.LastIndex(s, ":"); i >= 0; i = strings.LastIndex(s[:i], ":") {
		name, value, ok := strings.Cut(s[i+1:], "=")
		if !ok {
			continue
		}
		field := importtree.Field(strings.TrimSpace(name))
		if !slices.Contains(importtree.Fields, field) {
			continue
		}
		path := strings.TrimSpace(s[:i])
		if path == "" {
			return rowEdit{}, fmt.Errorf("--set %q: missing path", s)
		}
		return rowEdit{Path: path, Field: field, Value: value}, nil
	}
	fields := lo.Map(importtree.Fields, func(f importtree.Field, _ int) string { return string(f) })
	return rowEdit{}, fmt.Errorf("--set %q: want PATH:FIELD=VALUE with FIELD one of %s", s, strings.Join(fields, ", "))
}

// parseApplyAll parses TYPE[:TITLE]. TV rows, and movies given a title,
// become series.
func parseApplyAll(s string) (mt medianame.MediaType, isSeries bool, title string, err error) {
	typ, title, _ := strings.Cut(s, ":")
	mt, ok := medianame.ParseMediaType(strings.TrimSpace(typ))
	if !ok {
		return "", false, "", fmt.Errorf("--all %q: type must be movie or tv", s)
	}
	title = strings.TrimSpace(title)
	return mt, mt == medianame.TV || title != "", title, nil
}

// applyEdits applies the bulk type first, then each edit in order.
func applyEdits(tree *importtree.Tree, all string, sets []string) error {
	if all != "" {
		mt, isSeries, title, err := parseApplyAll(all)
		if err != nil {
			return err
		}
		tree.ApplyToAll(mt, isSeries, title)
	}
	for _, s := range sets {
		e, err := parseSet(s)
		if err != nil {
			return err
		}
		id, ok := tree.Lookup(filepath.Clean(e.Path))
		if !ok {
			return fmt.Errorf("--set %q: %w: %s", s, importtree.ErrRowNotFound, e.Path)
		}
		if err := tree.Edit(id, e.Field, e.Value); err != nil {
			return fmt.Errorf("--set %q: %w", s, err)
		}
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	sets, _ := cmd.Flags().GetStringArray("set")
	all, _ := cmd.Flags().GetString("all")

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	tree, err := buildTree(cmd.Context(), afero.NewOsFs(), cfg, log, args)
	if err != nil {
		return err
	}
	if err := applyEdits(tree, all, sets); err != nil {
		return err
	}

	store, closeDB, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	imp := importer.New(store, importer.Config{
		MatchExisting: cfg.Import.MatchExistingSeries,
		Threshold:     cfg.Import.MatchThreshold,
	}, log)

	out := cmd.OutOrStdout()
	if dryRun {
		items, renamed, err := imp.Plan(cmd.Context(), tree)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, map[string]any{"items": items, "renamed": renamed})
		}
		printPlan(out, items, renamed)
		return nil
	}

	result, err := imp.Import(cmd.Context(), tree)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(out, result)
	}
	printImportResult(out, result)
	return nil
}

func printRenamed(w io.Writer, renamed map[string]string) {
	froms := lo.Keys(renamed)
	slices.Sort(froms)
	for _, from := range froms {
		fmt.Fprintf(w, "  matched %q to library series %q\n", from, renamed[from])
	}
}

func printPlan(w io.Writer, items []*library.Item, renamed map[string]string) {
	fmt.Fprintf(w, "Would add %d items:\n", len(items))
	for _, it := range items {
		fmt.Fprintf(w, "  %-5s %s", it.MediaType, it.DisplayTitle)
		if it.InSeries() {
			fmt.Fprintf(w, "  (%s %s)", it.SeriesTitle, it.SeriesIndex)
		}
		fmt.Fprintf(w, "\n        %s\n", it.Path)
	}
	printRenamed(w, renamed)
}

func printImportResult(w io.Writer, r *importer.Result) {
	fmt.Fprintf(w, "Added %d, skipped %d already in the library\n", len(r.Added), len(r.Skipped))
	printRenamed(w, r.Renamed)
}
