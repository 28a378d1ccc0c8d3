package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vmunix/whatch/internal/config"
	"github.com/vmunix/whatch/internal/importtree"
	"github.com/vmunix/whatch/internal/scan"
	"github.com/vmunix/whatch/pkg/medianame"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Show the import tree for folders and files",
	Long:  "Walks the selected paths and prints the rows an import would create, with the inferred defaults. Nothing is written.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	tree, err := buildTree(cmd.Context(), afero.NewOsFs(), cfg, log, args)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), treeRows(tree))
	}
	printTree(cmd.OutOrStdout(), tree)
	return nil
}

// buildTree walks paths on fs and builds the sorted, normalized import tree.
func buildTree(ctx context.Context, fs afero.Fs, cfg *config.Config, log *slog.Logger, paths []string) (*importtree.Tree, error) {
	entries, err := scan.NewWalker(fs, log).Walk(ctx, paths)
	if err != nil {
		return nil, err
	}
	return importtree.Build(entries, importtree.Options{
		Parser:        medianame.NewParser(cfg.ParserTables()),
		GenericTitles: cfg.Import.GenericSeriesTitles,
	}), nil
}

// TreeRow is an import row with its depth, for JSON output.
type TreeRow struct {
	importtree.Row
	Depth int `json:"depth"`
}

func treeRows(tree *importtree.Tree) []TreeRow {
	rows := make([]TreeRow, 0, tree.Len())
	tree.Walk(func(r importtree.Row, depth int) bool {
		rows = append(rows, TreeRow{Row: r, Depth: depth})
		return true
	})
	return rows
}

func printTree(w io.Writer, tree *importtree.Tree) {
	tree.Walk(func(r importtree.Row, depth int) bool {
		indent := strings.Repeat("  ", depth)
		name := r.Name
		if r.IsFolder {
			name += "/"
		}
		fmt.Fprintf(w, "%s%s  [%s", indent, name, r.MediaType)
		if r.IsSeries {
			fmt.Fprintf(w, " series=%q", r.SeriesTitle)
		}
		if r.SeriesIndex != "" {
			fmt.Fprintf(w, " index=%s", r.SeriesIndex)
		}
		if !r.IsFolder && r.DisplayTitle != "" {
			fmt.Fprintf(w, " title=%q", r.DisplayTitle)
		}
		if r.Excluded {
			fmt.Fprint(w, " excluded")
		}
		fmt.Fprintln(w, "]")
		return true
	})
	fmt.Fprintf(w, "\n%d files\n", tree.FileCount())
}
