// Package importer confirms an edited import tree into the library.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/vmunix/whatch/internal/importtree"
	"github.com/vmunix/whatch/internal/library"
	"github.com/vmunix/whatch/pkg/medianame"
)

// DefaultMatchThreshold is the Jaro-Winkler score a library title must reach
// to replace a parsed series title.
const DefaultMatchThreshold = 0.92

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks . Store

// Store is the library surface the importer needs.
type Store interface {
	SeriesTitles(mt *medianame.MediaType) ([]string, error)
	AddItems(items []*library.Item) ([]string, error)
}

// Config for the importer.
type Config struct {
	// MatchExisting snaps parsed series titles to the closest title already
	// in the library.
	MatchExisting bool
	Threshold     float64 // 0 means DefaultMatchThreshold
}

// Importer turns import-tree results into library items.
type Importer struct {
	store     Store
	match     bool
	threshold float64
	log       *slog.Logger
}

// New creates a new importer.
func New(store Store, cfg Config, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Importer{
		store:     store,
		match:     cfg.MatchExisting,
		threshold: threshold,
		log:       log.With("component", "importer"),
	}
}

// Result is the outcome of an import.
type Result struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped,omitempty"` // already in the library
	// Renamed maps parsed series titles to the library titles they were
	// matched to.
	Renamed map[string]string `json:"renamed,omitempty"`
}

// Plan converts the tree's results into library items without writing
// anything. Series titles are reconciled with the library when matching is
// enabled.
func (i *Importer) Plan(ctx context.Context, tree *importtree.Tree) ([]*library.Item, map[string]string, error) {
	if tree.FileCount() == 0 {
		return nil, nil, ErrNoVideoFiles
	}
	results := tree.Results()
	if len(results) == 0 {
		return nil, nil, ErrNothingToImport
	}

	items := lo.Map(results, func(r importtree.Result, _ int) *library.Item {
		return &library.Item{
			Path:         r.Path,
			MediaType:    r.MediaType,
			DisplayTitle: r.DisplayTitle,
			IsSeries:     r.IsSeries,
			SeriesTitle:  r.SeriesTitle,
			SeriesIndex:  r.SeriesIndex,
		}
	})
	if !i.match {
		return items, nil, nil
	}

	renamed, err := i.reconcile(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	return items, renamed, nil
}

// Import plans the tree and inserts the items in one transaction.
func (i *Importer) Import(ctx context.Context, tree *importtree.Tree) (*Result, error) {
	items, renamed, err := i.Plan(ctx, tree)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.log.Info("import started", "items", len(items))
	added, err := i.store.AddItems(items)
	if err != nil {
		return nil, fmt.Errorf("add items: %w", err)
	}

	addedSet := lo.SliceToMap(added, func(p string) (string, bool) { return p, true })
	result := &Result{Added: added, Renamed: renamed}
	for _, it := range items {
		if !addedSet[it.Path] {
			result.Skipped = append(result.Skipped, it.Path)
		}
	}
	i.log.Info("import complete", "added", len(result.Added), "skipped", len(result.Skipped))
	return result, nil
}

// reconcile rewrites each series title to its best library match at or
// above the threshold. Library titles are fetched once per media type.
func (i *Importer) reconcile(ctx context.Context, items []*library.Item) (map[string]string, error) {
	existing := map[medianame.MediaType][]string{}
	renamed := map[string]string{}
	decided := map[medianame.MediaType]map[string]string{}

	for _, it := range items {
		if !it.IsSeries || it.SeriesTitle == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		titles, ok := existing[it.MediaType]
		if !ok {
			mt := it.MediaType
			var err error
			titles, err = i.store.SeriesTitles(&mt)
			if err != nil {
				return nil, fmt.Errorf("list series titles: %w", err)
			}
			existing[mt] = titles
			decided[mt] = map[string]string{}
		}

		target, seen := decided[it.MediaType][it.SeriesTitle]
		if !seen {
			target = it.SeriesTitle
			m := MatchSeriesTitle(it.SeriesTitle, titles)
			if m.Title != "" && m.Score >= i.threshold {
				target = m.Title
			}
			decided[it.MediaType][it.SeriesTitle] = target
			if target != it.SeriesTitle {
				i.log.Debug("series title matched", "parsed", it.SeriesTitle, "library", target, "score", m.Score)
				renamed[it.SeriesTitle] = target
			}
		}
		it.SeriesTitle = target
	}

	if len(renamed) == 0 {
		return nil, nil
	}
	return renamed, nil
}
