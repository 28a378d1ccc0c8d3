// Package scan enumerates the folders and files selected for import.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// ErrNotExist is returned when none of the selected paths exist.
var ErrNotExist = errors.New("no selected path exists")

// Entry is one enumerated file-system entry.
type Entry struct {
	Path   string
	IsDir  bool
	Root   string // the selected path this entry was found under
	Parent string // containing directory; empty for a selected path
}

// IsRoot reports whether the entry is one of the selected paths.
func (e Entry) IsRoot() bool {
	return e.Parent == ""
}

// Walker enumerates selected paths on a file system.
type Walker struct {
	fs  afero.Fs
	log *slog.Logger
}

// NewWalker creates a walker over fs. A nil fs walks the OS file system.
func NewWalker(fs afero.Fs, log *slog.Logger) *Walker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Walker{fs: fs, log: log.With("component", "scan")}
}

// Walk returns every selected path followed by its descendants in lexical
// order. Duplicate selections are walked once. Missing paths and unreadable
// subdirectories are logged and skipped; ErrNotExist is returned only when
// nothing could be walked.
func (w *Walker) Walk(ctx context.Context, paths []string) ([]Entry, error) {
	selected := lo.Uniq(lo.Map(paths, func(p string, _ int) string {
		return filepath.Clean(p)
	}))

	var entries []Entry
	walked := 0
	for _, root := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := w.fs.Stat(root)
		if err != nil {
			w.log.Warn("skipping selected path", "path", root, "error", err)
			continue
		}
		walked++

		if !info.IsDir() {
			entries = append(entries, Entry{Path: root, Root: root})
			continue
		}

		found, err := w.walkDir(ctx, root)
		if err != nil {
			return nil, err
		}
		w.log.Debug("walked folder", "path", root, "entries", len(found))
		entries = append(entries, found...)
	}

	if walked == 0 && len(selected) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrNotExist, selected)
	}
	return entries, nil
}

func (w *Walker) walkDir(ctx context.Context, root string) ([]Entry, error) {
	var entries []Entry
	err := afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			w.log.Warn("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		entry := Entry{Path: path, IsDir: info.IsDir(), Root: root}
		if path != root {
			entry.Parent = filepath.Dir(path)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return entries, nil
}
