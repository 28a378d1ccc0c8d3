package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vmunix/whatch/internal/config"
	"github.com/vmunix/whatch/internal/library"
	"github.com/vmunix/whatch/internal/migrations"
)

// openDB opens the sqlite library at path, creating it and its directory as
// needed.
func openDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// openLibrary opens the configured library. The returned close func must be
// called when done.
func openLibrary(cfg *config.Config) (*library.Store, func(), error) {
	db, err := openDB(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return library.NewStore(db), func() { _ = db.Close() }, nil
}
