// internal/library/testutil_test.go
package library

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/whatch/internal/migrations"
	"github.com/vmunix/whatch/pkg/medianame"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func movie(path, title string) *Item {
	return &Item{Path: path, MediaType: medianame.Movie, DisplayTitle: title}
}

func episode(path, series, index string, watched bool) *Item {
	return &Item{
		Path:         path,
		MediaType:    medianame.TV,
		DisplayTitle: path,
		IsSeries:     true,
		SeriesTitle:  series,
		SeriesIndex:  index,
		Watched:      watched,
	}
}

func localTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation(AirTimeLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}
