package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/whatch/pkg/medianame"
)

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store provides access to library items.
type Store struct {
	db *sql.DB
}

// NewStore creates a new library store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin starts a transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a database transaction with the same methods as Store.
type Tx struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

const itemColumns = "id, path, media_type, display_title, is_series, series_title, series_index, added_at, watched, is_placeholder, air_datetime, currently_airing"

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*Item, error) {
	it := &Item{}
	var addedAt string
	var airDateTime sql.NullString
	if err := row.Scan(&it.ID, &it.Path, &it.MediaType, &it.DisplayTitle, &it.IsSeries, &it.SeriesTitle,
		&it.SeriesIndex, &addedAt, &it.Watched, &it.IsPlaceholder, &airDateTime, &it.CurrentlyAiring); err != nil {
		return nil, err
	}
	if t, err := time.Parse(addedAtLayout, addedAt); err == nil {
		it.AddedAt = t
	}
	it.AirDateTime = airDateTime.String
	return it, nil
}

// airArg stores an empty air time as NULL.
func airArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// placeholders returns "?, ?, ..." for n bind parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func pathArgs(paths []string) []any {
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}
	return args
}

func addItem(q querier, it *Item) (bool, error) {
	now := time.Now().UTC().Truncate(time.Second)
	result, err := q.Exec(`
		INSERT INTO library_items (path, media_type, display_title, is_series, series_title, series_index, added_at, watched, is_placeholder, air_datetime, currently_airing)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO NOTHING`,
		it.Path, string(it.MediaType), it.DisplayTitle, it.IsSeries, it.SeriesTitle, it.SeriesIndex,
		now.Format(addedAtLayout), it.Watched, it.IsPlaceholder, airArg(it.AirDateTime), it.CurrentlyAiring,
	)
	if err != nil {
		return false, fmt.Errorf("insert item %s: %w", it.Path, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("get last insert id: %w", err)
	}
	it.ID = id
	it.AddedAt = now
	return true, nil
}

// AddItem inserts an item unless its path is already in the library.
// Reports whether a row was inserted; on insert, sets ID and AddedAt.
func (s *Store) AddItem(it *Item) (bool, error) { return addItem(s.db, it) }

// AddItem inserts an item within a transaction.
func (t *Tx) AddItem(it *Item) (bool, error) { return addItem(t.tx, it) }

func getByPath(q querier, path string) (*Item, error) {
	it, err := scanItem(q.QueryRow("SELECT "+itemColumns+" FROM library_items WHERE path = ?", path))
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", path, mapSQLiteError(err))
	}
	return it, nil
}

// GetByPath retrieves an item by its path.
// Returns ErrNotFound if the path is not in the library.
func (s *Store) GetByPath(path string) (*Item, error) { return getByPath(s.db, path) }

// GetByPath retrieves an item by its path within a transaction.
func (t *Tx) GetByPath(path string) (*Item, error) { return getByPath(t.tx, path) }

func listItems(q querier, f ItemFilter) ([]*Item, int, error) {
	var conditions []string
	var args []any

	if f.MediaType != nil {
		conditions = append(conditions, "media_type = ?")
		args = append(args, string(*f.MediaType))
	}
	if f.SeriesTitle != nil {
		conditions = append(conditions, "series_title = ?")
		args = append(args, *f.SeriesTitle)
	}
	if f.IsSeries != nil {
		conditions = append(conditions, "is_series = ?")
		args = append(args, *f.IsSeries)
	}
	if f.Watched != nil {
		conditions = append(conditions, "watched = ?")
		args = append(args, *f.Watched)
	}
	if f.IsPlaceholder != nil {
		conditions = append(conditions, "is_placeholder = ?")
		args = append(args, *f.IsPlaceholder)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM library_items "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := "SELECT " + itemColumns + " FROM library_items " + whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}

	return results, total, nil
}

// ListItems returns items matching the filter in insertion order.
// Returns (results, totalCount, error).
func (s *Store) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(s.db, f) }

// ListItems returns items matching the filter within a transaction.
func (t *Tx) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(t.tx, f) }

func updateItems(q querier, items []*Item) error {
	for _, it := range items {
		result, err := q.Exec(`
			UPDATE library_items SET media_type = ?, display_title = ?, is_series = ?, series_title = ?, series_index = ?, air_datetime = ?
			WHERE path = ?`,
			string(it.MediaType), it.DisplayTitle, it.IsSeries, it.SeriesTitle, it.SeriesIndex, airArg(it.AirDateTime), it.Path,
		)
		if err != nil {
			return fmt.Errorf("update item %s: %w", it.Path, mapSQLiteError(err))
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("update item %s: %w", it.Path, ErrNotFound)
		}
	}
	return nil
}

// UpdateItems rewrites the editable fields of each item, matched by path.
// Returns ErrNotFound for the first path that is not in the library.
func (s *Store) UpdateItems(items []*Item) error { return updateItems(s.db, items) }

// UpdateItems rewrites items within a transaction.
func (t *Tx) UpdateItems(items []*Item) error { return updateItems(t.tx, items) }

func setWatched(q querier, paths []string, watched bool) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	args := append([]any{watched}, pathArgs(paths)...)
	result, err := q.Exec("UPDATE library_items SET watched = ? WHERE path IN ("+placeholders(len(paths))+")", args...)
	if err != nil {
		return 0, fmt.Errorf("set watched: %w", mapSQLiteError(err))
	}
	return result.RowsAffected()
}

// SetWatched marks the given paths watched or unwatched.
// Returns the number of items changed; unknown paths are ignored.
func (s *Store) SetWatched(paths []string, watched bool) (int64, error) {
	return setWatched(s.db, paths, watched)
}

// SetWatched marks paths within a transaction.
func (t *Tx) SetWatched(paths []string, watched bool) (int64, error) {
	return setWatched(t.tx, paths, watched)
}

func assignPlaceholder(q querier, placeholderPath, filePath string) error {
	result, err := q.Exec(`
		UPDATE library_items SET path = ?, is_placeholder = 0
		WHERE path = ? AND is_placeholder = 1`,
		filePath, placeholderPath,
	)
	if err != nil {
		return fmt.Errorf("assign %s: %w", placeholderPath, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assign %s: %w", placeholderPath, ErrNotFound)
	}
	return nil
}

// AssignPlaceholder turns a placeholder into a real item at filePath.
// Returns ErrNotFound if placeholderPath is not a placeholder and
// ErrDuplicate if filePath is already in the library.
func (s *Store) AssignPlaceholder(placeholderPath, filePath string) error {
	return assignPlaceholder(s.db, placeholderPath, filePath)
}

// AssignPlaceholder converts a placeholder within a transaction.
func (t *Tx) AssignPlaceholder(placeholderPath, filePath string) error {
	return assignPlaceholder(t.tx, placeholderPath, filePath)
}

func updateCurrentlyAiring(q querier, seriesTitle string, mt medianame.MediaType, airing bool) error {
	if seriesTitle == "" {
		return nil
	}
	_, err := q.Exec(`
		UPDATE library_items SET currently_airing = ?
		WHERE series_title = ? AND media_type = ? AND is_series = 1`,
		airing, seriesTitle, string(mt),
	)
	if err != nil {
		return fmt.Errorf("update airing %s: %w", seriesTitle, mapSQLiteError(err))
	}
	return nil
}

// UpdateCurrentlyAiring sets the airing flag on every item of a series.
// An empty series title is a no-op.
func (s *Store) UpdateCurrentlyAiring(seriesTitle string, mt medianame.MediaType, airing bool) error {
	return updateCurrentlyAiring(s.db, seriesTitle, mt, airing)
}

// UpdateCurrentlyAiring sets the airing flag within a transaction.
func (t *Tx) UpdateCurrentlyAiring(seriesTitle string, mt medianame.MediaType, airing bool) error {
	return updateCurrentlyAiring(t.tx, seriesTitle, mt, airing)
}

func deleteByPaths(q querier, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	result, err := q.Exec("DELETE FROM library_items WHERE path IN ("+placeholders(len(paths))+")", pathArgs(paths)...)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", mapSQLiteError(err))
	}
	return result.RowsAffected()
}

// DeleteByPaths removes the items at the given paths.
// This operation is idempotent - unknown paths are ignored.
func (s *Store) DeleteByPaths(paths []string) (int64, error) { return deleteByPaths(s.db, paths) }

// DeleteByPaths removes items within a transaction.
func (t *Tx) DeleteByPaths(paths []string) (int64, error) { return deleteByPaths(t.tx, paths) }

func seriesTitles(q querier, mt *medianame.MediaType) ([]string, error) {
	query := "SELECT DISTINCT series_title FROM library_items WHERE is_series = 1 AND series_title != ''"
	var args []any
	if mt != nil {
		query += " AND media_type = ?"
		args = append(args, string(*mt))
	}
	query += " ORDER BY series_title"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list series titles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan series title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series titles: %w", err)
	}
	return titles, nil
}

// SeriesTitles returns the distinct series titles in the library, optionally
// limited to one media type.
func (s *Store) SeriesTitles(mt *medianame.MediaType) ([]string, error) { return seriesTitles(s.db, mt) }

// SeriesTitles lists series titles within a transaction.
func (t *Tx) SeriesTitles(mt *medianame.MediaType) ([]string, error) { return seriesTitles(t.tx, mt) }

// AddItems inserts items in one transaction, skipping paths already in the
// library. Returns the paths that were inserted.
func (s *Store) AddItems(items []*Item) ([]string, error) {
	tx, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var added []string
	for _, it := range items {
		inserted, err := tx.AddItem(it)
		if err != nil {
			return nil, err
		}
		if inserted {
			added = append(added, it.Path)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit items: %w", err)
	}
	return added, nil
}
