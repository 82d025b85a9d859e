package library

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/grovetools/shelf/errors"
	"github.com/grovetools/shelf/logging"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS collections (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	name       TEXT NOT NULL,
	parent_key TEXT NOT NULL DEFAULT '',
	sort_index INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (scope, key)
);

CREATE TABLE IF NOT EXISTS items (
	scope          TEXT NOT NULL,
	id             TEXT NOT NULL,
	title          TEXT NOT NULL,
	collection_key TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (scope, id)
);

CREATE INDEX IF NOT EXISTS idx_items_collection ON items (scope, collection_key);
`

// Store is the SQLite-backed library: collections organized as a keyed
// hierarchy plus the items filed into them. The store is also the change
// feed producer: every committed mutation broadcasts an Updated
// notification to live subscriptions (see feed.go), and an optional file
// watcher picks up writes from other processes (see watcher.go).
type Store struct {
	db     *sql.DB
	path   string
	logger *logrus.Entry

	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	watcher *dbWatcher
	closed  bool
}

// Open opens (creating if necessary) the library database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.LibraryOpen(path, err)
	}
	// Single writer at a time keeps broadcast ordering trivial.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, errors.LibraryOpen(path, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, errors.LibraryOpen(path, err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: logging.NewLogger("library"),
		subs:   make(map[*Subscription]struct{}),
	}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close stops the watcher, closes all live subscriptions, and closes the
// database.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	w := s.watcher
	s.watcher = nil
	for sub := range s.subs {
		sub.closeLocked()
		delete(s.subs, sub)
	}
	s.mu.Unlock()
	// Stopped outside the lock: the watcher goroutine may be blocked on
	// store.mu inside a broadcast.
	if w != nil {
		w.stop()
	}
	return s.db.Close()
}

// Collections returns the raw record set for a scope, ordered by sort index
// then name. Item counts are not computed; use CollectionsWithCounts when
// they are needed for display.
func (s *Store) Collections(ctx context.Context, scope Scope) ([]CollectionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, parent_key, sort_index
		FROM collections
		WHERE scope = ?
		ORDER BY sort_index, name`, string(scope))
	if err != nil {
		return nil, errors.LibraryQuery(string(scope), err)
	}
	defer rows.Close()

	var out []CollectionRecord
	for rows.Next() {
		var r CollectionRecord
		if err := rows.Scan(&r.Key, &r.Name, &r.ParentKey, &r.SortIndex); err != nil {
			return nil, errors.LibraryQuery(string(scope), err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.LibraryQuery(string(scope), err)
	}
	return out, nil
}

// CollectionsWithCounts is Collections plus a per-collection item count
// aggregate. More expensive; callers that do not display counts should use
// Collections.
func (s *Store) CollectionsWithCounts(ctx context.Context, scope Scope) ([]CollectionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.key, c.name, c.parent_key, c.sort_index, COUNT(i.id)
		FROM collections c
		LEFT JOIN items i ON i.scope = c.scope AND i.collection_key = c.key
		WHERE c.scope = ?
		GROUP BY c.scope, c.key
		ORDER BY c.sort_index, c.name`, string(scope))
	if err != nil {
		return nil, errors.LibraryQuery(string(scope), err)
	}
	defer rows.Close()

	var out []CollectionRecord
	for rows.Next() {
		var r CollectionRecord
		if err := rows.Scan(&r.Key, &r.Name, &r.ParentKey, &r.SortIndex, &r.ItemCount); err != nil {
			return nil, errors.LibraryQuery(string(scope), err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.LibraryQuery(string(scope), err)
	}
	return out, nil
}

// Items returns the items of a scope, optionally restricted to one
// collection key ("" means unsorted items).
func (s *Store) Items(ctx context.Context, scope Scope) ([]ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, collection_key FROM items WHERE scope = ? ORDER BY title`, string(scope))
	if err != nil {
		return nil, errors.LibraryQuery(string(scope), err)
	}
	defer rows.Close()

	var out []ItemRecord
	for rows.Next() {
		var r ItemRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.CollectionKey); err != nil {
			return nil, errors.LibraryQuery(string(scope), err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateCollection inserts a new collection. parentKey may be empty for a
// top-level collection.
func (s *Store) CreateCollection(ctx context.Context, scope Scope, key, name, parentKey string) error {
	if key == "" || name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "collection key and name are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (scope, key, name, parent_key, sort_index)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(sort_index), 0) + 1 FROM collections WHERE scope = ?))`,
		string(scope), key, name, parentKey, string(scope))
	if err != nil {
		if isUniqueViolation(err) {
			return errors.CollectionExists(key)
		}
		return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to create collection").
			WithDetail("key", key)
	}
	s.broadcast(scope)
	return nil
}

// RenameCollection changes a collection's display name.
func (s *Store) RenameCollection(ctx context.Context, scope Scope, key, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE collections SET name = ? WHERE scope = ? AND key = ?`, name, string(scope), key)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to rename collection").
			WithDetail("key", key)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.CollectionMissing(key)
	}
	s.broadcast(scope)
	return nil
}

// DeleteCollection removes a collection and its whole subtree. Items filed
// into removed collections become unsorted.
func (s *Store) DeleteCollection(ctx context.Context, scope Scope, key string) error {
	doomed, err := s.subtreeKeys(ctx, scope, key)
	if err != nil {
		return err
	}
	if len(doomed) == 0 {
		return errors.CollectionMissing(key)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to begin delete")
	}
	defer tx.Rollback()

	for _, k := range doomed {
		if _, err := tx.ExecContext(ctx, `
			UPDATE items SET collection_key = '' WHERE scope = ? AND collection_key = ?`,
			string(scope), k); err != nil {
			return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to unfile items").WithDetail("key", k)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM collections WHERE scope = ? AND key = ?`, string(scope), k); err != nil {
			return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to delete collection").WithDetail("key", k)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to commit delete")
	}
	s.broadcast(scope)
	return nil
}

// AddItem inserts a library item, unsorted.
func (s *Store) AddItem(ctx context.Context, scope Scope, id, title string) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidInput, "item id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (scope, id, title) VALUES (?, ?, ?)`, string(scope), id, title)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to add item").WithDetail("item", id)
	}
	return nil
}

// MoveItem files an item into a collection. An empty collectionKey moves it
// back to unsorted.
func (s *Store) MoveItem(ctx context.Context, scope Scope, itemID, collectionKey string) error {
	if collectionKey != "" {
		var one int
		err := s.db.QueryRowContext(ctx, `
			SELECT 1 FROM collections WHERE scope = ? AND key = ?`, string(scope), collectionKey).Scan(&one)
		if err == sql.ErrNoRows {
			return errors.CollectionMissing(collectionKey)
		}
		if err != nil {
			return errors.LibraryQuery(string(scope), err)
		}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET collection_key = ? WHERE scope = ? AND id = ?`,
		collectionKey, string(scope), itemID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLibraryMutation, "failed to move item").WithDetail("item", itemID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ItemMissing(itemID)
	}
	return nil
}

// subtreeKeys returns key and every descendant key, breadth-first.
func (s *Store) subtreeKeys(ctx context.Context, scope Scope, key string) ([]string, error) {
	records, err := s.Collections(ctx, scope)
	if err != nil {
		return nil, err
	}
	byParent := make(map[string][]string)
	exists := false
	for _, r := range records {
		byParent[r.ParentKey] = append(byParent[r.ParentKey], r.Key)
		if r.Key == key {
			exists = true
		}
	}
	if !exists {
		return nil, nil
	}
	out := []string{key}
	for i := 0; i < len(out); i++ {
		out = append(out, byParent[out[i]]...)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite reports constraint failures in the error text;
	// there is no exported error type to match on.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "constraint failed")
}
