package persister

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
)

// testStore implements Store over a bare in-memory database so persister
// behavior can be asserted row by row. It records thumbnail deletions for
// the cleanup-hook tests.
type testStore struct {
	conn          *sql.DB
	deletedThumbs []string
}

const testSchema = `
CREATE TABLE games (
    game_id INTEGER PRIMARY KEY,
    game_name TEXT NOT NULL,
    game_sort_name TEXT NOT NULL DEFAULT '',
    num_plays INTEGER DEFAULT 0,
    min_players INTEGER DEFAULT 0,
    max_players INTEGER DEFAULT 0,
    playing_time INTEGER DEFAULT 0,
    min_playing_time INTEGER DEFAULT 0,
    max_playing_time INTEGER DEFAULT 0,
    number_owned INTEGER DEFAULT 0,
    updated_list INTEGER DEFAULT 0
);
CREATE TABLE collection (
    _id INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id INTEGER NOT NULL,
    collection_id INTEGER,
    collection_name TEXT DEFAULT '',
    collection_sort_name TEXT DEFAULT '',
    status_own INTEGER DEFAULT 0,
    status_prevowned INTEGER DEFAULT 0,
    status_fortrade INTEGER DEFAULT 0,
    status_want INTEGER DEFAULT 0,
    status_wanttoplay INTEGER DEFAULT 0,
    status_wanttobuy INTEGER DEFAULT 0,
    status_wishlist INTEGER DEFAULT 0,
    status_wishlist_priority INTEGER DEFAULT 0,
    status_preordered INTEGER DEFAULT 0,
    rating REAL DEFAULT 0,
    comment TEXT DEFAULT '',
    condition TEXT DEFAULT '',
    wantparts_list TEXT DEFAULT '',
    hasparts_list TEXT DEFAULT '',
    wishlist_comment TEXT DEFAULT '',
    collection_year_published INTEGER DEFAULT 0,
    collection_image_url TEXT DEFAULT '',
    collection_thumbnail_url TEXT DEFAULT '',
    private_info_price_paid_currency TEXT DEFAULT '',
    private_info_price_paid REAL DEFAULT 0,
    private_info_current_value_currency TEXT DEFAULT '',
    private_info_current_value REAL DEFAULT 0,
    private_info_quantity INTEGER DEFAULT 0,
    private_info_acquisition_date TEXT DEFAULT '',
    private_info_acquired_from TEXT DEFAULT '',
    private_info_comment TEXT DEFAULT '',
    last_modified INTEGER DEFAULT 0,
    updated INTEGER DEFAULT 0,
    updated_list INTEGER DEFAULT 0,
    collection_dirty_timestamp INTEGER DEFAULT 0,
    status_dirty_timestamp INTEGER DEFAULT 0,
    rating_dirty_timestamp INTEGER DEFAULT 0,
    comment_dirty_timestamp INTEGER DEFAULT 0,
    private_info_dirty_timestamp INTEGER DEFAULT 0,
    wishlist_comment_dirty_timestamp INTEGER DEFAULT 0,
    trade_condition_dirty_timestamp INTEGER DEFAULT 0,
    want_parts_dirty_timestamp INTEGER DEFAULT 0,
    has_parts_dirty_timestamp INTEGER DEFAULT 0
);
`

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := conn.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testStore{conn: conn}
}

func (s *testStore) GameExists(gameID int) (bool, error) {
	var count int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM games WHERE game_id = ?", gameID).Scan(&count)
	return count > 0, err
}

func (s *testStore) InsertGame(values db.ColumnValues) error {
	query, args := values.InsertSQL("games")
	_, err := s.conn.Exec(query, args...)
	return err
}

func (s *testStore) UpdateGame(gameID int, values db.ColumnValues) error {
	query, args := values.UpdateSQL("games", "game_id = ?", gameID)
	_, err := s.conn.Exec(query, args...)
	return err
}

const testSnapshotColumns = `
	_id, collection_dirty_timestamp, status_dirty_timestamp, rating_dirty_timestamp,
	comment_dirty_timestamp, private_info_dirty_timestamp, wishlist_comment_dirty_timestamp,
	trade_condition_dirty_timestamp, want_parts_dirty_timestamp, has_parts_dirty_timestamp`

func (s *testStore) scanSnapshot(row *sql.Row) (models.CollectionSnapshot, bool, error) {
	var snap models.CollectionSnapshot
	err := row.Scan(
		&snap.InternalID, &snap.Dirty.Whole, &snap.Dirty.Status, &snap.Dirty.Rating,
		&snap.Dirty.Comment, &snap.Dirty.PrivateInfo, &snap.Dirty.WishlistComment,
		&snap.Dirty.TradeCondition, &snap.Dirty.WantParts, &snap.Dirty.HasParts,
	)
	if err == sql.ErrNoRows {
		return models.CollectionSnapshot{}, false, nil
	}
	if err != nil {
		return models.CollectionSnapshot{}, false, err
	}
	return snap, true, nil
}

func (s *testStore) SnapshotByCollectionID(collectionID int) (models.CollectionSnapshot, bool, error) {
	return s.scanSnapshot(s.conn.QueryRow(
		"SELECT"+testSnapshotColumns+" FROM collection WHERE collection_id = ?", collectionID))
}

func (s *testStore) SnapshotByGameID(gameID int) (models.CollectionSnapshot, bool, error) {
	return s.scanSnapshot(s.conn.QueryRow(
		"SELECT"+testSnapshotColumns+` FROM collection
		 WHERE game_id = ? AND (collection_id IS NULL OR collection_id = 0)
		 ORDER BY _id LIMIT 1`, gameID))
}

func (s *testStore) InsertCollectionItem(values db.ColumnValues) (int64, error) {
	query, args := values.InsertSQL("collection")
	res, err := s.conn.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *testStore) UpdateCollectionItem(internalID int64, values db.ColumnValues) error {
	if values.Len() == 0 {
		return nil
	}
	query, args := values.UpdateSQL("collection", "_id = ?", internalID)
	_, err := s.conn.Exec(query, args...)
	return err
}

func (s *testStore) CollectionThumbnailURL(internalID int64) (string, error) {
	var url string
	err := s.conn.QueryRow(
		"SELECT collection_thumbnail_url FROM collection WHERE _id = ?", internalID).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return url, err
}

func (s *testStore) CollectionIDsForGame(gameID int) ([]int, error) {
	rows, err := s.conn.Query(`
		SELECT collection_id FROM collection
		WHERE game_id = ? AND collection_id IS NOT NULL AND collection_id != 0
		ORDER BY collection_id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *testStore) DeleteCollectionItem(collectionID int) (int, error) {
	res, err := s.conn.Exec("DELETE FROM collection WHERE collection_id = ?", collectionID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *testStore) DeleteThumbnail(filename string) error {
	s.deletedThumbs = append(s.deletedThumbs, filename)
	return nil
}

// --- row helpers for assertions ---

func (s *testStore) countRows(t *testing.T, table string) int {
	t.Helper()
	var count int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

// insertRow seeds a collection row directly. collectionID 0 stores NULL.
func (s *testStore) insertRow(t *testing.T, gameID, collectionID int, dirty models.DirtyStamps, set func(*db.ColumnValues)) int64 {
	t.Helper()
	var v db.ColumnValues
	v.Set(db.ColGameID, gameID)
	if collectionID != 0 {
		v.Set(db.ColCollectionID, collectionID)
	}
	v.Set("collection_dirty_timestamp", dirty.Whole)
	v.Set("status_dirty_timestamp", dirty.Status)
	v.Set("rating_dirty_timestamp", dirty.Rating)
	v.Set("comment_dirty_timestamp", dirty.Comment)
	v.Set("private_info_dirty_timestamp", dirty.PrivateInfo)
	v.Set("wishlist_comment_dirty_timestamp", dirty.WishlistComment)
	v.Set("trade_condition_dirty_timestamp", dirty.TradeCondition)
	v.Set("want_parts_dirty_timestamp", dirty.WantParts)
	v.Set("has_parts_dirty_timestamp", dirty.HasParts)
	if set != nil {
		set(&v)
	}
	id, err := s.InsertCollectionItem(v)
	if err != nil {
		t.Fatalf("seed collection row: %v", err)
	}
	return id
}

// fieldOf reads a single column of a collection row into dest.
func (s *testStore) fieldOf(t *testing.T, internalID int64, column string, dest any) {
	t.Helper()
	query := fmt.Sprintf("SELECT %s FROM collection WHERE _id = ?", column)
	if err := s.conn.QueryRow(query, internalID).Scan(dest); err != nil {
		t.Fatalf("read %s of row %d: %v", column, internalID, err)
	}
}
