package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/marcus/meeple/internal/models"
)

const snapshotColumns = `
	_id, collection_dirty_timestamp, status_dirty_timestamp, rating_dirty_timestamp,
	comment_dirty_timestamp, private_info_dirty_timestamp, wishlist_comment_dirty_timestamp,
	trade_condition_dirty_timestamp, want_parts_dirty_timestamp, has_parts_dirty_timestamp`

func scanSnapshot(row *sql.Row) (models.CollectionSnapshot, bool, error) {
	var s models.CollectionSnapshot
	err := row.Scan(
		&s.InternalID, &s.Dirty.Whole, &s.Dirty.Status, &s.Dirty.Rating,
		&s.Dirty.Comment, &s.Dirty.PrivateInfo, &s.Dirty.WishlistComment,
		&s.Dirty.TradeCondition, &s.Dirty.WantParts, &s.Dirty.HasParts,
	)
	if err == sql.ErrNoRows {
		return models.CollectionSnapshot{}, false, nil
	}
	if err != nil {
		return models.CollectionSnapshot{}, false, err
	}
	return s, true, nil
}

// SnapshotByCollectionID returns the dirty-state snapshot of the row with
// the given server-assigned collection ID.
func (db *DB) SnapshotByCollectionID(collectionID int) (models.CollectionSnapshot, bool, error) {
	row := db.conn.QueryRow(
		"SELECT"+snapshotColumns+" FROM collection WHERE collection_id = ?", collectionID)
	s, found, err := scanSnapshot(row)
	if err != nil {
		return s, false, fmt.Errorf("snapshot by collection id %d: %w", collectionID, err)
	}
	return s, found, nil
}

// SnapshotByGameID returns the dirty-state snapshot of a row for the given
// game that has no server-assigned collection ID yet. When several such
// rows exist the lowest internal ID wins, deterministically.
func (db *DB) SnapshotByGameID(gameID int) (models.CollectionSnapshot, bool, error) {
	row := db.conn.QueryRow(
		"SELECT"+snapshotColumns+` FROM collection
		 WHERE game_id = ? AND (collection_id IS NULL OR collection_id = 0)
		 ORDER BY _id LIMIT 1`, gameID)
	s, found, err := scanSnapshot(row)
	if err != nil {
		return s, false, fmt.Errorf("snapshot by game id %d: %w", gameID, err)
	}
	return s, found, nil
}

// InsertCollectionItem inserts a new collection row from a projection-built
// value set and returns its internal ID.
func (db *DB) InsertCollectionItem(values ColumnValues) (int64, error) {
	var id int64
	err := db.withWriteLock(func() error {
		query, args := values.InsertSQL("collection")
		res, err := db.conn.Exec(query, args...)
		if err != nil {
			return fmt.Errorf("insert collection item: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// UpdateCollectionItem updates the collection row with the given internal ID.
// A value set emptied entirely by dirty-shadow stripping is a no-op.
func (db *DB) UpdateCollectionItem(internalID int64, values ColumnValues) error {
	if values.Len() == 0 {
		return nil
	}
	return db.withWriteLock(func() error {
		query, args := values.UpdateSQL("collection", "_id = ?", internalID)
		if _, err := db.conn.Exec(query, args...); err != nil {
			return fmt.Errorf("update collection item %d: %w", internalID, err)
		}
		return nil
	})
}

// CollectionThumbnailURL returns the stored thumbnail URL of a row.
func (db *DB) CollectionThumbnailURL(internalID int64) (string, error) {
	var url string
	err := db.conn.QueryRow(
		"SELECT collection_thumbnail_url FROM collection WHERE _id = ?", internalID).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("thumbnail url for row %d: %w", internalID, err)
	}
	return url, nil
}

// CollectionIDsForGame returns the server-assigned collection IDs stored for
// a game. Rows without an assigned ID are not included; they are not
// addressable by the pruning pass.
func (db *DB) CollectionIDsForGame(gameID int) ([]int, error) {
	rows, err := db.conn.Query(`
		SELECT collection_id FROM collection
		WHERE game_id = ? AND collection_id IS NOT NULL AND collection_id != 0
		ORDER BY collection_id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("collection ids for game %d: %w", gameID, err)
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

// CollectionGameIDs returns the distinct game IDs that have at least one
// collection row, in ascending order.
func (db *DB) CollectionGameIDs() ([]int, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT game_id FROM collection ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("collection game ids: %w", err)
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

// DirtyCollectionIDs returns the assigned collection IDs of rows for a game
// that carry any dirty timestamp. Such rows are mid-edit and the pruner
// must never remove them even when absent from the fresh remote set.
func (db *DB) DirtyCollectionIDs(gameID int) ([]int, error) {
	rows, err := db.conn.Query(`
		SELECT collection_id FROM collection
		WHERE game_id = ? AND collection_id IS NOT NULL AND collection_id != 0
		  AND (collection_dirty_timestamp != 0 OR status_dirty_timestamp != 0
		    OR rating_dirty_timestamp != 0 OR comment_dirty_timestamp != 0
		    OR private_info_dirty_timestamp != 0 OR wishlist_comment_dirty_timestamp != 0
		    OR trade_condition_dirty_timestamp != 0 OR want_parts_dirty_timestamp != 0
		    OR has_parts_dirty_timestamp != 0)
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("dirty collection ids for game %d: %w", gameID, err)
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

// DeleteCollectionItem deletes the row with the given server-assigned
// collection ID and returns the number of rows removed (0 or 1).
func (db *DB) DeleteCollectionItem(collectionID int) (int, error) {
	var deleted int
	err := db.withWriteLock(func() error {
		res, err := db.conn.Exec("DELETE FROM collection WHERE collection_id = ?", collectionID)
		if err != nil {
			return fmt.Errorf("delete collection item %d: %w", collectionID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = int(n)
		return nil
	})
	return deleted, err
}

const entryColumns = `
	_id, game_id, collection_id, collection_name, collection_sort_name,
	status_own, status_prevowned, status_fortrade, status_want, status_wanttoplay,
	status_wanttobuy, status_wishlist, status_wishlist_priority, status_preordered,
	rating, comment, condition, wantparts_list, hasparts_list, wishlist_comment,
	collection_year_published, collection_image_url, collection_thumbnail_url,
	private_info_price_paid_currency, private_info_price_paid,
	private_info_current_value_currency, private_info_current_value,
	private_info_quantity, private_info_acquisition_date, private_info_acquired_from,
	private_info_comment, last_modified, updated, updated_list,
	collection_dirty_timestamp, status_dirty_timestamp, rating_dirty_timestamp,
	comment_dirty_timestamp, private_info_dirty_timestamp, wishlist_comment_dirty_timestamp,
	trade_condition_dirty_timestamp, want_parts_dirty_timestamp, has_parts_dirty_timestamp`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.CollectionEntry, error) {
	var e models.CollectionEntry
	var collectionID sql.NullInt64
	err := row.Scan(
		&e.InternalID, &e.GameID, &collectionID, &e.Name, &e.SortName,
		&e.Status.Own, &e.Status.PreviouslyOwned, &e.Status.ForTrade, &e.Status.Want, &e.Status.WantToPlay,
		&e.Status.WantToBuy, &e.Status.Wishlist, &e.Status.WishlistPriority, &e.Status.PreOrdered,
		&e.Rating, &e.Comment, &e.ConditionText, &e.WantPartsList, &e.HasPartsList, &e.WishlistComment,
		&e.YearPublished, &e.ImageURL, &e.ThumbnailURL,
		&e.PricePaidCurrency, &e.PricePaid,
		&e.CurrentValueCurrency, &e.CurrentValue,
		&e.Quantity, &e.AcquisitionDate, &e.AcquiredFrom,
		&e.PrivateComment, &e.LastModified, &e.Updated, &e.UpdatedList,
		&e.Dirty.Whole, &e.Dirty.Status, &e.Dirty.Rating,
		&e.Dirty.Comment, &e.Dirty.PrivateInfo, &e.Dirty.WishlistComment,
		&e.Dirty.TradeCondition, &e.Dirty.WantParts, &e.Dirty.HasParts,
	)
	if err != nil {
		return nil, err
	}
	if collectionID.Valid && collectionID.Int64 != 0 {
		e.CollectionID = int(collectionID.Int64)
	} else {
		e.CollectionID = models.InvalidID
	}
	return &e, nil
}

// GetEntry retrieves a collection row by internal ID.
func (db *DB) GetEntry(internalID int64) (*models.CollectionEntry, error) {
	row := db.conn.QueryRow("SELECT"+entryColumns+" FROM collection WHERE _id = ?", internalID)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("collection entry not found: %d", internalID)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEntryByCollectionID retrieves a collection row by server-assigned ID.
func (db *DB) GetEntryByCollectionID(collectionID int) (*models.CollectionEntry, error) {
	row := db.conn.QueryRow("SELECT"+entryColumns+" FROM collection WHERE collection_id = ?", collectionID)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("collection entry not found: collection id %d", collectionID)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEntriesOptions filters ListEntries.
type ListEntriesOptions struct {
	Status models.Status // restrict to one status category; empty = all
	GameID int           // restrict to one game; 0 = all
	Limit  int
}

// ListEntries returns collection rows ordered by sort name.
func (db *DB) ListEntries(opts ListEntriesOptions) ([]*models.CollectionEntry, error) {
	query := "SELECT" + entryColumns + " FROM collection"
	var conds []string
	var args []any

	switch opts.Status {
	case "":
		// no status filter
	case models.StatusPlayed:
		conds = append(conds, "game_id IN (SELECT game_id FROM games WHERE num_plays > 0)")
	default:
		conds = append(conds, fmt.Sprintf("status_%s = 1", opts.Status))
	}
	if opts.GameID != 0 {
		conds = append(conds, "game_id = ?")
		args = append(args, opts.GameID)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY collection_sort_name, _id"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CollectionEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddLocalEntry creates a collection row for a game the server doesn't know
// about yet. The whole-record dirty stamp keeps sync from touching it until
// the server assigns a collection ID; a minimal game row is created when
// none exists.
func (db *DB) AddLocalEntry(gameID int, name string) (int64, error) {
	exists, err := db.GameExists(gameID)
	if err != nil {
		return 0, err
	}
	if !exists {
		var g ColumnValues
		g.Set(ColGameID, gameID)
		g.Set(ColGameName, name)
		g.Set(ColGameSortName, name)
		if err := db.InsertGame(g); err != nil {
			return 0, err
		}
	}

	var v ColumnValues
	v.Set(ColGameID, gameID)
	v.Set(ColCollectionName, name)
	v.Set(ColCollectionSortName, name)
	v.Set(ColCollectionDirtyTimestamp, time.Now().UnixMilli())
	return db.InsertCollectionItem(v)
}

// SetRating stores a local rating edit and stamps the rating group dirty.
// The edit wins over remote values until the outbound sync clears the stamp.
func (db *DB) SetRating(internalID int64, rating float64) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			UPDATE collection SET rating = ?, rating_dirty_timestamp = ? WHERE _id = ?
		`, rating, time.Now().UnixMilli(), internalID)
		if err != nil {
			return fmt.Errorf("set rating on row %d: %w", internalID, err)
		}
		return nil
	})
}

// SetComment stores a local comment edit and stamps the comment group dirty.
func (db *DB) SetComment(internalID int64, comment string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			UPDATE collection SET comment = ?, comment_dirty_timestamp = ? WHERE _id = ?
		`, comment, time.Now().UnixMilli(), internalID)
		if err != nil {
			return fmt.Errorf("set comment on row %d: %w", internalID, err)
		}
		return nil
	})
}

// SetStatusFlags stores a local status edit and stamps the status group dirty.
func (db *DB) SetStatusFlags(internalID int64, flags models.StatusFlags) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			UPDATE collection SET
				status_own = ?, status_prevowned = ?, status_fortrade = ?, status_want = ?,
				status_wanttoplay = ?, status_wanttobuy = ?, status_wishlist = ?,
				status_wishlist_priority = ?, status_preordered = ?,
				status_dirty_timestamp = ?
			WHERE _id = ?
		`, btoi(flags.Own), btoi(flags.PreviouslyOwned), btoi(flags.ForTrade), btoi(flags.Want),
			btoi(flags.WantToPlay), btoi(flags.WantToBuy), btoi(flags.Wishlist),
			flags.WishlistPriority, btoi(flags.PreOrdered),
			time.Now().UnixMilli(), internalID)
		if err != nil {
			return fmt.Errorf("set status flags on row %d: %w", internalID, err)
		}
		return nil
	})
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
