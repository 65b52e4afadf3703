package db

import (
	"fmt"
	"strings"
)

// Column is a typed column name. Projections and dirty-shadow tables refer
// to columns through these constants so a typo fails review, not a sync.
type Column string

// games table columns
const (
	ColGameID         Column = "game_id"
	ColUpdatedList    Column = "updated_list"
	ColGameName       Column = "game_name"
	ColGameSortName   Column = "game_sort_name"
	ColNumPlays       Column = "num_plays"
	ColMinPlayers     Column = "min_players"
	ColMaxPlayers     Column = "max_players"
	ColPlayingTime    Column = "playing_time"
	ColMinPlayingTime Column = "min_playing_time"
	ColMaxPlayingTime Column = "max_playing_time"
	ColNumberOwned    Column = "number_owned"
)

// collection table columns (game_id and updated_list are shared names
// across both tables)
const (
	ColCollectionID           Column = "collection_id"
	ColCollectionName         Column = "collection_name"
	ColCollectionSortName     Column = "collection_sort_name"
	ColStatusOwn              Column = "status_own"
	ColStatusPrevOwned        Column = "status_prevowned"
	ColStatusForTrade         Column = "status_fortrade"
	ColStatusWant             Column = "status_want"
	ColStatusWantToPlay       Column = "status_wanttoplay"
	ColStatusWantToBuy        Column = "status_wanttobuy"
	ColStatusWishlist         Column = "status_wishlist"
	ColStatusWishlistPriority Column = "status_wishlist_priority"
	ColStatusPreOrdered       Column = "status_preordered"
	ColRating                 Column = "rating"
	ColComment                Column = "comment"
	ColCondition              Column = "condition"
	ColWantPartsList          Column = "wantparts_list"
	ColHasPartsList           Column = "hasparts_list"
	ColWishlistComment        Column = "wishlist_comment"
	ColCollectionYear         Column = "collection_year_published"
	ColCollectionImageURL     Column = "collection_image_url"
	ColCollectionThumbnailURL Column = "collection_thumbnail_url"
	ColPricePaidCurrency      Column = "private_info_price_paid_currency"
	ColPricePaid              Column = "private_info_price_paid"
	ColCurrentValueCurrency   Column = "private_info_current_value_currency"
	ColCurrentValue           Column = "private_info_current_value"
	ColQuantity               Column = "private_info_quantity"
	ColAcquisitionDate        Column = "private_info_acquisition_date"
	ColAcquiredFrom           Column = "private_info_acquired_from"
	ColPrivateComment         Column = "private_info_comment"
	ColLastModified           Column = "last_modified"
	ColUpdated                Column = "updated"

	ColCollectionDirtyTimestamp Column = "collection_dirty_timestamp"
)

type colVal struct {
	col Column
	val any
}

// ColumnValues is an ordered set of column/value pairs used to drive
// projection-built inserts and updates. Order is preserved so generated
// SQL is deterministic.
type ColumnValues struct {
	pairs []colVal
}

// Set adds a value, replacing any existing value for the column.
func (v *ColumnValues) Set(col Column, val any) {
	for i := range v.pairs {
		if v.pairs[i].col == col {
			v.pairs[i].val = val
			return
		}
	}
	v.pairs = append(v.pairs, colVal{col: col, val: val})
}

// Remove deletes the given columns from the set. Missing columns are ignored.
func (v *ColumnValues) Remove(cols ...Column) {
	for _, col := range cols {
		for i := range v.pairs {
			if v.pairs[i].col == col {
				v.pairs = append(v.pairs[:i], v.pairs[i+1:]...)
				break
			}
		}
	}
}

// Value returns the stored value for a column and whether it is present.
func (v *ColumnValues) Value(col Column) (any, bool) {
	for _, p := range v.pairs {
		if p.col == col {
			return p.val, true
		}
	}
	return nil, false
}

// String returns the value for a column as a string, or "" when absent or
// not a string.
func (v *ColumnValues) String(col Column) string {
	val, ok := v.Value(col)
	if !ok {
		return ""
	}
	s, _ := val.(string)
	return s
}

// Has reports whether the column is present.
func (v *ColumnValues) Has(col Column) bool {
	_, ok := v.Value(col)
	return ok
}

// Len returns the number of columns in the set.
func (v *ColumnValues) Len() int {
	return len(v.pairs)
}

// InsertSQL builds an INSERT statement for the given table.
func (v *ColumnValues) InsertSQL(table string) (string, []any) {
	cols := make([]string, len(v.pairs))
	marks := make([]string, len(v.pairs))
	args := make([]any, len(v.pairs))
	for i, p := range v.pairs {
		cols[i] = string(p.col)
		marks[i] = "?"
		args[i] = p.val
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", ")), args
}

// UpdateSQL builds an UPDATE statement for the given table and WHERE clause.
// The where arguments are appended after the SET arguments.
func (v *ColumnValues) UpdateSQL(table, where string, whereArgs ...any) (string, []any) {
	sets := make([]string, len(v.pairs))
	args := make([]any, 0, len(v.pairs)+len(whereArgs))
	for i, p := range v.pairs {
		sets[i] = string(p.col) + " = ?"
		args = append(args, p.val)
	}
	args = append(args, whereArgs...)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), where), args
}
