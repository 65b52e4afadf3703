package db

// SchemaVersion is the current database schema version
const SchemaVersion = 1

const schema = `
-- Games table: shared metadata, one row per game, no dirty state
CREATE TABLE IF NOT EXISTS games (
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
    updated_list INTEGER DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Collection table: one row per collection entry. collection_id is NULL
-- until the server assigns one. The *_dirty_timestamp columns mark field
-- groups with unsynced local edits (0 = clean).
CREATE TABLE IF NOT EXISTS collection (
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
    has_parts_dirty_timestamp INTEGER DEFAULT 0,
    FOREIGN KEY (game_id) REFERENCES games(game_id)
);

-- Assigned entry IDs are unique; unassigned rows are exempt
CREATE UNIQUE INDEX IF NOT EXISTS idx_collection_collection_id
    ON collection(collection_id) WHERE collection_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_collection_game_id ON collection(game_id);

-- Cached thumbnail records, keyed by filename derived from the URL
CREATE TABLE IF NOT EXISTS thumbnails (
    filename TEXT PRIMARY KEY,
    url TEXT DEFAULT '',
    fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- One row per sync pass
CREATE TABLE IF NOT EXISTS sync_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    finished_at DATETIME,
    items_saved INTEGER DEFAULT 0,
    items_skipped INTEGER DEFAULT 0,
    rows_pruned INTEGER DEFAULT 0,
    brief INTEGER DEFAULT 0,
    error TEXT DEFAULT ''
);

-- Schema metadata
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
