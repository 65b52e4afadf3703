package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/meeple/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(t.TempDir())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitialize(t *testing.T) {
	dir := t.TempDir()
	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "collection.db")); os.IsNotExist(err) {
		t.Error("database file not created")
	}
	version, err := db.GetSchemaVersion()
	if err != nil {
		t.Fatalf("GetSchemaVersion: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("schema version: got %d, want %d", version, SchemaVersion)
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("Open should fail when no database exists")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	n, err := db.RunMigrations()
	if err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	if n != 0 {
		t.Errorf("migrations on up-to-date db: got %d, want 0", n)
	}
}

func seedGame(t *testing.T, db *DB, gameID int, name string) {
	t.Helper()
	var v ColumnValues
	v.Set(ColGameID, gameID)
	v.Set(ColGameName, name)
	v.Set(ColGameSortName, name)
	if err := db.InsertGame(v); err != nil {
		t.Fatalf("seed game: %v", err)
	}
}

func seedEntry(t *testing.T, db *DB, gameID, collectionID int) int64 {
	t.Helper()
	var v ColumnValues
	v.Set(ColGameID, gameID)
	if collectionID != 0 {
		v.Set(ColCollectionID, collectionID)
	}
	v.Set(ColCollectionName, "Entry")
	v.Set(ColCollectionSortName, "Entry")
	id, err := db.InsertCollectionItem(v)
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return id
}

func TestGameUpsert(t *testing.T) {
	db := testDB(t)

	exists, err := db.GameExists(13)
	if err != nil {
		t.Fatalf("GameExists: %v", err)
	}
	if exists {
		t.Fatal("game should not exist yet")
	}

	seedGame(t, db, 13, "Catan")

	exists, _ = db.GameExists(13)
	if !exists {
		t.Fatal("game should exist")
	}

	var v ColumnValues
	v.Set(ColGameName, "The Settlers of Catan")
	v.Set(ColNumPlays, 4)
	if err := db.UpdateGame(13, v); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}

	g, err := db.GetGame(13)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if g.Name != "The Settlers of Catan" || g.NumPlays != 4 {
		t.Errorf("game after update: %+v", g)
	}
}

func TestSnapshotLookups(t *testing.T) {
	db := testDB(t)
	seedGame(t, db, 13, "Catan")
	withID := seedEntry(t, db, 13, 5871)
	withoutID := seedEntry(t, db, 13, 0)

	s, found, err := db.SnapshotByCollectionID(5871)
	if err != nil {
		t.Fatalf("SnapshotByCollectionID: %v", err)
	}
	if !found || s.InternalID != withID {
		t.Errorf("by collection id: found=%v id=%d, want %d", found, s.InternalID, withID)
	}

	s, found, err = db.SnapshotByGameID(13)
	if err != nil {
		t.Fatalf("SnapshotByGameID: %v", err)
	}
	if !found || s.InternalID != withoutID {
		t.Errorf("by game id: found=%v id=%d, want %d (the ID-less row)", found, s.InternalID, withoutID)
	}

	_, found, err = db.SnapshotByCollectionID(999)
	if err != nil {
		t.Fatalf("missing snapshot: %v", err)
	}
	if found {
		t.Error("snapshot for unknown collection ID should not be found")
	}
}

func TestUniqueCollectionID(t *testing.T) {
	db := testDB(t)
	seedGame(t, db, 13, "Catan")
	seedEntry(t, db, 13, 5871)

	var v ColumnValues
	v.Set(ColGameID, 13)
	v.Set(ColCollectionID, 5871)
	if _, err := db.InsertCollectionItem(v); err == nil {
		t.Fatal("duplicate collection_id should be rejected")
	}

	// multiple unassigned rows are allowed
	seedEntry(t, db, 13, 0)
	seedEntry(t, db, 13, 0)
}

func TestLocalEditsStampDirty(t *testing.T) {
	db := testDB(t)
	seedGame(t, db, 13, "Catan")
	rowID := seedEntry(t, db, 13, 5871)

	if err := db.SetRating(rowID, 8.0); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	if err := db.SetComment(rowID, "great with five"); err != nil {
		t.Fatalf("SetComment: %v", err)
	}
	if err := db.SetStatusFlags(rowID, models.StatusFlags{ForTrade: true}); err != nil {
		t.Fatalf("SetStatusFlags: %v", err)
	}

	e, err := db.GetEntry(rowID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if e.Rating != 8.0 || e.Comment != "great with five" || !e.Status.ForTrade {
		t.Errorf("edits not stored: %+v", e)
	}
	if e.Dirty.Rating == 0 || e.Dirty.Comment == 0 || e.Dirty.Status == 0 {
		t.Errorf("dirty stamps missing: %+v", e.Dirty)
	}
	if e.Dirty.Whole != 0 {
		t.Errorf("whole-record stamp should stay clean: %d", e.Dirty.Whole)
	}
}

func TestCollectionIDQueries(t *testing.T) {
	db := testDB(t)
	seedGame(t, db, 13, "Catan")
	seedEntry(t, db, 13, 100)
	ratedRow := seedEntry(t, db, 13, 101)
	seedEntry(t, db, 13, 0) // unassigned, never listed
	dirtyRow := seedEntry(t, db, 13, 102)

	if _, err := db.conn.Exec(
		"UPDATE collection SET collection_dirty_timestamp = 7 WHERE _id = ?", dirtyRow); err != nil {
		t.Fatalf("mark dirty: %v", err)
	}

	ids, err := db.CollectionIDsForGame(13)
	if err != nil {
		t.Fatalf("CollectionIDsForGame: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("ids: got %v, want [100 101 102]", ids)
	}

	dirty, err := db.DirtyCollectionIDs(13)
	if err != nil {
		t.Fatalf("DirtyCollectionIDs: %v", err)
	}
	if len(dirty) != 1 || dirty[0] != 102 {
		t.Errorf("dirty ids: got %v, want [102]", dirty)
	}

	// a single dirty field group also counts as mid-edit
	if err := db.SetRating(ratedRow, 8); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	dirty, err = db.DirtyCollectionIDs(13)
	if err != nil {
		t.Fatalf("DirtyCollectionIDs: %v", err)
	}
	if len(dirty) != 2 {
		t.Errorf("dirty ids after rating edit: got %v, want [101 102]", dirty)
	}

	n, err := db.DeleteCollectionItem(100)
	if err != nil {
		t.Fatalf("DeleteCollectionItem: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}
	n, _ = db.DeleteCollectionItem(100)
	if n != 0 {
		t.Errorf("second delete: got %d, want 0", n)
	}
}

func TestListEntries(t *testing.T) {
	db := testDB(t)
	seedGame(t, db, 13, "Catan")
	seedGame(t, db, 42, "Azul")
	owned := seedEntry(t, db, 13, 100)
	seedEntry(t, db, 42, 101)

	if err := db.SetStatusFlags(owned, models.StatusFlags{Own: true}); err != nil {
		t.Fatalf("SetStatusFlags: %v", err)
	}

	all, err := db.ListEntries(ListEntriesOptions{})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all entries: got %d, want 2", len(all))
	}

	own, err := db.ListEntries(ListEntriesOptions{Status: models.StatusOwn})
	if err != nil {
		t.Fatalf("ListEntries own: %v", err)
	}
	if len(own) != 1 || own[0].InternalID != owned {
		t.Errorf("own filter: got %d entries", len(own))
	}

	byGame, err := db.ListEntries(ListEntriesOptions{GameID: 42})
	if err != nil {
		t.Fatalf("ListEntries by game: %v", err)
	}
	if len(byGame) != 1 || byGame[0].GameID != 42 {
		t.Errorf("game filter: got %+v", byGame)
	}
}

func TestEntryCollectionIDSentinel(t *testing.T) {
	db := testDB(t)
	seedGame(t, db, 13, "Catan")
	rowID := seedEntry(t, db, 13, 0)

	e, err := db.GetEntry(rowID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if e.CollectionID != models.InvalidID {
		t.Errorf("unassigned entry CollectionID: got %d, want InvalidID", e.CollectionID)
	}
}
