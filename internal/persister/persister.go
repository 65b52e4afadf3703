// Package persister merges remote collection snapshots into the local store.
// The one rule it exists to enforce: never clobber a local edit the server
// doesn't know about yet. Each stored collection row carries per-field-group
// dirty timestamps; any group with a non-zero stamp is stripped from the
// remote-sourced update, no matter how old the local edit is.
package persister

import (
	"log/slog"
	"time"

	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
)

const notDirty = 0

// Store is the storage surface the persister needs. *db.DB satisfies it;
// tests substitute lighter implementations.
type Store interface {
	GameExists(gameID int) (bool, error)
	InsertGame(values db.ColumnValues) error
	UpdateGame(gameID int, values db.ColumnValues) error

	SnapshotByCollectionID(collectionID int) (models.CollectionSnapshot, bool, error)
	SnapshotByGameID(gameID int) (models.CollectionSnapshot, bool, error)
	InsertCollectionItem(values db.ColumnValues) (int64, error)
	UpdateCollectionItem(internalID int64, values db.ColumnValues) error
	CollectionThumbnailURL(internalID int64) (string, error)

	CollectionIDsForGame(gameID int) ([]int, error)
	DeleteCollectionItem(collectionID int) (int, error)
	DeleteThumbnail(filename string) error
}

// Persister writes remote collection items into the store, one game upsert
// and one collection upsert per item. A single sync pass shares one
// Persister so every row it touches gets the same list timestamp.
type Persister struct {
	store     Store
	statuses  map[models.Status]bool // nil = sync everything
	timestamp int64
}

// New creates a Persister. A nil statuses slice means every item is
// sync-worthy; a non-nil slice restricts persistence to items carrying at
// least one of the given statuses.
func New(store Store, statuses []models.Status) *Persister {
	p := &Persister{store: store, timestamp: time.Now().UnixMilli()}
	if statuses != nil {
		p.statuses = make(map[models.Status]bool, len(statuses))
		for _, s := range statuses {
			p.statuses[s] = true
		}
	}
	return p
}

// Timestamp returns the list timestamp stamped onto rows by this pass.
func (p *Persister) Timestamp() int64 {
	return p.timestamp
}

// ResetTimestamp starts a fresh pass timestamp.
func (p *Persister) ResetTimestamp() {
	p.timestamp = time.Now().UnixMilli()
}

// SaveItem persists one remote collection item: filter by configured
// statuses, skip when the local row has whole-record edits pending, upsert
// the game, then upsert the collection row with dirty groups stripped.
// Returns the item's collection ID (models.InvalidID when the server has not
// assigned one) and whether the item was persisted at all.
func (p *Persister) SaveItem(item *models.CollectionItem, includeStats, includePrivateInfo, isBrief bool) (int, bool, error) {
	if !p.statusSetToSync(item) {
		slog.Info("skipped collection item, status not synced",
			"game", item.GameName, "gameID", item.GameID, "collectionID", item.CollectionID)
		return models.InvalidID, false, nil
	}

	candidate, err := findCandidate(p.store, item.CollectionID, item.GameID)
	if err != nil {
		return models.InvalidID, false, err
	}
	if candidate.dirty.Whole != notDirty {
		slog.Info("local copy of the collection item is dirty, skipping sync",
			"game", item.GameName, "gameID", item.GameID, "collectionID", item.CollectionID)
		return models.InvalidID, false, nil
	}

	if err := p.upsertGame(item, includeStats, isBrief); err != nil {
		return models.InvalidID, false, err
	}
	if err := p.upsertItem(item, candidate, includeStats, includePrivateInfo, isBrief); err != nil {
		return models.InvalidID, false, err
	}
	slog.Debug("saved collection item",
		"game", item.GameName, "gameID", item.GameID, "collectionID", item.CollectionID)
	return item.CollectionID, true, nil
}

// statusSetToSync applies the configured status filter. "played" is special:
// it matches on a positive play count rather than a stored flag.
func (p *Persister) statusSetToSync(item *models.CollectionItem) bool {
	if p.statuses == nil {
		return true
	}
	for _, s := range item.Status.Set() {
		if p.statuses[s] {
			return true
		}
	}
	return item.NumberOfPlays > 0 && p.statuses[models.StatusPlayed]
}

func (p *Persister) upsertGame(item *models.CollectionItem, includeStats, isBrief bool) error {
	values := p.gameValues(item, includeStats, isBrief)
	exists, err := p.store.GameExists(item.GameID)
	if err != nil {
		return err
	}
	if exists {
		values.Remove(db.ColGameID)
		return p.store.UpdateGame(item.GameID, values)
	}
	return p.store.InsertGame(values)
}

func (p *Persister) upsertItem(item *models.CollectionItem, c candidate, includeStats, includePrivateInfo, isBrief bool) error {
	values := p.collectionValues(item, includeStats, includePrivateInfo, isBrief)
	if c.found {
		stripDirty(&values, c.dirty)
		if !isBrief {
			p.maybeDeleteThumbnail(values, c.internalID)
		}
		return p.store.UpdateCollectionItem(c.internalID, values)
	}
	_, err := p.store.InsertCollectionItem(values)
	return err
}

// maybeDeleteThumbnail drops the cached-thumbnail record when the incoming
// URL differs from the stored one. Cache cleanup is best effort; failures
// are logged and never fail the sync.
func (p *Persister) maybeDeleteThumbnail(values db.ColumnValues, internalID int64) {
	newURL := values.String(db.ColCollectionThumbnailURL)

	oldURL, err := p.store.CollectionThumbnailURL(internalID)
	if err != nil {
		slog.Warn("thumbnail lookup failed", "internalID", internalID, "error", err)
		return
	}
	if newURL == oldURL {
		return
	}

	filename := db.ThumbnailFileName(oldURL)
	if filename == "" {
		return
	}
	if err := p.store.DeleteThumbnail(filename); err != nil {
		slog.Warn("delete cached thumbnail failed", "filename", filename, "error", err)
	}
}

// Prune removes all collection rows belonging to a game except the ones in
// the protected list, and returns the number of rows deleted. Called after
// a full sync pass with the IDs just synced (plus any rows mid-edit).
func (p *Persister) Prune(gameID int, protectedCollectionIDs []int) (int, error) {
	ids, err := p.store.CollectionIDsForGame(gameID)
	if err != nil {
		return 0, err
	}

	protected := make(map[int]bool, len(protectedCollectionIDs))
	for _, id := range protectedCollectionIDs {
		protected[id] = true
	}

	deleted := 0
	for _, id := range ids {
		if protected[id] {
			continue
		}
		n, err := p.store.DeleteCollectionItem(id)
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	if deleted > 0 {
		slog.Info("pruned stale collection items", "gameID", gameID, "deleted", deleted)
	}
	return deleted, nil
}
