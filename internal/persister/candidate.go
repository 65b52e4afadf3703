package persister

import (
	"github.com/marcus/meeple/internal/models"
)

// candidate is the result of matching a remote item against local storage:
// either an existing row (found, with its dirty-state snapshot) or a fresh
// insert. The zero value is the not-found case, with every stamp clean.
type candidate struct {
	internalID int64
	found      bool
	dirty      models.DirtyStamps
}

// findCandidate locates the local row a remote item should merge into.
//
// Without a collection ID the only possible match is a row for the same
// game that was never assigned one. With a collection ID, that lookup is
// the fallback: it catches the server assigning an ID to a row we created
// before one existed.
func findCandidate(store Store, collectionID, gameID int) (candidate, error) {
	if collectionID == models.InvalidID {
		return fromSnapshot(store.SnapshotByGameID(gameID))
	}

	c, err := fromSnapshot(store.SnapshotByCollectionID(collectionID))
	if err != nil || c.found {
		return c, err
	}
	return fromSnapshot(store.SnapshotByGameID(gameID))
}

func fromSnapshot(s models.CollectionSnapshot, found bool, err error) (candidate, error) {
	if err != nil || !found {
		return candidate{}, err
	}
	return candidate{internalID: s.InternalID, found: true, dirty: s.Dirty}, nil
}
