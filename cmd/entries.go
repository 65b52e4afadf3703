package cmd

import (
	"fmt"

	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
)

// entriesForGame returns the collection rows for a game, erroring when the
// game is not in the local collection.
func entriesForGame(database *db.DB, gameID int) ([]*models.CollectionEntry, error) {
	entries, err := database.ListEntries(db.ListEntriesOptions{GameID: gameID})
	if err != nil {
		return nil, fmt.Errorf("list entries for game %d: %w", gameID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("game %d is not in the local collection", gameID)
	}
	return entries, nil
}

// resolveEntry picks the single collection row a local edit applies to.
// When a game has several copies, the edit needs --id with the copy's
// collection ID.
func resolveEntry(database *db.DB, gameID, collectionID int) (*models.CollectionEntry, error) {
	if collectionID != 0 {
		return database.GetEntryByCollectionID(collectionID)
	}
	entries, err := entriesForGame(database, gameID)
	if err != nil {
		return nil, err
	}
	if len(entries) > 1 {
		return nil, fmt.Errorf("game %d has %d copies; pick one with --id <collection-id>", gameID, len(entries))
	}
	return entries[0], nil
}
