package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/meeple/internal/models"
)

// GameExists reports whether a row for the given game ID is stored.
func (db *DB) GameExists(gameID int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM games WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check game %d: %w", gameID, err)
	}
	return count > 0, nil
}

// InsertGame inserts a new game row from a projection-built value set.
func (db *DB) InsertGame(values ColumnValues) error {
	return db.withWriteLock(func() error {
		query, args := values.InsertSQL("games")
		if _, err := db.conn.Exec(query, args...); err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		return nil
	})
}

// UpdateGame updates an existing game row. The caller is expected to have
// removed the game_id column from the value set.
func (db *DB) UpdateGame(gameID int, values ColumnValues) error {
	if values.Len() == 0 {
		return nil
	}
	return db.withWriteLock(func() error {
		query, args := values.UpdateSQL("games", "game_id = ?", gameID)
		if _, err := db.conn.Exec(query, args...); err != nil {
			return fmt.Errorf("update game %d: %w", gameID, err)
		}
		return nil
	})
}

// GetGame retrieves a game row by ID.
func (db *DB) GetGame(gameID int) (*models.Game, error) {
	var g models.Game
	err := db.conn.QueryRow(`
		SELECT game_id, game_name, game_sort_name, num_plays,
		       min_players, max_players, playing_time, min_playing_time, max_playing_time,
		       number_owned, updated_list
		FROM games WHERE game_id = ?
	`, gameID).Scan(
		&g.GameID, &g.Name, &g.SortName, &g.NumPlays,
		&g.MinPlayers, &g.MaxPlayers, &g.PlayingTime, &g.MinPlayingTime, &g.MaxPlayingTime,
		&g.NumberOwned, &g.UpdatedList,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
