package db

import (
	"fmt"
	"time"
)

// SyncRun is a row from the sync_history table.
type SyncRun struct {
	ID           int64
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	ItemsSaved   int
	ItemsSkipped int
	RowsPruned   int
	Brief        bool
	Error        string
}

// RecordSyncRun appends a completed sync pass to the history.
func (db *DB) RecordSyncRun(run SyncRun) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO sync_history (run_id, started_at, finished_at, items_saved, items_skipped, rows_pruned, brief, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.RunID, run.StartedAt, run.FinishedAt, run.ItemsSaved, run.ItemsSkipped,
			run.RowsPruned, btoi(run.Brief), run.Error)
		if err != nil {
			return fmt.Errorf("record sync run: %w", err)
		}
		return nil
	})
}

// SyncHistoryTail returns the last N sync passes in chronological order
// (oldest first).
func (db *DB) SyncHistoryTail(limit int) ([]SyncRun, error) {
	rows, err := db.conn.Query(`
		SELECT id, run_id, started_at, COALESCE(finished_at, started_at),
		       items_saved, items_skipped, rows_pruned, brief, error
		FROM sync_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sync history: %w", err)
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var r SyncRun
		var started, finished any
		var brief int
		if err := rows.Scan(&r.ID, &r.RunID, &started, &finished,
			&r.ItemsSaved, &r.ItemsSkipped, &r.RowsPruned, &brief, &r.Error); err != nil {
			return nil, err
		}
		r.Brief = brief != 0
		if r.StartedAt, err = scanTime(started); err != nil {
			return nil, fmt.Errorf("sync run %d started_at: %w", r.ID, err)
		}
		if r.FinishedAt, err = scanTime(finished); err != nil {
			return nil, fmt.Errorf("sync run %d finished_at: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// reverse to chronological order
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

// scanTime normalizes the timestamp representations SQLite drivers return.
func scanTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported time type %T", v)
	}
}
