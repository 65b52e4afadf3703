// Package sync orchestrates a collection sync pass: fetch the remote
// snapshot, feed each item through the persister, prune stale rows, and
// record the pass in the sync history.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/meeple/internal/bgg"
	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
	"github.com/marcus/meeple/internal/persister"
)

// Fetcher retrieves a user's collection from the remote service.
// *bgg.Client satisfies it.
type Fetcher interface {
	Collection(ctx context.Context, username string, opts bgg.CollectionOptions) ([]models.CollectionItem, error)
}

// Options selects what a sync pass fetches and how much of it.
type Options struct {
	Username           string
	Brief              bool
	IncludeStats       bool
	IncludePrivateInfo bool
	GameID             int             // restrict the pass to one game; 0 = whole collection
	Statuses           []models.Status // nil = all statuses
}

// Result summarises a completed sync pass.
type Result struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Saved    int
	Skipped  int
	Pruned   int
}

// Engine drives sync passes against a local database.
type Engine struct {
	store   *db.DB
	fetcher Fetcher
}

// New creates an Engine.
func New(store *db.DB, fetcher Fetcher) *Engine {
	return &Engine{store: store, fetcher: fetcher}
}

// Run executes one sync pass. Cancelling the context stops the pass between
// items; rows already upserted stay applied, and rerunning converges to the
// same state. The pass is recorded in the sync history whether it succeeds
// or fails.
func (e *Engine) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	slog.Info("sync pass starting", "runID", result.RunID,
		"username", opts.Username, "brief", opts.Brief, "gameID", opts.GameID)

	err := e.run(ctx, opts, result)
	result.Finished = time.Now()

	record := db.SyncRun{
		RunID:        result.RunID,
		StartedAt:    result.Started,
		FinishedAt:   result.Finished,
		ItemsSaved:   result.Saved,
		ItemsSkipped: result.Skipped,
		RowsPruned:   result.Pruned,
		Brief:        opts.Brief,
	}
	if err != nil {
		record.Error = err.Error()
	}
	if histErr := e.store.RecordSyncRun(record); histErr != nil {
		slog.Warn("recording sync history failed", "runID", result.RunID, "error", histErr)
	}

	if err != nil {
		return result, err
	}
	slog.Info("sync pass finished", "runID", result.RunID,
		"saved", result.Saved, "skipped", result.Skipped, "pruned", result.Pruned,
		"elapsed", result.Finished.Sub(result.Started))
	return result, nil
}

func (e *Engine) run(ctx context.Context, opts Options, result *Result) error {
	items, err := e.fetcher.Collection(ctx, opts.Username, bgg.CollectionOptions{
		Brief:              opts.Brief,
		IncludeStats:       opts.IncludeStats,
		IncludePrivateInfo: opts.IncludePrivateInfo,
		GameID:             opts.GameID,
		Statuses:           opts.Statuses,
	})
	if err != nil {
		return fmt.Errorf("fetch collection: %w", err)
	}

	p := persister.New(e.store, opts.Statuses)

	// server-assigned IDs persisted this pass, keyed by game
	savedIDs := make(map[int][]int)
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := &items[i]
		id, saved, err := p.SaveItem(item, opts.IncludeStats, opts.IncludePrivateInfo, opts.Brief)
		if err != nil {
			return fmt.Errorf("save item (game %d): %w", item.GameID, err)
		}
		if !saved {
			result.Skipped++
			continue
		}
		result.Saved++
		if id != models.InvalidID {
			savedIDs[item.GameID] = append(savedIDs[item.GameID], id)
		}
	}

	// A status-filtered pass sees only a slice of the collection, so absence
	// from the response proves nothing and pruning must be skipped.
	if opts.Statuses != nil {
		return nil
	}
	return e.prune(ctx, p, opts.GameID, savedIDs, result)
}

// prune removes rows the fresh snapshot no longer contains. Rows just saved
// and rows carrying unsynced whole-record edits are protected.
func (e *Engine) prune(ctx context.Context, p *persister.Persister, gameID int, savedIDs map[int][]int, result *Result) error {
	var gameIDs []int
	if gameID > 0 {
		gameIDs = []int{gameID}
	} else {
		var err error
		gameIDs, err = e.store.CollectionGameIDs()
		if err != nil {
			return err
		}
	}

	for _, gid := range gameIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		dirty, err := e.store.DirtyCollectionIDs(gid)
		if err != nil {
			return err
		}
		protected := append(savedIDs[gid], dirty...)
		n, err := p.Prune(gid, protected)
		if err != nil {
			return fmt.Errorf("prune game %d: %w", gid, err)
		}
		result.Pruned += n
	}
	return nil
}
