package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/bgg"
	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/output"
	meeplesync "github.com/marcus/meeple/internal/sync"
	"github.com/marcus/meeple/internal/syncconfig"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Short:   "Fetch the remote collection and merge it locally",
	GroupID: "collection",
	Long: `Fetches the collection from the remote service and merges it into the
local database. Field groups with unsynced local edits are never
overwritten; entries absent from a full fetch are pruned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		brief, _ := cmd.Flags().GetBool("brief")
		noStats, _ := cmd.Flags().GetBool("no-stats")
		noPrivate, _ := cmd.Flags().GetBool("no-private")
		gameID, _ := cmd.Flags().GetInt("game")
		history, _ := cmd.Flags().GetBool("history")

		database, err := openDB()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		if history {
			return showSyncHistory(database)
		}

		cfg, err := syncconfig.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Username == "" {
			output.Error("no username configured (run: meeple init)")
			return fmt.Errorf("no username configured")
		}
		statuses, err := cfg.Statuses()
		if err != nil {
			return fmt.Errorf("configured sync statuses: %w", err)
		}

		client := bgg.New(syncconfig.ServerURL())
		includePrivate := !noPrivate
		if includePrivate {
			creds, err := syncconfig.LoadAuth()
			if err != nil {
				return fmt.Errorf("load auth: %w", err)
			}
			if creds != nil {
				client.SessionToken = creds.SessionToken
			} else {
				// private info needs a session; quietly downgrade
				includePrivate = false
			}
		}

		engine := meeplesync.New(database, client)
		result, err := engine.Run(cmd.Context(), meeplesync.Options{
			Username:           cfg.Username,
			Brief:              brief,
			IncludeStats:       !noStats,
			IncludePrivateInfo: includePrivate,
			GameID:             gameID,
			Statuses:           statuses,
		})
		if err != nil {
			if errors.Is(err, bgg.ErrRequestQueued) {
				output.Warning("the server is preparing the collection export; try again in a moment")
				return err
			}
			output.Error("sync failed: %v", err)
			return err
		}

		output.Success("Synced: %d saved, %d skipped, %d pruned (%s)",
			result.Saved, result.Skipped, result.Pruned,
			result.Finished.Sub(result.Started).Round(time.Millisecond))
		return nil
	},
}

func showSyncHistory(database *db.DB) error {
	runs, err := database.SyncHistoryTail(20)
	if err != nil {
		return fmt.Errorf("read sync history: %w", err)
	}
	if len(runs) == 0 {
		output.Info("no sync runs recorded")
		return nil
	}
	for _, run := range runs {
		output.Info("%s", output.FormatSyncRun(
			run.StartedAt, run.ItemsSaved, run.ItemsSkipped, run.RowsPruned, run.Brief, run.Error))
	}
	return nil
}

func init() {
	syncCmd.Flags().Bool("brief", false, "fetch the brief listing (names and statuses only)")
	syncCmd.Flags().Bool("no-stats", false, "skip player counts and playing time")
	syncCmd.Flags().Bool("no-private", false, "skip private info (price paid, acquisition)")
	syncCmd.Flags().Int("game", 0, "refresh a single game by its ID")
	syncCmd.Flags().Bool("history", false, "show recent sync runs instead of syncing")
	rootCmd.AddCommand(syncCmd)
}
