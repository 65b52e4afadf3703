package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
	"github.com/marcus/meeple/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List collection entries",
	GroupID: "collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		statusName, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		var status models.Status
		if statusName != "" {
			parsed, err := models.ParseStatus(statusName)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			status = parsed
		}

		database, err := openDB()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		entries, err := database.ListEntries(db.ListEntriesOptions{Status: status, Limit: limit})
		if err != nil {
			output.Error("list entries: %v", err)
			return err
		}
		if len(entries) == 0 {
			output.Info("no entries (run 'meeple sync' to fetch your collection)")
			return nil
		}
		for _, e := range entries {
			output.Info("%s", output.FormatEntryShort(e))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "", "filter by status category (own, wishlist, ...)")
	listCmd.Flags().Int("limit", 0, "show at most this many entries")
	rootCmd.AddCommand(listCmd)
}
