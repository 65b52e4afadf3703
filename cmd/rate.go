package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/output"
)

var rateCmd = &cobra.Command{
	Use:     "rate <game-id> <rating>",
	Short:   "Rate a game (1-10, local until the next outbound sync)",
	GroupID: "edit",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			output.Error("invalid game ID %q", args[0])
			return err
		}
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil || rating < 1 || rating > 10 {
			output.Error("rating must be a number between 1 and 10")
			return fmt.Errorf("invalid rating %q", args[1])
		}
		collectionID, _ := cmd.Flags().GetInt("id")

		database, err := openDB()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		entry, err := resolveEntry(database, gameID, collectionID)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := database.SetRating(entry.InternalID, rating); err != nil {
			output.Error("set rating: %v", err)
			return err
		}
		output.Success("Rated %s %.1f (kept local until synced upstream)", entry.Name, rating)
		return nil
	},
}

func init() {
	rateCmd.Flags().Int("id", 0, "collection ID when a game has several copies")
	rootCmd.AddCommand(rateCmd)
}
