package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/output"
)

var commentCmd = &cobra.Command{
	Use:     "comment <game-id> <text...>",
	Short:   "Set the comment on a collection entry",
	GroupID: "edit",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			output.Error("invalid game ID %q", args[0])
			return err
		}
		text := strings.Join(args[1:], " ")
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
		if err := database.SetComment(entry.InternalID, text); err != nil {
			output.Error("set comment: %v", err)
			return err
		}
		output.Success("Comment saved on %s", entry.Name)
		return nil
	},
}

func init() {
	commentCmd.Flags().Int("id", 0, "collection ID when a game has several copies")
	rootCmd.AddCommand(commentCmd)
}
