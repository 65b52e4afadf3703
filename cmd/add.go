package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/output"
)

var addCmd = &cobra.Command{
	Use:     "add <game-id> <name...>",
	Short:   "Add a game to the collection locally",
	GroupID: "edit",
	Long: `Creates a collection entry the server doesn't know about yet. The entry
is protected from pruning and from inbound overwrites until the server
assigns it a collection ID.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			output.Error("invalid game ID %q", args[0])
			return err
		}
		name := strings.Join(args[1:], " ")

		database, err := openDB()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		if _, err := database.AddLocalEntry(gameID, name); err != nil {
			output.Error("add entry: %v", err)
			return err
		}
		output.Success("Added %s (game %d) locally", name, gameID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
