package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/output"
)

var showCmd = &cobra.Command{
	Use:     "show <game-id>",
	Short:   "Show a collection entry in detail",
	GroupID: "collection",
	Aliases: []string{"info"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			output.Error("invalid game ID %q", args[0])
			return err
		}

		database, err := openDB()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		entries, err := entriesForGame(database, gameID)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		game, err := database.GetGame(gameID)
		if err != nil {
			return fmt.Errorf("load game %d: %w", gameID, err)
		}

		for i, e := range entries {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(output.FormatEntryLong(e, game))
			if e.Comment != "" {
				rendered, err := output.RenderComment(e.Comment)
				if err != nil {
					// fall back to the raw text
					rendered = e.Comment
				}
				fmt.Println(rendered)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
