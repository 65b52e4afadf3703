package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/models"
	"github.com/marcus/meeple/internal/output"
)

var errInvalidStatus = errors.New("invalid status")

var markCmd = &cobra.Command{
	Use:     "mark <game-id> <status...>",
	Short:   "Set the status flags on a collection entry",
	GroupID: "edit",
	Long: `Replaces the status categories of an entry, e.g.

  meeple mark 13 own
  meeple mark 822 wishlist wanttobuy --priority 2

The edit stays local until the next outbound sync; inbound syncs will not
overwrite it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			output.Error("invalid game ID %q", args[0])
			return err
		}
		collectionID, _ := cmd.Flags().GetInt("id")
		priority, _ := cmd.Flags().GetInt("priority")

		var flags models.StatusFlags
		for _, name := range args[1:] {
			status, err := models.ParseStatus(name)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			switch status {
			case models.StatusOwn:
				flags.Own = true
			case models.StatusPrevOwned:
				flags.PreviouslyOwned = true
			case models.StatusForTrade:
				flags.ForTrade = true
			case models.StatusWant:
				flags.Want = true
			case models.StatusWantToPlay:
				flags.WantToPlay = true
			case models.StatusWantToBuy:
				flags.WantToBuy = true
			case models.StatusWishlist:
				flags.Wishlist = true
			case models.StatusPreOrdered:
				flags.PreOrdered = true
			case models.StatusPlayed:
				output.Error("'played' is derived from your play count and cannot be set")
				return errInvalidStatus
			}
		}
		if flags.Wishlist {
			flags.WishlistPriority = priority
		}

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
		if err := database.SetStatusFlags(entry.InternalID, flags); err != nil {
			output.Error("set status flags: %v", err)
			return err
		}

		labels := make([]string, 0, len(flags.Set()))
		for _, s := range flags.Set() {
			labels = append(labels, string(s))
		}
		output.Success("Marked %s as %s", entry.Name, strings.Join(labels, ", "))
		return nil
	},
}

func init() {
	markCmd.Flags().Int("id", 0, "collection ID when a game has several copies")
	markCmd.Flags().Int("priority", 3, "wishlist priority (1 = must have, 5 = don't buy)")
	rootCmd.AddCommand(markCmd)
}
