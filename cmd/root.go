package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/syncconfig"
)

var (
	version string
	dataDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "meeple",
	Short: "Offline mirror of your board game collection",
	Long: `meeple - mirror your remote board game collection into a local SQLite
database for offline browsing, and queue local edits (ratings, comments,
status flags) that survive the next sync.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initDataDir)
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "database directory (default ~/.meeple)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "collection", Title: "Collection Commands:"},
		&cobra.Group{ID: "edit", Title: "Local Edit Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

func initDataDir() {
	if dataDir != "" {
		return
	}
	var err error
	dataDir, err = syncconfig.DefaultDataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine data directory: %v\n", err)
		os.Exit(1)
	}
}

// getDataDir returns the directory holding the collection database
func getDataDir() string {
	return dataDir
}

// openDB opens the collection database, failing with a hint when meeple
// has not been initialized.
func openDB() (*db.DB, error) {
	return db.Open(getDataDir())
}
