package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
	"github.com/marcus/meeple/internal/output"
	"github.com/marcus/meeple/internal/syncconfig"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize the local collection database",
	Long:    `Creates the collection database and asks which account to mirror.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getDataDir()

		if _, err := os.Stat(filepath.Join(dir, "collection.db")); err == nil {
			output.Warning("collection database already exists in %s", dir)
			return nil
		}

		cfg, err := syncconfig.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			username = cfg.Username
		}
		if username == "" {
			if err := promptInitForm(cfg, &username); err != nil {
				return err
			}
		}
		if username == "" {
			output.Error("a username is required")
			return fmt.Errorf("username required")
		}

		cfg.Username = username
		if err := syncconfig.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		database, err := db.Initialize(dir)
		if err != nil {
			output.Error("failed to initialize database: %v", err)
			return err
		}
		defer database.Close()

		output.Success("Initialized collection database in %s", dir)
		output.Info("Mirroring collection of %q. Run 'meeple sync' to fetch it.", username)
		return nil
	},
}

// promptInitForm asks for the account and the status categories worth
// syncing. Selecting every category clears the restriction.
func promptInitForm(cfg *syncconfig.Config, username *string) error {
	options := make([]huh.Option[string], len(models.AllStatuses))
	selected := make([]string, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		options[i] = huh.NewOption(string(s), string(s))
		selected[i] = string(s)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Remote username").
				Description("The account whose collection to mirror").
				Value(username),
			huh.NewMultiSelect[string]().
				Title("Statuses to sync").
				Description("Entries outside these categories are ignored").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("init form: %w", err)
	}

	if len(selected) == len(models.AllStatuses) {
		cfg.SyncStatuses = nil
	} else {
		cfg.SyncStatuses = selected
	}
	return nil
}

func init() {
	initCmd.Flags().String("username", "", "remote account to mirror (skips the prompt)")
	rootCmd.AddCommand(initCmd)
}
