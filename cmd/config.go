package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/models"
	"github.com/marcus/meeple/internal/output"
	"github.com/marcus/meeple/internal/syncconfig"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change meeple configuration",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := syncconfig.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		output.Info("username:  %s", valueOrUnset(cfg.Username))
		output.Info("server:    %s", syncconfig.ServerURL())
		if cfg.SyncStatuses == nil {
			output.Info("statuses:  all")
		} else {
			output.Info("statuses:  %s", strings.Join(cfg.SyncStatuses, ", "))
		}
		output.Info("data dir:  %s", getDataDir())
		return nil
	},
}

var configStatusesCmd = &cobra.Command{
	Use:   "statuses [status...]",
	Short: "Restrict syncing to the given status categories",
	Long: `Sets which status categories are worth syncing. With no arguments the
restriction is cleared and everything syncs. Example:

  meeple config statuses own wishlist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := syncconfig.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if len(args) == 0 {
			cfg.SetStatuses(nil)
		} else {
			statuses := make([]models.Status, 0, len(args))
			for _, name := range args {
				status, err := models.ParseStatus(name)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				statuses = append(statuses, status)
			}
			cfg.SetStatuses(statuses)
		}

		if err := syncconfig.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		if cfg.SyncStatuses == nil {
			output.Success("Syncing all status categories")
		} else {
			output.Success("Syncing only: %s", strings.Join(cfg.SyncStatuses, ", "))
		}
		return nil
	},
}

var configUsernameCmd = &cobra.Command{
	Use:   "username <name>",
	Short: "Set the remote account to mirror",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := syncconfig.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.Username = args[0]
		if err := syncconfig.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		output.Success("Mirroring collection of %q", args[0])
		return nil
	},
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configStatusesCmd)
	configCmd.AddCommand(configUsernameCmd)
	rootCmd.AddCommand(configCmd)
}
