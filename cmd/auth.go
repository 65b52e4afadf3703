package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/meeple/internal/output"
	"github.com/marcus/meeple/internal/syncconfig"
)

var authCmd = &cobra.Command{
	Use:     "auth",
	Short:   "Manage the remote session used for private info",
	GroupID: "system",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a session token for private-info fetches",
	Long: `Private info (price paid, acquisition details) is only served to the
account owner. Paste a session token from a logged-in browser session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := syncconfig.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Username == "" {
			output.Error("no username configured (run: meeple init)")
			return fmt.Errorf("no username configured")
		}

		fmt.Print("Session token: ")
		reader := bufio.NewReader(os.Stdin)
		token, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("token required")
		}

		creds := &syncconfig.AuthCredentials{
			Username:     cfg.Username,
			SessionToken: token,
			SavedAt:      time.Now().Format(time.RFC3339),
		}
		if err := syncconfig.SaveAuth(creds); err != nil {
			output.Error("save credentials: %v", err)
			return err
		}
		output.Success("Session stored for %s", cfg.Username)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := syncconfig.ClearAuth(); err != nil {
			output.Error("clear credentials: %v", err)
			return err
		}
		output.Success("Logged out")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
