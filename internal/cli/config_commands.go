package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/config"
)

// newConfigCmd manages the driveconfig file.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage client configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			fmt.Printf("platform_url:   %s\n", cfg.PlatformURL)
			fmt.Printf("session_cookie: %s\n", maskSecret(cfg.SessionCookie))
			fmt.Printf("notifications:  enabled=%t complete=%t failed=%t\n",
				cfg.Notifications.Enabled,
				cfg.Notifications.ShowUploadComplete,
				cfg.Notifications.ShowUploadFailed)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		platformURL   string
		sessionCookie string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			if platformURL != "" {
				cfg.PlatformURL = platformURL
			}
			if sessionCookie != "" {
				cfg.SessionCookie = sessionCookie
			}

			if err := cfg.Save(cfgFile); err != nil {
				return err
			}
			logger.Info().Msg("configuration saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&platformURL, "url", "", "Backend base URL")
	cmd.Flags().StringVar(&sessionCookie, "session", "", "Session cookie value")
	return cmd
}

// maskSecret hides all but the last four characters of a credential.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
