// Package cli provides the command-line interface for meeta-drive.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/api"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/config"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/events"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/logging"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/state"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/version"
)

var (
	// Global flags
	cfgFile    string
	apiBaseURL string
	session    string
	verbose    bool

	// Global logger
	logger *logging.Logger
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meeta-drive",
		Short: "MEETA DRIVE - cloud storage client",
		Long: `MEETA DRIVE ` + version.Version + ` - Built: ` + version.BuildTime + `
Client for the MEETA DRIVE cloud storage backend.

Lists, uploads, downloads, and manages files and folders. Folder uploads
preserve the local directory structure.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&session, "session", "", "Session cookie value (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = version.String()

	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newUploadDirCmd())
	rootCmd.AddCommand(newMkdirCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command with signal-aware context.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if apiBaseURL != "" {
		cfg.PlatformURL = apiBaseURL
	}
	if session != "" {
		cfg.SessionCookie = session
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAPIClient builds the API client plus the shared bus and listing cache.
func newAPIClient() (*api.Client, *config.Config, *events.Bus, *state.ListingCache, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	client, err := api.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	bus := events.NewBus(0)
	cache := state.NewListingCache(bus)
	return client, cfg, bus, cache, nil
}
