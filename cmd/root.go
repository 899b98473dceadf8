package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// serviceFactory builds the command surface for each command; tests replace it
var serviceFactory = func() (*app.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.Build(cfg)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "valswitch",
	Short: "Switch between Riot accounts for VALORANT",
	Long: `Keep the sessions of several Riot accounts and launch VALORANT as any of them.

Sessions are kept in the OS keychain; account names, regions and settings
live in a small SQLite file under the data directory.

Quick Start:
  valswitch settings pick-path --save     # Find and store the VALORANT install folder
  valswitch accounts import               # Save the account the Riot Client is signed in with
  valswitch accounts list                 # List stored accounts
  valswitch launch <account-id> --watch   # Switch to an account and start VALORANT

Environment:
  VALSWITCH_DATA_DIR, VALSWITCH_KEYRING_SERVICE, VALSWITCH_POLL_INTERVAL,
  VALSWITCH_SETTLE_DELAY, VALSWITCH_LOCALE, VALSWITCH_RIOT_DATA_ROOT,
  VALSWITCH_RIOT_MANIFEST`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads VALSWITCH_* and applies --data-dir
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// withService opens the service for the duration of fn
func withService(fn func(svc *app.Service) error) error {
	svc, err := serviceFactory()
	if err != nil {
		return fmt.Errorf("failed to open account store: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			internal.LogWarn("Failed to close account store: %v", err)
		}
	}()
	return fn(svc)
}

// check turns a failed Result into its error
func check[T any](r app.Result[T]) (T, error) {
	if !r.Success {
		if r.Err != nil {
			return r.Data, r.Err
		}
		return r.Data, fmt.Errorf("%s", r.Error)
	}
	return r.Data, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding settings.db (overrides VALSWITCH_DATA_DIR)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
