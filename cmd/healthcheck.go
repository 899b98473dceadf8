package cmd

import (
	"fmt"
	"io"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/process"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

// healthcheckSentinelID is looked up in the keychain; it is never stored
const healthcheckSentinelID = "valswitch-healthcheck"

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that valswitch can find everything a launch needs",
	Long: `Check the health of valswitch by verifying:
  • Settings store access
  • Stored accounts
  • OS keychain access
  • Riot Client data directories
  • VALORANT install path
  • Riot Client executable

This command is useful for debugging a launch that fails before VALORANT starts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHealthcheck(cmd.OutOrStdout())
	},
}

func runHealthcheck(out io.Writer) error {
	detail := func(format string, args ...interface{}) {
		if healthcheckDetails {
			_, _ = fmt.Fprintf(out, "   "+format+"\n", args...)
		}
	}

	_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 valswitch Health Check"))
	_, _ = fmt.Fprintln(out)

	cfg, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Invalid configuration:"), err)
		return err
	}

	// Step 1: settings store
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Opening settings store..."))
	store, err := internal.OpenSettingsStore(cfg.DataDir)
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to open settings store:"), err)
		return err
	}
	defer func() { _ = store.Close() }()
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Settings store opened"))
	detail("Database: %s", store.Path())
	if keys, err := store.Keys(); err == nil {
		detail("Keys: %v", keys)
	}
	_, _ = fmt.Fprintln(out)

	// Step 2: accounts
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Loading accounts..."))
	directory, err := internal.NewDirectory(store)
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Account list is unreadable:"), err)
		return err
	}
	accounts := directory.List()
	if len(accounts) > 0 {
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d account(s)", len(accounts))))
		for i, a := range accounts {
			if i < 5 { // Show first 5
				detail("[%d] %s (%s, %s)", i+1, a.DisplayName, a.Region, a.ID)
			}
		}
	} else {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No accounts stored yet"))
	}
	_, _ = fmt.Fprintln(out)

	// Step 3: keychain
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 3: Checking the OS keychain..."))
	vault := internal.NewVault(cfg.KeyringService, nil)
	_, _, vaultErr := vault.Retrieve(healthcheckSentinelID)
	if vaultErr != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Keychain not readable:"), vaultErr)
	} else {
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Keychain readable"))
		detail("Service: %s", vault.Service())
	}
	_, _ = fmt.Fprintln(out)

	// Step 4: Riot Client data directories
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 4: Detecting Riot Client data directories..."))
	paths, pathsErr := internal.DetectRiotPaths(cfg.RiotDataRoot)
	if pathsErr != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Riot Client data not found:"), pathsErr)
	} else {
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Riot Client data found (%s)", paths.Variant)))
		detail("Data: %s", paths.DataDir)
		detail("Config: %s", paths.ConfigDir)
		if paths.PrivateSettingsExists() {
			detail("Signed-in session file present")
		} else {
			detail("No session file; the Riot Client is signed out")
		}
	}
	_, _ = fmt.Fprintln(out)

	// Step 5: install path
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 5: Checking VALORANT install path..."))
	settings, err := internal.LoadSettings(store)
	if err != nil {
		return err
	}
	installErr := internal.ValidateInstallDir(settings.ValorantPath)
	if installErr != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Install path not usable:"), installErr)
	} else {
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Install path set"))
		detail("Path: %s", settings.ValorantPath)
	}
	_, _ = fmt.Fprintln(out)

	// Step 6: Riot Client executable
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 6: Locating the Riot Client..."))
	controller := process.New(process.Options{ManifestPath: cfg.RiotManifest})
	exe, exeErr := controller.FindExecutable()
	if exeErr != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Riot Client not found:"), exeErr)
	} else {
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Riot Client found"))
		detail("Executable: %s", exe)
	}
	detail("Manifest: %s", controller.ManifestPath())
	detail("Process tools: %s", controller.Platform())
	_, _ = fmt.Fprintln(out)

	// Summary
	_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
	_, _ = fmt.Fprintln(out)

	if vaultErr != nil || pathsErr != nil || installErr != nil || exeErr != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
		_, _ = fmt.Fprintln(out, "   • Launching will not work until the failures above are fixed")
		return fmt.Errorf("health check failed")
	}
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
	_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Accounts: %d stored", len(accounts))))
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
}
