package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/spf13/cobra"
)

var (
	setValorantPath string
	setTheme        string
	pickSave        bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			settings, err := check(svc.GetSettings())
			if err != nil {
				return err
			}
			displaySettings(cmd.OutOrStdout(), settings)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the install path and/or theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pathSet := cmd.Flags().Changed("valorant-path")
		themeSet := cmd.Flags().Changed("theme")
		if !pathSet && !themeSet {
			return errors.New("nothing to change: pass --valorant-path and/or --theme")
		}

		return withService(func(svc *app.Service) error {
			settings, err := check(svc.GetSettings())
			if err != nil {
				return err
			}
			if pathSet {
				settings.ValorantPath = setValorantPath
			}
			if themeSet {
				settings.Theme = internal.Theme(setTheme)
			}
			saved, err := check(svc.SaveSettings(settings))
			if err != nil {
				return err
			}
			reportThemeChange(cmd.OutOrStdout(), svc.Events())
			displaySettings(cmd.OutOrStdout(), saved)
			return nil
		})
	},
}

var pickPathCmd = &cobra.Command{
	Use:   "pick-path",
	Short: "Find the VALORANT install folder",
	Long: `Look for VALORANT in its usual install folders and print the first one found.
With --save the folder is stored as the install path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			out := cmd.OutOrStdout()
			dir, err := check(svc.PickInstallDir())
			if err != nil {
				printInstallNotice(out, err)
				return err
			}
			_, _ = fmt.Fprintln(out, successStyle.Render("✅ Found "+dir))
			if !pickSave {
				return nil
			}

			settings, err := check(svc.GetSettings())
			if err != nil {
				return err
			}
			settings.ValorantPath = dir
			if _, err := check(svc.SaveSettings(settings)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, infoStyle.Render("Saved as install path"))
			return nil
		})
	},
}

func displaySettings(out io.Writer, s internal.Settings) {
	_, _ = fmt.Fprintln(out, sectionStyle.Render("⚙️  Settings"))
	path := s.ValorantPath
	if path == "" {
		path = warningStyle.Render("(not set)")
	}
	_, _ = fmt.Fprintf(out, "   Install path: %s\n", path)
	_, _ = fmt.Fprintf(out, "   Theme:        %s\n", s.Theme)
}

// reportThemeChange prints queued theme-changed events without blocking
func reportThemeChange(out io.Writer, events <-chan app.Event) {
	for {
		select {
		case ev := <-events:
			if ev.Name == app.EventThemeChanged {
				_, _ = fmt.Fprintln(out, infoStyle.Render("🎨 Theme changed to "+string(ev.Theme)))
			}
		default:
			return
		}
	}
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, pickPathCmd)

	settingsSetCmd.Flags().StringVar(&setValorantPath, "valorant-path", "", "VALORANT install folder")
	settingsSetCmd.Flags().StringVar(&setTheme, "theme", "", "Theme (system, light, dark)")
	pickPathCmd.Flags().BoolVar(&pickSave, "save", false, "Store the found folder as the install path")
}
