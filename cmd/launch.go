package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/iksnae/valswitch/internal/launcher"
	"github.com/spf13/cobra"
)

var launchWatch bool

var launchCmd = &cobra.Command{
	Use:   "launch <account-id>",
	Short: "Switch the Riot Client to an account and start VALORANT",
	Long: `Close the Riot Client, write the account's session into its files and start it again.

With --watch the command stays until VALORANT exits (or Ctrl+C), reporting when
the game is running and when it closes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return withService(func(svc *app.Service) error {
			out := cmd.OutOrStdout()
			accountID := args[0]

			var session launcher.LaunchSession
			err := internal.ShowProgress(ctx, cmd.ErrOrStderr(), "Switching Riot Client to "+accountID, func() error {
				var err error
				session, err = check(svc.Launch(ctx, accountID))
				return err
			})
			if err != nil {
				if errors.Is(err, internal.ErrTargetNotConfigured) {
					printInstallNotice(out, err)
				}
				return err
			}
			_, _ = fmt.Fprintln(out, successStyle.Render("🚀 Riot Client started for "+accountID))
			internal.LogDebug("Launch session %s", session.ID)

			if !launchWatch {
				return nil
			}
			return followLaunch(ctx, out, svc.Events(), accountID)
		})
	},
}

// followLaunch prints launch transitions for accountID until the game closes
func followLaunch(ctx context.Context, out io.Writer, events <-chan app.Event, accountID string) error {
	_, _ = fmt.Fprintln(out, infoStyle.Render("⏳ Waiting for VALORANT..."))
	for {
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out, warningStyle.Render("Stopped watching"))
			return nil
		case ev := <-events:
			if ev.Name != app.EventLaunchStatus || ev.Launch == nil || ev.Launch.AccountID != accountID {
				continue
			}
			switch ev.Launch.Phase {
			case internal.PhaseRunning:
				_, _ = fmt.Fprintln(out, successStyle.Render("🎮 VALORANT is running"))
			case internal.PhaseClosed:
				_, _ = fmt.Fprintln(out, infoStyle.Render("👋 VALORANT closed"))
				return nil
			case internal.PhaseError:
				return errors.New(ev.Launch.Message)
			}
		}
	}
}

// printInstallNotice frames errors that need a settings change, not a retry
func printInstallNotice(out io.Writer, err error) {
	body := errorStyle.Render("VALORANT install not configured") + "\n\n" +
		err.Error() + "\n\n" +
		"Set the install folder with:\n" +
		"  valswitch settings pick-path --save\n" +
		"  valswitch settings set --valorant-path <dir>"
	_, _ = fmt.Fprintln(out, noticeStyle.Render(body))
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().BoolVarP(&launchWatch, "watch", "w", false, "Stay until VALORANT exits")
}
