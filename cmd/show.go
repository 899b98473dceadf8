package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/spf13/cobra"
)

var (
	accountHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	accountMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

var showCmd = &cobra.Command{
	Use:   "show <account-id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			account, err := check(svc.GetAccount(args[0]))
			if err != nil {
				return err
			}
			hasSession, err := check(svc.HasSession(account.ID))
			if err != nil {
				internal.LogWarn("Could not read the stored session: %v", err)
			}
			displayAccount(cmd.OutOrStdout(), account, hasSession)
			return nil
		})
	},
}

func displayAccount(out io.Writer, a internal.Account, hasSession bool) {
	_, _ = fmt.Fprintln(out, accountHeaderStyle.Render("🎮 "+a.DisplayName))

	metaParts := []string{
		"ID: " + a.ID,
		"Region: " + a.Region,
		"Added: " + a.CreatedAt.Local().Format(time.RFC1123),
	}
	if a.LastUsedAt != nil {
		metaParts = append(metaParts, "Last used: "+a.LastUsedAt.Local().Format(time.RFC1123))
	} else {
		metaParts = append(metaParts, "Last used: never")
	}
	_, _ = fmt.Fprintln(out, accountMetaStyle.Render(strings.Join(metaParts, "\n")))
	_, _ = fmt.Fprintln(out)

	if hasSession {
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Session stored"))
	} else {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No usable session stored; sign in and run `valswitch accounts import`"))
	}
}

func init() {
	accountsCmd.AddCommand(showCmd)
}
