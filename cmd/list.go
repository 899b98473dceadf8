package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored accounts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			accounts, err := check(svc.GetAccounts())
			if err != nil {
				return err
			}
			displayAccounts(cmd.OutOrStdout(), accounts, time.Now())
			return nil
		})
	},
}

func displayAccounts(out io.Writer, accounts []internal.Account, now time.Time) {
	if len(accounts) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No accounts stored"))
		_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: sign in to the Riot Client, then run `valswitch accounts import`"))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %d account(s)", len(accounts))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Name")+"\t"+titleStyle.Render("Region")+"\t"+titleStyle.Render("Last used")+"\t"+titleStyle.Render("ID")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, a := range accounts {
		name := a.DisplayName
		if name == "" {
			name = "Unnamed"
		}
		// Truncate long names but keep them readable
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		name = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(name)

		lastUsed := dateStyle.Render("never")
		if a.LastUsedAt != nil {
			lastUsed = dateStyle.Render(formatWhen(*a.LastUsedAt, now))
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", name, regionStyle.Render(a.Region), lastUsed, idStyle.Render(a.ID))
	}

	_ = w.Flush()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: launch with `valswitch launch "+accounts[0].ID+"`"))
}

// formatWhen renders t relative to now the way a list reads best
func formatWhen(t, now time.Time) string {
	t = t.Local()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour && t.YearDay() == now.Local().YearDay():
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	accountsCmd.AddCommand(listCmd)
}
