package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/spf13/cobra"
)

var (
	addUsername      string
	addDisplayName   string
	addRegion        string
	addPasswordStdin bool
	editName         string
	editRegion       string
)

var accountsCmd = &cobra.Command{
	Use:     "accounts",
	Aliases: []string{"account", "acc"},
	Short:   "Manage stored accounts",
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Save the account the Riot Client is signed in with",
	Long: `Read the session the Riot Client currently holds and store it.

Sign in to the Riot Client with "Stay signed in" checked, then run this.
Importing an account again refreshes its session but keeps the name and
region you gave it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			account, err := check(svc.ImportSession())
			if err != nil {
				if errors.Is(err, internal.ErrNoActiveSession) {
					return fmt.Errorf("%w\nSign in to the Riot Client with \"Stay signed in\" checked and try again", err)
				}
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, successStyle.Render("✅ Imported "+account.DisplayName))
			_, _ = fmt.Fprintln(out, idStyle.Render("   id: "+account.ID))
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Sign in with a username and password",
	Long: `Sign in with Riot credentials and store the resulting session.

Direct sign-in is not available yet; use "valswitch accounts import" instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addUsername == "" {
			return errors.New("--username is required")
		}
		password, err := readPassword(cmd.InOrStdin(), addPasswordStdin)
		if err != nil {
			return err
		}
		return withService(func(svc *app.Service) error {
			account, err := check(svc.AddAccount(cmd.Context(), addUsername, password, addDisplayName, addRegion))
			if err != nil {
				if errors.Is(err, internal.ErrAuthUnsupported) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), warningStyle.Render("⚠️  Use `valswitch accounts import` after signing in to the Riot Client"))
				}
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✅ Added "+account.DisplayName))
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <account-id>",
	Short: "Rename an account or change its region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editName == "" && editRegion == "" {
			return errors.New("nothing to change: pass --name and/or --region")
		}
		return withService(func(svc *app.Service) error {
			account, err := check(svc.UpdateAccount(args[0], editName, editRegion))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				successStyle.Render("✅ Updated "+account.DisplayName),
				regionStyle.Render("["+account.Region+"]"))
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <account-id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Forget an account and its stored session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			if _, err := check(svc.RemoveAccount(args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✅ Removed "+args[0]))
			return nil
		})
	},
}

// readPassword takes the first line of stdin when fromStdin is set
func readPassword(r io.Reader, fromStdin bool) (string, error) {
	if !fromStdin {
		return "", errors.New("pass the password on stdin with --password-stdin")
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(importCmd, addCmd, editCmd, removeCmd)

	addCmd.Flags().StringVarP(&addUsername, "username", "u", "", "Riot username")
	addCmd.Flags().BoolVar(&addPasswordStdin, "password-stdin", false, "Read the password from stdin")
	addCmd.Flags().StringVar(&addDisplayName, "name", "", "Display name (defaults to the username)")
	addCmd.Flags().StringVarP(&addRegion, "region", "r", internal.DefaultRegion, "Region ("+strings.Join(internal.Regions, ", ")+")")

	editCmd.Flags().StringVar(&editName, "name", "", "New display name")
	editCmd.Flags().StringVarP(&editRegion, "region", "r", "", "New region ("+strings.Join(internal.Regions, ", ")+")")
}
