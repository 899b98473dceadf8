package cmd

import (
	"github.com/iksnae/valswitch/internal/app"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a web link in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			_, err := check(svc.OpenExternalURL(args[0]))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
