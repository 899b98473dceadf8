package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/iksnae/valswitch/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

// exportCmd writes the account list without any session data
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export account names and regions",
	Long: `Export the stored accounts to jsonl, md, yaml or json.

Only names, regions and dates are written. Sessions never leave the OS keychain.
Without --output-dir the export goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		return withService(func(svc *app.Service) error {
			var w io.Writer = cmd.OutOrStdout()
			var path string
			if outputDir != "" {
				if err := os.MkdirAll(outputDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				path = filepath.Join(outputDir, "accounts."+exporter.Extension())
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			count, err := check(svc.ExportAccounts(format, w))
			if err != nil {
				return err
			}
			if path != "" {
				internal.LogInfo("Exported %d account(s) to %s", count, path)
			}
			return nil
		})
	},
}

func init() {
	accountsCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write accounts.<ext> into this directory")
}
