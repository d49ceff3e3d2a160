package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/storefront-tools/catalog-sync/internal/importer"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the CSV import template",
	Long: `Template writes the expected CSV header and one sample row to stdout.

Example usage:
  catsync template > products.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(importer.Template())
		return err
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
