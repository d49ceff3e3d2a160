// catsync is the command line companion to the catalog sync server. It runs
// imports directly against the database without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catsync",
	Short: "Catalog synchronization tool",
	Long: `catsync imports product data from CSV or XLSX files into the catalog.

Connection settings come from the environment (DATABASE_URL) or a .env file
in the working directory.

Example usage:
  catsync template > products.csv
  catsync import --file products.csv --mode create
  catsync import --file products.xlsx --mode upsert --dry-run`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort; the environment may already be configured
		_ = godotenv.Overload()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
