package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/storefront-tools/catalog-sync/internal/catalog"
	"github.com/storefront-tools/catalog-sync/internal/importer"
	"github.com/storefront-tools/catalog-sync/internal/logging"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a product file into the catalog",
	Long: `Import reads a CSV or XLSX file and reconciles it against the catalog.

Modes:
  create   every row must be a new SKU
  update   every row must match an existing SKU
  upsert   new SKUs are created, known SKUs are updated

The whole file is applied in one transaction. Rows that fail validation are
reported and skipped; a systemic failure rolls everything back.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringP("file", "f", "", "path to the CSV or XLSX file (required)")
	importCmd.Flags().StringP("mode", "m", "upsert", "import mode: create, update, or upsert")
	importCmd.Flags().Bool("dry-run", false, "validate and report without committing")
	importCmd.Flags().Duration("timeout", 5*time.Minute, "maximum duration for the import")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	modeStr, _ := cmd.Flags().GetString("mode")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	mode, err := importer.ParseMode(modeStr)
	if err != nil {
		return err
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DB_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), logging.FileOptions{})

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	engine := importer.NewEngine(catalog.New(pool))

	result, err := engine.Run(ctx, f, importer.Options{
		Mode:     mode,
		FileName: filepath.Base(filePath),
		DryRun:   dryRun,
	})
	if err != nil {
		return err
	}

	printResult(result)

	if result.Failed > 0 {
		os.Exit(2)
	}
	return nil
}

func printResult(result *importer.Result) {
	if result.DryRun {
		fmt.Println("Dry run: no changes were committed.")
	}
	fmt.Printf("Total rows: %d\n", result.Total)
	fmt.Printf("Created:    %d\n", result.Created)
	fmt.Printf("Updated:    %d\n", result.Updated)
	fmt.Printf("Failed:     %d\n", result.Failed)

	if len(result.Errors) > 0 {
		fmt.Println("\nRow errors:")
		for _, e := range result.Errors {
			fmt.Printf("  row %d, %s: %s\n", e.Row, e.Field, e.Message)
		}
	}
}
